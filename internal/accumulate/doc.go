// Package accumulate computes the sum of an integer half-open range under
// five execution policies of increasing synchronization strictness.
//
// The policies form a deliberate cost ladder:
//
//	Sequential        single goroutine, plain loop (the timing baseline)
//	Parallel          fork/join workers, shared sum, no synchronization
//	ParallelAtomic    fork/join workers, one atomic add per element
//	ParallelCritical  fork/join workers, one mutex section per element
//	ParallelReduce    fork/join workers, private partials combined at join
//
// Parallel is an intentional data race: its result is non-deterministic
// under contention and that is the property being demonstrated. The other
// four policies agree bit-for-bit for every supported element type,
// including ranges whose sum wraps around the type's width.
//
// A call always runs to completion. There is no cancellation, no timeout,
// and no error path: the only blocking point is the join barrier at the
// end of the parallel region, which also orders all worker writes before
// the final read of the accumulator.
package accumulate
