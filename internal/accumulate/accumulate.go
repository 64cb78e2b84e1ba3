package accumulate

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Addable is the set of fixed-width integer types a range can be summed
// over. Addition on every member wraps modulo 2^width, so each policy's
// result is well defined even when the true sum exceeds the type's range.
type Addable interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Sum adds every integer in the half-open range [start, end) under the
// given policy's synchronization discipline. An empty or inverted range
// sums to zero. Unknown policies fall back to Sequential.
//
// All arithmetic wraps modulo 2^width of T. The four synchronized
// policies agree bit for bit with ClosedFormSum; Parallel may lose
// updates under contention and is allowed to return anything.
func Sum[T Addable](policy Policy, start, end T) T {
	if start >= end {
		return 0
	}
	switch policy {
	case Parallel:
		return sumParallelRacy(start, end)
	case ParallelAtomic:
		return sumParallelAtomic(start, end)
	case ParallelCritical:
		return sumParallelCritical(start, end)
	case ParallelReduce:
		return sumParallelReduce(start, end)
	default:
		return sumSequential(start, end)
	}
}

// rangeCount returns the number of elements in [start, end) as a uint64.
// The subtraction is exact for every Addable width: uint64 conversion
// sign-extends signed values, and differences of representable bounds
// never exceed 2^64-1.
func rangeCount[T Addable](start, end T) uint64 {
	return uint64(end) - uint64(start)
}

// workerCount picks the fork width for a range of count elements:
// GOMAXPROCS, never more than one worker per element, never less than
// one.
func workerCount(count uint64) int {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if uint64(workers) > count {
		workers = int(count)
	}
	return workers
}

// blockBounds returns worker w's half-open sub-range of [start, end)
// when count elements are divided across workers. Blocks are contiguous,
// cover the range exactly once, and differ in size by at most one
// element; the first count%workers blocks take the extra.
//
// The offset arithmetic stays in uint64 counts, so it cannot overflow:
// w*base < count <= 2^64-1. Converting the offsets back through T is the
// same modular walk the summation itself takes.
func blockBounds[T Addable](start T, count uint64, workers, w int) (lo, hi T) {
	base := count / uint64(workers)
	rem := count % uint64(workers)
	uw := uint64(w)
	offset := uw*base + min(uw, rem)
	size := base
	if uw < rem {
		size++
	}
	return start + T(offset), start + T(offset+size)
}

func sumSequential[T Addable](start, end T) T {
	var sum T
	for i := start; i < end; i++ {
		sum += i
	}
	return sum
}

// sumParallelRacy forks workers that all add into one shared variable
// with no synchronization at all. This is the textbook lost-update race:
// concurrent read-modify-write cycles overwrite each other, so the
// result drifts below the true sum as contention rises. The race
// detector flags this function by construction.
func sumParallelRacy[T Addable](start, end T) T {
	count := rangeCount(start, end)
	workers := workerCount(count)

	var sum T
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			lo, hi := blockBounds(start, count, workers, w)
			for i := lo; i < hi; i++ {
				sum += i
			}
		}(w)
	}
	wg.Wait()
	return sum
}

// sumParallelAtomic serializes every update through a single atomic
// add. Each element is widened to uint64 before the add; sign extension
// makes the uint64 accumulation congruent to the T accumulation modulo
// 2^width, so the final truncation recovers the exact wrapped sum.
func sumParallelAtomic[T Addable](start, end T) T {
	count := rangeCount(start, end)
	workers := workerCount(count)

	var sum atomic.Uint64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			lo, hi := blockBounds(start, count, workers, w)
			for i := lo; i < hi; i++ {
				sum.Add(uint64(i))
			}
		}(w)
	}
	wg.Wait()
	return T(sum.Load())
}

// sumParallelCritical guards the shared accumulator with one mutex,
// locked and unlocked around every single addition. Deliberately the
// most expensive discipline on the ladder: the critical section is a
// couple of nanoseconds of work wrapped in a full lock handoff.
func sumParallelCritical[T Addable](start, end T) T {
	count := rangeCount(start, end)
	workers := workerCount(count)

	var mu sync.Mutex
	var sum T
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			lo, hi := blockBounds(start, count, workers, w)
			for i := lo; i < hi; i++ {
				mu.Lock()
				sum += i
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	return sum
}

// sumParallelReduce gives each worker a private slot in a partials
// slice and folds the slots after the join. Workers share no mutable
// state during the loop, so the hot path carries no synchronization;
// the errgroup Wait is the only barrier and publishes each partial
// before the fold reads it.
func sumParallelReduce[T Addable](start, end T) T {
	count := rangeCount(start, end)
	workers := workerCount(count)

	partials := make([]T, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			lo, hi := blockBounds(start, count, workers, w)
			var local T
			for i := lo; i < hi; i++ {
				local += i
			}
			partials[w] = local
			return nil
		})
	}
	// Workers never return errors; Wait is purely the join barrier.
	_ = g.Wait()

	var sum T
	for _, p := range partials {
		sum += p
	}
	return sum
}
