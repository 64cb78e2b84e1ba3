package accumulate

// ClosedFormSum computes the sum of [start, end) directly from the
// arithmetic-series identity, with every step congruent to the wrapped
// loop the policies run:
//
//	sum(start, end) = n*start + n*(n-1)/2   where n = end - start
//
// Working modulo 2^64 keeps each term exact. n is a true element count,
// so the triangular term halves whichever of n and n-1 is even before
// multiplying; halving after the product would lose the carry whenever
// the full product wraps. Truncating the 64-bit total to T yields the
// sum modulo 2^width because 2^width divides 2^64.
//
// Every synchronized policy must reproduce this value bit for bit; the
// racy policy is measured against it to show the lost updates.
func ClosedFormSum[T Addable](start, end T) T {
	if start >= end {
		return 0
	}
	n := uint64(end) - uint64(start)

	// Triangular number n*(n-1)/2 without overflow in the halving.
	a, b := n, n-1
	if a%2 == 0 {
		a /= 2
	} else {
		b /= 2
	}

	return T(uint64(start)*n + a*b)
}
