package accumulate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// synchronizedPolicies returns the policies whose result is deterministic.
// Parallel is exercised separately: on multi-element ranges its result is
// indeterminate and the race detector rejects it by design.
func synchronizedPolicies() []Policy {
	return []Policy{Sequential, ParallelAtomic, ParallelCritical, ParallelReduce}
}

func TestSum_KnownValues(t *testing.T) {
	t.Parallel()

	for _, policy := range synchronizedPolicies() {
		t.Run(policy.String(), func(t *testing.T) {
			t.Parallel()

			t.Run("thousand elements", func(t *testing.T) {
				require.Equal(t, 499500, Sum(policy, 0, 1000))
			})

			t.Run("two elements", func(t *testing.T) {
				require.Equal(t, 83, Sum(policy, 41, 43))
			})

			t.Run("negative range", func(t *testing.T) {
				require.Equal(t, int64(-40), Sum(policy, int64(-10), int64(-5)))
			})

			t.Run("range symmetric around zero", func(t *testing.T) {
				require.Equal(t, int64(0), Sum(policy, int64(-3), int64(4)))
			})

			t.Run("empty range", func(t *testing.T) {
				require.Equal(t, 0, Sum(policy, 5, 5))
			})

			t.Run("inverted range", func(t *testing.T) {
				require.Equal(t, 0, Sum(policy, 7, 3))
			})

			t.Run("single zero element", func(t *testing.T) {
				require.Equal(t, 0, Sum(policy, 0, 1))
			})
		})
	}
}

// TestSum_NarrowWidths verifies that summation wraps modulo 2^width for
// every element type, not just the machine word.
func TestSum_NarrowWidths(t *testing.T) {
	t.Parallel()

	for _, policy := range synchronizedPolicies() {
		t.Run(policy.String(), func(t *testing.T) {
			t.Parallel()

			t.Run("int8 full range wraps to 1", func(t *testing.T) {
				// Sum of -128..126 is -255, congruent to 1 mod 256.
				require.Equal(t, int8(1), Sum(policy, int8(math.MinInt8), int8(math.MaxInt8)))
			})

			t.Run("uint8 wraps", func(t *testing.T) {
				// 0+1+...+99 = 4950, congruent to 86 mod 256.
				require.Equal(t, uint8(86), Sum(policy, uint8(0), uint8(100)))
			})

			t.Run("int16 wraps negative", func(t *testing.T) {
				// 1000+...+1999 = 1499500, congruent to -7828 mod 65536.
				require.Equal(t, int16(-7828), Sum(policy, int16(1000), int16(2000)))
			})

			t.Run("uint16 wraps", func(t *testing.T) {
				require.Equal(t, uint16(57708), Sum(policy, uint16(1000), uint16(2000)))
			})

			t.Run("uint64 near the top of the range", func(t *testing.T) {
				// Ten elements congruent to -11..-2 mod 2^64.
				require.Equal(t, uint64(math.MaxUint64-64),
					Sum(policy, uint64(math.MaxUint64-10), uint64(math.MaxUint64)))
			})
		})
	}
}

// TestSum_PoliciesAgree cross-checks every synchronized policy against the
// sequential baseline and the closed form on a range large enough to fork
// real worker blocks.
func TestSum_PoliciesAgree(t *testing.T) {
	t.Parallel()

	const start, end = int64(-1234), int64(98765)
	want := ClosedFormSum(start, end)
	require.Equal(t, want, Sum(Sequential, start, end))

	for _, policy := range []Policy{ParallelAtomic, ParallelCritical, ParallelReduce} {
		t.Run(policy.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, Sum(policy, start, end))
		})
	}
}

// TestSum_Deterministic runs each synchronized policy twice over the same
// range; goroutine scheduling must not be observable in the result.
func TestSum_Deterministic(t *testing.T) {
	t.Parallel()

	for _, policy := range synchronizedPolicies() {
		t.Run(policy.String(), func(t *testing.T) {
			t.Parallel()
			first := Sum(policy, 0, 100000)
			second := Sum(policy, 0, 100000)
			require.Equal(t, first, second)
		})
	}
}

// TestSum_RacyPolicyDegenerateRanges covers the only racy-policy inputs
// with a pinned outcome: empty and single-element ranges never fork more
// than one worker, so no data race can occur and the sum is exact.
func TestSum_RacyPolicyDegenerateRanges(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Sum(Parallel, 9, 9))
	require.Equal(t, 0, Sum(Parallel, 9, 2))
	require.Equal(t, 41, Sum(Parallel, 41, 42))
	require.Equal(t, int64(-7), Sum(Parallel, int64(-7), int64(-6)))
}

func TestSum_UnknownPolicyFallsBackToSequential(t *testing.T) {
	t.Parallel()

	require.Equal(t, Sum(Sequential, 0, 500), Sum(Policy(99), 0, 500))
}

func TestWorkerCount(t *testing.T) {
	t.Parallel()

	t.Run("capped at element count", func(t *testing.T) {
		require.Equal(t, 1, workerCount(1))
		require.LessOrEqual(t, workerCount(2), 2)
	})

	t.Run("at least one worker for large ranges", func(t *testing.T) {
		require.GreaterOrEqual(t, workerCount(1<<30), 1)
	})
}

func TestBlockBounds(t *testing.T) {
	t.Parallel()

	t.Run("uneven split gives the remainder to leading blocks", func(t *testing.T) {
		type block struct{ lo, hi int }
		want := []block{{0, 4}, {4, 7}, {7, 10}}
		for w, b := range want {
			lo, hi := blockBounds(0, 10, 3, w)
			require.Equal(t, b.lo, lo, "worker %d lower bound", w)
			require.Equal(t, b.hi, hi, "worker %d upper bound", w)
		}
	})

	t.Run("blocks tile a negative range", func(t *testing.T) {
		start := int64(-5)
		prevHi := start
		for w := 0; w < 4; w++ {
			lo, hi := blockBounds(start, 10, 4, w)
			require.Equal(t, prevHi, lo, "worker %d must start where worker %d ended", w, w-1)
			require.LessOrEqual(t, lo, hi)
			prevHi = hi
		}
		require.Equal(t, int64(5), prevHi)
	})

	t.Run("single worker takes the whole range", func(t *testing.T) {
		lo, hi := blockBounds(int32(100), 50, 1, 0)
		require.Equal(t, int32(100), lo)
		require.Equal(t, int32(150), hi)
	})
}

func TestPolicyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		policy Policy
		want   string
	}{
		{Sequential, "Serial"},
		{Parallel, "Parallel"},
		{ParallelAtomic, "Parallel atomic"},
		{ParallelCritical, "Parallel critical"},
		{ParallelReduce, "Parallel reduce"},
		{Policy(42), "Policy(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.policy.String())
	}
}

func TestPolicies_RunOrder(t *testing.T) {
	t.Parallel()

	got := Policies()
	require.Len(t, got, 5)
	require.Equal(t, Sequential, got[0], "the sequential baseline must run first")
	require.Equal(t, []Policy{Sequential, Parallel, ParallelAtomic, ParallelCritical, ParallelReduce}, got)
}

func TestPolicySynchronized(t *testing.T) {
	t.Parallel()

	for _, policy := range Policies() {
		assert.Equal(t, policy != Parallel, policy.Synchronized(), "policy %s", policy)
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	t.Run("labels and aliases", func(t *testing.T) {
		tests := []struct {
			name string
			want Policy
		}{
			{"serial", Sequential},
			{"seq", Sequential},
			{"Sequential", Sequential},
			{"parallel", Parallel},
			{"par", Parallel},
			{"atomic", ParallelAtomic},
			{"Parallel atomic", ParallelAtomic},
			{"critical", ParallelCritical},
			{"Parallel critical", ParallelCritical},
			{"reduce", ParallelReduce},
			{"  Reduce  ", ParallelReduce},
		}
		for _, tt := range tests {
			got, err := ParsePolicy(tt.name)
			require.NoError(t, err, "ParsePolicy(%q)", tt.name)
			assert.Equal(t, tt.want, got, "ParsePolicy(%q)", tt.name)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParsePolicy("quantum")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantum")
	})
}
