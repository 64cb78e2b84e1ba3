package accumulate

import (
	"fmt"
	"strings"
)

// Policy selects the concurrency discipline applied to the shared
// accumulator during one Sum call.
type Policy int

const (
	// Sequential sums in a single goroutine. Its elapsed time is the
	// baseline every parallel policy's speedup is measured against.
	Sequential Policy = iota
	// Parallel divides the range across workers that update one shared
	// sum with no synchronization. The result is indeterminate under
	// contention; the lost updates are the demonstration.
	Parallel
	// ParallelAtomic divides the range across workers that update one
	// shared sum with an atomic add per element.
	ParallelAtomic
	// ParallelCritical divides the range across workers that update one
	// shared sum inside a mutex critical section per element.
	ParallelCritical
	// ParallelReduce gives each worker a private partial sum and combines
	// the partials once per worker at the join barrier.
	ParallelReduce
)

// Policies returns all policies in benchmark run order, Sequential first.
func Policies() []Policy {
	return []Policy{Sequential, Parallel, ParallelAtomic, ParallelCritical, ParallelReduce}
}

// String returns the display label used in result lines and tables.
func (p Policy) String() string {
	switch p {
	case Sequential:
		return "Serial"
	case Parallel:
		return "Parallel"
	case ParallelAtomic:
		return "Parallel atomic"
	case ParallelCritical:
		return "Parallel critical"
	case ParallelReduce:
		return "Parallel reduce"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Synchronized reports whether the policy's result is deterministic.
// Every policy except Parallel must reproduce the closed-form sum.
func (p Policy) Synchronized() bool {
	return p != Parallel
}

// ParsePolicy resolves a policy from its display label or a short alias
// (seq, par, atomic, critical, reduce). Matching is case-insensitive.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "seq", "serial", "sequential":
		return Sequential, nil
	case "par", "parallel":
		return Parallel, nil
	case "atomic", "parallel atomic":
		return ParallelAtomic, nil
	case "critical", "parallel critical":
		return ParallelCritical, nil
	case "reduce", "parallel reduce":
		return ParallelReduce, nil
	default:
		return Sequential, fmt.Errorf("unknown policy %q", name)
	}
}
