// Package metrics gathers runtime-side measurements around benchmark
// runs: heap snapshots, GC quiescence control, and OS resource usage.
package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the Go heap. HeapAlloc,
// HeapSys, Sys, and HeapObjects are gauges; TotalAlloc, NumGC, and
// PauseTotalNs count monotonically over the life of the process.
type MemorySnapshot struct {
	HeapAlloc    uint64
	HeapSys      uint64
	Sys          uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
	HeapObjects  uint64
}

// Delta returns the growth since an earlier snapshot. The cumulative
// counters subtract; the point-in-time gauges keep the later value.
func (s MemorySnapshot) Delta(prev MemorySnapshot) MemorySnapshot {
	s.TotalAlloc -= prev.TotalAlloc
	s.NumGC -= prev.NumGC
	s.PauseTotalNs -= prev.PauseTotalNs
	return s
}

// MemoryCollector reads runtime memory statistics. A benchmark suite
// takes one snapshot before the first run and one after the last; the
// delta shows whether any policy allocated on the hot path.
type MemoryCollector struct{}

// NewMemoryCollector returns a collector ready to snapshot the heap.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot captures the current runtime.MemStats counters. The read
// briefly stops the world, so keep it out of timed regions.
func (*MemoryCollector) Snapshot() MemorySnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return MemorySnapshot{
		HeapAlloc:    ms.HeapAlloc,
		HeapSys:      ms.HeapSys,
		Sys:          ms.Sys,
		TotalAlloc:   ms.TotalAlloc,
		NumGC:        ms.NumGC,
		PauseTotalNs: ms.PauseTotalNs,
		HeapObjects:  ms.HeapObjects,
	}
}
