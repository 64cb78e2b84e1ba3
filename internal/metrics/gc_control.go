package metrics

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode controls the garbage collector behavior during timed runs.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoThreshold is the minimum element count for auto GC control to
// activate. Below it a collection pause is small next to the run itself.
const GCAutoThreshold uint64 = 1_000_000

// GCController pauses Go's garbage collector around benchmark runs and
// restores it between them, so collector pauses land in the gaps
// instead of inside a measured duration. It implements the runner's
// quiescence seam.
type GCController struct {
	mode        GCMode
	active      bool
	prevPercent int
	logger      zerolog.Logger
	before      runtime.MemStats
	after       runtime.MemStats
}

// GCStats holds allocation and collection deltas for one quiescence
// window.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController creates a controller for the given mode and workload
// size. Aggressive mode always engages, auto engages from
// GCAutoThreshold elements up, anything else stays inert.
func NewGCController(mode string, elements uint64) *GCController {
	m := GCMode(mode)
	return &GCController{
		mode:   m,
		active: m == GCModeAggressive || (m == GCModeAuto && elements >= GCAutoThreshold),
		logger: zerolog.Nop(),
	}
}

// SetLogger routes the controller's begin/end events to l.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Begin disables the collector if the controller is active. A soft
// memory limit stays in place as an OOM safety net while GC is off.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.before)
	gc.prevPercent = debug.SetGCPercent(-1)
	if limit := int64(gc.before.Sys) * 3; limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_bytes", gc.before.HeapAlloc).
		Msg("collector paused for timed run")
}

// End restores the previous collector settings and forces a
// collection, putting the deferred pause between runs rather than
// inside one.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.after)
	debug.SetGCPercent(gc.prevPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	delta := gc.Stats()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_bytes", delta.HeapAlloc).
		Uint64("allocated_bytes", delta.TotalAlloc).
		Uint32("collections", delta.NumGC).
		Msg("collector resumed")
}

// Stats reports the window measured by the last Begin/End pair.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:    gc.after.HeapAlloc,
		TotalAlloc:   gc.after.TotalAlloc - gc.before.TotalAlloc,
		NumGC:        gc.after.NumGC - gc.before.NumGC,
		PauseTotalNs: gc.after.PauseTotalNs - gc.before.PauseTotalNs,
	}
}
