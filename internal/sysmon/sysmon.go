// Package sysmon provides system-wide CPU, memory and load sampling for
// the dashboard's metrics panel.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage. Load1 is
// worth watching next to CPUPercent here: when the benchmark
// oversubscribes workers the run queue grows while CPU saturates.
type Stats struct {
	CPUPercent float64 // percent of all cores, 0..100
	MemPercent float64 // percent of physical memory in use
	Load1      float64 // 1-minute run-queue average
}

// Sample collects a single system-wide snapshot. CPU uses interval=0
// (delta since last call). Fields keep their zero value on error, so a
// failed probe degrades the display instead of breaking it.
func Sample() Stats {
	var s Stats
	pcts, err := cpu.Percent(0, false)
	if err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	vm, err := mem.VirtualMemory()
	if err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	avg, err := load.Avg()
	if err == nil && avg != nil {
		s.Load1 = avg.Load1
	}
	return s
}
