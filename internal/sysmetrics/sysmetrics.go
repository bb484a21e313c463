package sysmetrics

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// LoadAverage samples the one-minute system load average.
type LoadAverage struct{}

func (LoadAverage) Sample() (float64, error) {
	avg, err := load.Avg()
	if err != nil {
		return -1, fmt.Errorf("reading load average: %w", err)
	}
	return avg.Load1, nil
}

// CPUUsage samples the current system-wide CPU utilization as a percentage.
// The sample is taken since the previous call, so the first reading after
// process start may be 0.
type CPUUsage struct{}

func (CPUUsage) Sample() (float64, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return -1, fmt.Errorf("reading cpu usage: %w", err)
	}
	if len(percents) == 0 {
		return -1, fmt.Errorf("reading cpu usage: no data")
	}
	return percents[0], nil
}

// MemoryUsage samples the used fraction of physical memory as a percentage.
type MemoryUsage struct{}

func (MemoryUsage) Sample() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return -1, fmt.Errorf("reading memory usage: %w", err)
	}
	return vm.UsedPercent, nil
}
