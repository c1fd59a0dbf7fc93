package utils

import (
	"context"
	"math"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// MachineStats is a snapshot of host utilisation shown in the status embed.
type MachineStats struct {
	CPUPercent    float64
	MemoryUsedMB  uint64
	MemoryTotalMB uint64
	MemoryPercent float64
	DiskUsedGB    uint64
	DiskTotalGB   uint64
	DiskPercent   float64
}

// MachineInfo reads CPU, memory and root filesystem usage.
func MachineInfo(ctx context.Context) (MachineStats, error) {
	var stats MachineStats

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return stats, err
	}
	if len(percents) > 0 {
		stats.CPUPercent = round1(percents[0])
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return stats, err
	}
	stats.MemoryUsedMB = vm.Used / (1 << 20)
	stats.MemoryTotalMB = vm.Total / (1 << 20)
	stats.MemoryPercent = round1(vm.UsedPercent)

	usage, err := disk.UsageWithContext(ctx, rootPath())
	if err != nil {
		return stats, err
	}
	stats.DiskUsedGB = usage.Used / (1 << 30)
	stats.DiskTotalGB = usage.Total / (1 << 30)
	stats.DiskPercent = round1(usage.UsedPercent)

	return stats, nil
}

func rootPath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
