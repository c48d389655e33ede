// Package sysinfo collects host statistics and process information.
package sysinfo

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats contains a point-in-time view of the host.
type Stats struct {
	Hostname     string      `json:"hostname"`
	OS           string      `json:"os"`
	Platform     string      `json:"platform"`
	Uptime       uint64      `json:"uptime_seconds"`
	CPU          CPUStats    `json:"cpu"`
	Memory       MemStats    `json:"memory"`
	Disk         []DiskStats `json:"disk"`
	ProcessCount int         `json:"process_count"`
	Timestamp    time.Time   `json:"timestamp"`
}

// CPUStats contains CPU statistics.
type CPUStats struct {
	Cores        int     `json:"cores"`
	UsagePercent float64 `json:"usage_percent"`
}

// MemStats contains memory statistics.
type MemStats struct {
	Total       uint64  `json:"total"`
	Available   uint64  `json:"available"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"used_percent"`
}

// DiskStats contains statistics for one mounted filesystem.
type DiskStats struct {
	Device      string  `json:"device"`
	Mountpoint  string  `json:"mountpoint"`
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// Process describes one running process.
type Process struct {
	PID  int32  `json:"pid"`
	Name string `json:"name"`
}

// GetStats collects current host statistics. Individual collectors that fail
// leave their section zeroed instead of failing the whole call.
func GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Timestamp: time.Now().UTC()}

	if info, err := host.InfoWithContext(ctx); err == nil {
		stats.Hostname = info.Hostname
		stats.OS = info.OS
		stats.Platform = info.Platform
		stats.Uptime = info.Uptime
	}

	if counts, err := cpu.CountsWithContext(ctx, true); err == nil {
		stats.CPU.Cores = counts
	}
	if percents, err := cpu.PercentWithContext(ctx, time.Second, false); err == nil && len(percents) > 0 {
		stats.CPU.UsagePercent = percents[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.Memory = MemStats{
			Total:       vm.Total,
			Available:   vm.Available,
			Used:        vm.Used,
			UsedPercent: vm.UsedPercent,
		}
	}

	if partitions, err := disk.PartitionsWithContext(ctx, false); err == nil {
		for _, p := range partitions {
			usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
			if err != nil {
				continue
			}
			stats.Disk = append(stats.Disk, DiskStats{
				Device:      p.Device,
				Mountpoint:  p.Mountpoint,
				Total:       usage.Total,
				Used:        usage.Used,
				Free:        usage.Free,
				UsedPercent: usage.UsedPercent,
			})
		}
	}

	if pids, err := process.PidsWithContext(ctx); err == nil {
		stats.ProcessCount = len(pids)
	}

	return stats, nil
}

// ListProcesses returns the running processes the agent can see. Processes
// that disappear mid-listing are skipped.
func ListProcesses(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		out = append(out, Process{PID: p.Pid, Name: name})
	}
	return out, nil
}
