// Package sysinfo samples server statistics for the live `info server`
// view and the /api/sysinfo/cpu endpoint.
package sysinfo

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

// Sampler collects one SysInfo snapshot per call. Individual probes that
// fail leave their section nil; consumers render "N/A" for missing
// sections, so a partially working host still produces a useful sample.
type Sampler struct{}

// NewSampler creates a Sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Sample collects a snapshot of CPU, load, memory, uptime, and
// temperature. It never fails outright; the snapshot just omits whatever
// could not be probed.
func (s *Sampler) Sample(ctx context.Context) (*domain.SysInfo, error) {
	info := &domain.SysInfo{
		Success:   true,
		Timestamp: time.Now().UnixMilli(),
	}

	if stats, err := cpu.InfoWithContext(ctx); err == nil && len(stats) > 0 {
		logical, _ := cpu.CountsWithContext(ctx, true)
		physical, _ := cpu.CountsWithContext(ctx, false)
		info.CPU = &domain.CPUInfo{
			Manufacturer:  stats[0].VendorID,
			Brand:         stats[0].ModelName,
			Cores:         logical,
			PhysicalCores: physical,
		}
	} else if err != nil {
		slog.Debug("cpu info probe failed", "error", err)
	}

	if loads, err := cpu.PercentWithContext(ctx, 0, true); err == nil && len(loads) > 0 {
		load := &domain.LoadInfo{}
		var total float64
		for _, l := range loads {
			load.CPUs = append(load.CPUs, domain.CoreLoad{Load: l})
			total += l
		}
		load.CurrentLoad = total / float64(len(loads))
		info.Load = load
	} else if err != nil {
		slog.Debug("cpu load probe failed", "error", err)
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.Memory = &domain.MemoryInfo{Total: vm.Total, Used: vm.Used}
	} else {
		slog.Debug("memory probe failed", "error", err)
	}

	if uptime, err := host.UptimeWithContext(ctx); err == nil {
		info.Uptime = uptime
	} else {
		slog.Debug("uptime probe failed", "error", err)
	}

	if temp, ok := cpuTemperature(ctx); ok {
		info.Temp = &domain.TempInfo{Main: temp}
	}

	return info, nil
}

// cpuTemperature picks the most CPU-looking sensor reading, if any.
func cpuTemperature(ctx context.Context) (float64, bool) {
	readings, err := sensors.TemperaturesWithContext(ctx)
	if err != nil || len(readings) == 0 {
		return 0, false
	}

	for _, r := range readings {
		key := strings.ToLower(r.SensorKey)
		if strings.Contains(key, "coretemp") || strings.Contains(key, "k10temp") ||
			strings.Contains(key, "cpu") || strings.Contains(key, "package") {
			return r.Temperature, true
		}
	}
	return readings[0].Temperature, true
}
