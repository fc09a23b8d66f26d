package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Info summarizes host state. It is embedded into interpretation context and
// served on the system info endpoint.
func (s *Service) Info() map[string]any {
	info := map[string]any{
		"os":   runtime.GOOS,
		"arch": runtime.GOARCH,
		"cpus": runtime.NumCPU(),
	}

	if h, err := host.Info(); err == nil {
		info["hostname"] = h.Hostname
		info["platform"] = h.Platform
		info["platform_version"] = h.PlatformVersion
		info["uptime_seconds"] = h.Uptime
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		info["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info["memory_total"] = vm.Total
		info["memory_used_percent"] = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		info["disk_used_percent"] = du.UsedPercent
	}

	return info
}
