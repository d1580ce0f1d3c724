package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// Service reports host-level status for the operational endpoints.
type Service struct {
	logger *logrus.Logger
}

// NewService creates a system status service.
func NewService(logger *logrus.Logger) *Service {
	return &Service{logger: logger}
}

// Info is a point-in-time description of the host.
type Info struct {
	Hostname        string  `json:"hostname"`
	Platform        string  `json:"platform"`
	PlatformVersion string  `json:"platform_version"`
	KernelArch      string  `json:"kernel_arch"`
	UptimeSeconds   uint64  `json:"uptime_seconds"`
	CPUModel        string  `json:"cpu_model"`
	CPUCores        int     `json:"cpu_cores"`
	MemoryTotalMB   uint64  `json:"memory_total_mb"`
	MemoryUsedPct   float64 `json:"memory_used_percent"`
	Goroutines      int     `json:"goroutines"`
}

// GetInfo gathers host details, degrading to partial data when a probe
// fails.
func (s *Service) GetInfo() *Info {
	info := &Info{Goroutines: runtime.NumGoroutine()}

	if hi, err := host.Info(); err != nil {
		s.logger.WithError(err).Warn("Failed to get host info")
	} else {
		info.Hostname = hi.Hostname
		info.Platform = hi.Platform
		info.PlatformVersion = hi.PlatformVersion
		info.KernelArch = hi.KernelArch
		info.UptimeSeconds = hi.Uptime
	}

	if cpus, err := cpu.Info(); err != nil {
		s.logger.WithError(err).Warn("Failed to get CPU info")
	} else if len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
		info.CPUCores = len(cpus)
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		s.logger.WithError(err).Warn("Failed to get memory info")
	} else {
		info.MemoryTotalMB = vm.Total / 1024 / 1024
		info.MemoryUsedPct = vm.UsedPercent
	}

	return info
}
