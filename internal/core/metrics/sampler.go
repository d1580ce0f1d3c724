package metrics

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// Sampler periodically samples host resource usage into the collector.
type Sampler struct {
	collector *Collector
	logger    *logrus.Logger
	schedule  string
	cron      *cron.Cron
}

// NewSampler creates a sampler. The schedule uses six-field cron syntax with
// a leading seconds field.
func NewSampler(collector *Collector, logger *logrus.Logger, schedule string) *Sampler {
	return &Sampler{
		collector: collector,
		logger:    logger,
		schedule:  schedule,
	}
}

// Start samples once immediately and then on every schedule tick. Overlapping
// runs are skipped and panics inside a run are recovered.
func (s *Sampler) Start() error {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
			cron.Recover(cron.DefaultLogger),
		),
	)

	if _, err := c.AddFunc(s.schedule, s.sample); err != nil {
		return fmt.Errorf("invalid sample schedule %q: %w", s.schedule, err)
	}

	s.sample()
	c.Start()
	s.cron = c

	s.logger.WithField("schedule", s.schedule).Info("System sampler started")
	return nil
}

// Stop halts the schedule and waits for an in-flight sample to finish.
func (s *Sampler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *Sampler) sample() {
	cpuPercent := 0.0
	if percents, err := cpu.Percent(0, false); err != nil {
		s.logger.WithError(err).Warn("Failed to sample CPU usage")
	} else if len(percents) > 0 {
		cpuPercent = percents[0]
	}

	memPercent := 0.0
	if vm, err := mem.VirtualMemory(); err != nil {
		s.logger.WithError(err).Warn("Failed to sample memory usage")
	} else {
		memPercent = vm.UsedPercent
	}

	diskPercent := 0.0
	if du, err := disk.Usage("/"); err != nil {
		s.logger.WithError(err).Warn("Failed to sample disk usage")
	} else {
		diskPercent = du.UsedPercent
	}

	s.collector.RecordSystemResource(cpuPercent, memPercent, diskPercent)
}
