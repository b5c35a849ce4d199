package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/config"
	"github.com/mamadbah2/agrilink/internal/service/reporting"
)

// Scheduler manages scheduled tasks. Currently one job: the daily
// reporting snapshot.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.SnapshotConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SnapshotConfig, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []cron.Option{}
	if cfg.Timezone != "" {
		if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
			opts = append(opts, cron.WithLocation(loc))
		} else {
			logger.Warn("invalid timezone, scheduler falls back to local time",
				zap.String("timezone", cfg.Timezone), zap.Error(err))
		}
	}

	return &Scheduler{
		cron:         cron.New(opts...),
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.captureDailySnapshot); err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) captureDailySnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot, err := s.reportingSvc.CaptureDailySnapshot(ctx)
	if err != nil {
		s.logger.Error("failed to capture daily snapshot", zap.Error(err))
		return
	}

	s.logger.Info("daily snapshot persisted",
		zap.Time("date", snapshot.Date),
		zap.Int64("yields_recorded", snapshot.YieldsRecorded))
}
