// Package scheduler runs the recurring background jobs, currently the
// nightly export of daily summaries to Google Sheets.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/config"
	"github.com/mbodji/macrolog/internal/domain/models"
	"github.com/mbodji/macrolog/internal/repository/sheets"
)

// LogSource provides the logs of one calendar day for export.
type LogSource interface {
	FindByDay(ctx context.Context, day time.Time) ([]models.DailyLog, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	logs     LogSource
	exporter sheets.Exporter
	cfg      config.Config
	location *time.Location
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. A nil exporter disables the
// export job entirely; the scheduler still starts so future jobs have a home.
func NewScheduler(cfg config.Config, logs LogSource, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Reporting.Timezone))
		location = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		logs:     logs,
		exporter: exporter,
		cfg:      cfg,
		location: location,
		logger:   logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if s.exporter != nil {
		_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.exportDailySummaries)
		if err != nil {
			s.logger.Error("failed to schedule summary export", zap.Error(err))
		}
	} else {
		s.logger.Warn("sheets exporter not configured, summary export disabled")
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// exportDailySummaries appends one spreadsheet row per log of the previous
// day. A failed row is logged and skipped so one bad record cannot starve
// the rest of the export.
func (s *Scheduler) exportDailySummaries() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	yesterday := time.Now().In(s.location).AddDate(0, 0, -1)
	s.logger.Info("exporting daily summaries", zap.String("day", yesterday.Format("2006-01-02")))

	logs, err := s.logs.FindByDay(ctx, yesterday)
	if err != nil {
		s.logger.Error("failed to load daily logs for export", zap.Error(err))
		return
	}

	exported := 0
	for _, log := range logs {
		if err := s.exporter.AppendSummary(ctx, log); err != nil {
			s.logger.Error("failed to export summary row",
				zap.String("user_id", log.UserID.Hex()),
				zap.Error(err))
			continue
		}
		exported++
	}

	s.logger.Info("daily summary export finished",
		zap.Int("total", len(logs)),
		zap.Int("exported", exported))
}
