package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/appleprotools/resale/internal/config"
	"github.com/appleprotools/resale/internal/domain/models"
	"github.com/appleprotools/resale/internal/service/reporting"
)

// ReportBuilder produces the daily digest and stock alerts.
type ReportBuilder interface {
	BuildDailyReport(day time.Time) models.DailyReport
	StockAlerts() string
}

// ReportArchive persists digests.
type ReportArchive interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Notifier pushes text to a WhatsApp number.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	location  *time.Location
	reports   ReportBuilder
	archive   ReportArchive
	notifier  Notifier
	managerID string
	logger    *zap.Logger
}

// NewScheduler creates a scheduler running in the configured timezone.
// archive and notifier are optional.
func NewScheduler(cfg config.Config, reports ReportBuilder, archive ReportArchive, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  cfg.Reporting.CronSchedule,
		location:  loc,
		reports:   reports,
		archive:   archive,
		notifier:  notifier,
		managerID: cfg.WhatsApp.ManagerID,
		logger:    logger,
	}, nil
}

// Start registers the daily report job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.runDailyReport); err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.SendDailyReport(ctx, time.Now().In(s.location)); err != nil {
		s.logger.Error("daily report failed", zap.Error(err))
	}
}

// SendDailyReport builds the digest for day, archives it and notifies the
// manager. Archive and delivery failures are both attempted before returning
// the first error.
func (s *Scheduler) SendDailyReport(ctx context.Context, day time.Time) error {
	s.logger.Info("generating daily report")
	report := s.reports.BuildDailyReport(day)

	var firstErr error

	if s.archive != nil {
		if err := s.archive.SaveDailyReport(ctx, report); err != nil {
			s.logger.Error("failed to archive daily report", zap.Error(err))
			firstErr = fmt.Errorf("archive daily report: %w", err)
		}
	}

	if s.notifier == nil || s.managerID == "" {
		s.logger.Debug("no manager to notify, skipping delivery")
		return firstErr
	}

	message := reporting.FormatDailyReport(report)
	if alerts := s.reports.StockAlerts(); alerts != "" {
		message += "\n\n" + alerts
	}

	req := models.OutboundMessageRequest{To: s.managerID, Message: message}
	if err := s.notifier.SendOutbound(ctx, req); err != nil {
		s.logger.Error("failed to send daily report", zap.Error(err))
		if firstErr == nil {
			firstErr = fmt.Errorf("send daily report: %w", err)
		}
		return firstErr
	}

	s.logger.Info("daily report sent successfully")
	return firstErr
}
