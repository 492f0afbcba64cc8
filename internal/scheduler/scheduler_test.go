package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appleprotools/resale/internal/config"
	"github.com/appleprotools/resale/internal/domain/models"
)

type stubReports struct {
	alerts string
	days   []time.Time
}

func (s *stubReports) BuildDailyReport(day time.Time) models.DailyReport {
	s.days = append(s.days, day)
	return models.DailyReport{Date: day, UnitsSold: 2, SoldByModel: map[string]int{"X": 2}}
}

func (s *stubReports) StockAlerts() string { return s.alerts }

type stubArchive struct {
	saved []models.DailyReport
	err   error
}

func (a *stubArchive) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	a.saved = append(a.saved, report)
	return a.err
}

type stubNotifier struct {
	sent []models.OutboundMessageRequest
	err  error
}

func (n *stubNotifier) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	n.sent = append(n.sent, req)
	return n.err
}

func testConfig() config.Config {
	return config.Config{
		Reporting: config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
		WhatsApp:  config.WhatsAppConfig{ManagerID: "5511999990000"},
	}
}

func TestSendDailyReport_ArchivesAndNotifies(t *testing.T) {
	reports := &stubReports{alerts: "Stock alerts:\n- Last unit of X"}
	archive := &stubArchive{}
	notifier := &stubNotifier{}

	s, err := NewScheduler(testConfig(), reports, archive, notifier, nil)
	require.NoError(t, err)

	day := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)
	require.NoError(t, s.SendDailyReport(context.Background(), day))

	require.Len(t, archive.saved, 1)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "5511999990000", notifier.sent[0].To)
	assert.Contains(t, notifier.sent[0].Message, "Daily report 2026-10-18")
	assert.Contains(t, notifier.sent[0].Message, "Last unit of X")
}

func TestSendDailyReport_ArchiveErrorStillNotifies(t *testing.T) {
	boom := errors.New("mongo down")
	notifier := &stubNotifier{}

	s, err := NewScheduler(testConfig(), &stubReports{}, &stubArchive{err: boom}, notifier, nil)
	require.NoError(t, err)

	err = s.SendDailyReport(context.Background(), time.Now())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, notifier.sent, 1)
	assert.NotContains(t, notifier.sent[0].Message, "Stock alerts")
}

func TestSendDailyReport_NotifierError(t *testing.T) {
	boom := errors.New("meta down")
	s, err := NewScheduler(testConfig(), &stubReports{}, nil, &stubNotifier{err: boom}, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.SendDailyReport(context.Background(), time.Now()), boom)
}

func TestSendDailyReport_NoManagerSkipsDelivery(t *testing.T) {
	cfg := testConfig()
	cfg.WhatsApp.ManagerID = ""
	notifier := &stubNotifier{}

	s, err := NewScheduler(cfg, &stubReports{}, nil, notifier, nil)
	require.NoError(t, err)

	require.NoError(t, s.SendDailyReport(context.Background(), time.Now()))
	assert.Empty(t, notifier.sent)
}

func TestNewScheduler_InvalidTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.Timezone = "Mars/Olympus"

	_, err := NewScheduler(cfg, &stubReports{}, nil, nil, nil)
	assert.Error(t, err)
}

func TestStart_InvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.CronSchedule = "every day"

	s, err := NewScheduler(cfg, &stubReports{}, nil, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler(testConfig(), &stubReports{}, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	s.Stop()
}
