package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pulseboard/pulseboard/internal/domain/report"
	"github.com/pulseboard/pulseboard/internal/types"
)

// ReportScheduler periodically scans for scheduled reports whose next run
// is due, enqueues a fresh generation for each, and advances the schedule
// by one frequency step.
type ReportScheduler struct {
	params ServiceParams
	runner *ReportRunner
	cron   *cron.Cron
}

// NewReportScheduler creates a new report scheduler
func NewReportScheduler(params ServiceParams, runner *ReportRunner) *ReportScheduler {
	return &ReportScheduler{
		params: params,
		runner: runner,
		cron:   cron.New(),
	}
}

// Start registers the scan job and starts the cron loop
func (s *ReportScheduler) Start() error {
	if !s.params.Config.Scheduler.Enabled {
		s.params.Logger.Infow("report scheduler disabled")
		return nil
	}

	spec := fmt.Sprintf("@every %s", s.params.Config.Scheduler.Interval)
	if _, err := s.cron.AddFunc(spec, s.RunDue); err != nil {
		return err
	}
	s.cron.Start()
	s.params.Logger.Infow("report scheduler started", "interval", s.params.Config.Scheduler.Interval)
	return nil
}

// Stop stops the cron loop and waits for a running scan to finish
func (s *ReportScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunDue performs one scan over due schedules. Exported so tests and the
// cron loop share the same entry point.
func (s *ReportScheduler) RunDue() {
	ctx := context.Background()
	now := time.Now().UTC()

	due, err := s.params.ReportRepo.ListDueScheduled(ctx, now)
	if err != nil {
		s.params.Logger.Errorw("failed to list due scheduled reports", "error", err)
		return
	}

	for _, scheduled := range due {
		if err := s.runOne(ctx, scheduled, now); err != nil {
			s.params.Logger.Errorw("failed to run scheduled report",
				"report_id", scheduled.ID, "error", err)
		}
	}
}

// runOne clones the scheduled report into a fresh generating document and
// advances the schedule. The clone carries no schedule of its own, so each
// occurrence is a standalone report in the owner's list.
func (s *ReportScheduler) runOne(ctx context.Context, scheduled *report.Report, now time.Time) error {
	runCtx := context.WithValue(ctx, types.CtxUserID, scheduled.UserID)

	clone := &report.Report{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixReport),
		UserID:      scheduled.UserID,
		Title:       scheduled.Title,
		Description: scheduled.Description,
		Type:        scheduled.Type,
		Status:      types.ReportStatusGenerating,
		BaseModel:   types.GetDefaultBaseModel(runCtx),
	}
	if err := s.params.ReportRepo.Create(runCtx, clone); err != nil {
		return err
	}
	if err := s.runner.Enqueue(runCtx, clone); err != nil {
		failUnqueued(runCtx, s.params, clone, err.Error())
		return err
	}

	// Advance from the scheduled time, not the scan time, so a late scan
	// does not drift the schedule.
	next := scheduled.Scheduled.Frequency.NextRunAfter(scheduled.Scheduled.NextRun)
	for !next.After(now) {
		next = scheduled.Scheduled.Frequency.NextRunAfter(next)
	}
	scheduled.Scheduled.NextRun = next
	scheduled.UpdatedAt = now
	return s.params.ReportRepo.Update(runCtx, scheduled)
}
