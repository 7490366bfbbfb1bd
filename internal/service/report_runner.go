package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sourcegraph/conc"

	"github.com/pulseboard/pulseboard/internal/domain/report"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

type reportJob struct {
	ctx      context.Context
	reportID string
}

// ReportRunner drains the report generation queue with a bounded worker
// pool. Jobs run on detached contexts so an aborted HTTP request never
// cancels a generation already underway; transient failures retry with
// exponential backoff and exhaustion transitions the report to failed.
type ReportRunner struct {
	params    ServiceParams
	generator *ReportGenerator

	jobs chan reportJob
	wg   conc.WaitGroup
	quit chan struct{}
}

// NewReportRunner creates a new report runner
func NewReportRunner(params ServiceParams) *ReportRunner {
	return &ReportRunner{
		params:    params,
		generator: NewReportGenerator(params),
		jobs:      make(chan reportJob, params.Config.Reports.QueueSize),
		quit:      make(chan struct{}),
	}
}

// Start launches the worker pool
func (r *ReportRunner) Start() {
	workers := r.params.Config.Reports.Workers
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		r.wg.Go(r.worker)
	}
	r.params.Logger.Infow("report runner started", "workers", workers)
}

// Stop drains the queue and waits for in-flight jobs to finish
func (r *ReportRunner) Stop() {
	close(r.quit)
	close(r.jobs)
	r.wg.Wait()
	r.params.Logger.Infow("report runner stopped")
}

// Enqueue schedules generation of a report. The job captures a detached
// copy of the caller's context before Enqueue returns.
func (r *ReportRunner) Enqueue(ctx context.Context, rep *report.Report) error {
	job := reportJob{
		ctx:      types.DetachedContext(ctx),
		reportID: rep.ID,
	}
	select {
	case r.jobs <- job:
		return nil
	case <-r.quit:
		return ierr.NewError("report runner is shutting down").
			Mark(ierr.ErrInvalidOperation)
	default:
		return ierr.NewError("report queue is full").
			WithHint("Too many reports are generating, try again shortly").
			Mark(ierr.ErrInvalidOperation)
	}
}

func (r *ReportRunner) worker() {
	for job := range r.jobs {
		r.process(job)
	}
}

// process runs one job to a terminal state. Panics in generation are
// recovered into the failed state rather than tearing down the worker.
func (r *ReportRunner) process(job reportJob) {
	log := r.params.Logger.WithContext(job.ctx)

	defer func() {
		if rec := recover(); rec != nil {
			log.Errorw("report generation panicked", "report_id", job.reportID, "panic", rec)
			r.markFailed(job.ctx, job.reportID, fmt.Sprintf("generation panicked: %v", rec))
		}
	}()

	ctx, cancel := context.WithTimeout(job.ctx, r.params.Config.Reports.GenTimeout)
	defer cancel()

	operation := func() error {
		err := r.generate(ctx, job.reportID)
		if err != nil && (ierr.IsValidation(err) || ierr.IsInvalidOperation(err)) {
			// Retrying cannot fix a bad report definition.
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.params.Config.Reports.MaxRetries),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		log.Errorw("report generation failed", "report_id", job.reportID, "error", err)
		r.markFailed(job.ctx, job.reportID, err.Error())
	}
}

func (r *ReportRunner) generate(ctx context.Context, reportID string) error {
	rep, err := r.params.ReportRepo.Get(ctx, reportID)
	if err != nil {
		return err
	}
	if rep.Status != types.ReportStatusGenerating {
		// Already completed by an earlier attempt.
		return nil
	}

	// The generation queries run as the report owner regardless of who
	// enqueued the job.
	genCtx := context.WithValue(ctx, types.CtxUserID, rep.UserID)

	data, err := r.generator.Generate(genCtx, rep)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("reports/%s/%s.csv", rep.UserID, rep.ID)
	if err := r.params.ArtifactStore.Put(ctx, key, data, "text/csv"); err != nil {
		return err
	}

	return r.transition(ctx, rep, types.ReportStatusReady, func(rep *report.Report) {
		rep.ArtifactKey = key
	})
}

func (r *ReportRunner) markFailed(ctx context.Context, reportID string, reason string) {
	rep, err := r.params.ReportRepo.Get(ctx, reportID)
	if err != nil {
		r.params.Logger.Errorw("failed to load report for failure transition",
			"report_id", reportID, "error", err)
		return
	}
	if rep.Status != types.ReportStatusGenerating {
		return
	}
	if err := r.transition(ctx, rep, types.ReportStatusFailed, func(rep *report.Report) {
		rep.FailureReason = reason
	}); err != nil {
		r.params.Logger.Errorw("failed to mark report as failed",
			"report_id", reportID, "error", err)
	}
}

func (r *ReportRunner) transition(ctx context.Context, rep *report.Report, to types.ReportStatus, mutate func(*report.Report)) error {
	if !types.IsValidReportStatusTransition(rep.Status, to) {
		return ierr.NewErrorf("invalid report status transition: %s -> %s", rep.Status, to).
			Mark(ierr.ErrInvalidOperation)
	}
	now := time.Now().UTC()
	rep.Status = to
	rep.CompletedAt = &now
	rep.UpdatedAt = now
	mutate(rep)
	return r.params.ReportRepo.Update(ctx, rep)
}
