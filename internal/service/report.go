package service

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	"github.com/pulseboard/pulseboard/internal/domain/report"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// ReportService owns the report lifecycle: creation enqueues asynchronous
// generation, downloads hand out artifact URLs once a report is ready.
type ReportService interface {
	CreateReport(ctx context.Context, req dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetReport(ctx context.Context, id string) (*dto.ReportResponse, error)
	ListReports(ctx context.Context) (*dto.ListReportsResponse, error)
	ListScheduledReports(ctx context.Context) (*dto.ListReportsResponse, error)
	DownloadReport(ctx context.Context, id string) (*dto.DownloadReportResponse, error)
	DeleteReport(ctx context.Context, id string) error
}

type reportService struct {
	ServiceParams
	runner *ReportRunner
}

// NewReportService creates a new report service
func NewReportService(params ServiceParams, runner *ReportRunner) ReportService {
	return &reportService{ServiceParams: params, runner: runner}
}

func (s *reportService) CreateReport(ctx context.Context, req dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rep := &report.Report{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixReport),
		UserID:      types.GetUserID(ctx),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      types.ReportStatusGenerating,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	if req.Scheduled != nil && req.Scheduled.Enabled {
		rep.Scheduled = &report.Schedule{
			Enabled:   true,
			Frequency: req.Scheduled.Frequency,
			NextRun:   req.Scheduled.Frequency.NextRunAfter(time.Now().UTC()),
		}
	}
	if err := rep.Validate(); err != nil {
		return nil, err
	}

	if err := s.ReportRepo.Create(ctx, rep); err != nil {
		return nil, err
	}

	// Generation happens off the request path; the report is returned in
	// the generating state and polled until terminal.
	if err := s.runner.Enqueue(ctx, rep); err != nil {
		failUnqueued(ctx, s.ServiceParams, rep, err.Error())
		return nil, err
	}

	s.Logger.Infow("report created", "report_id", rep.ID, "type", rep.Type)
	return dto.NewReportResponse(rep), nil
}

func (s *reportService) GetReport(ctx context.Context, id string) (*dto.ReportResponse, error) {
	rep, err := s.getAuthorized(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewReportResponse(rep), nil
}

func (s *reportService) ListReports(ctx context.Context) (*dto.ListReportsResponse, error) {
	return s.list(ctx, false)
}

func (s *reportService) ListScheduledReports(ctx context.Context) (*dto.ListReportsResponse, error) {
	return s.list(ctx, true)
}

func (s *reportService) list(ctx context.Context, scheduledOnly bool) (*dto.ListReportsResponse, error) {
	filter := report.NewFilter()
	filter.ScheduledOnly = scheduledOnly
	if !types.IsAdmin(ctx) {
		filter.UserID = types.GetUserID(ctx)
	}

	reports, err := s.ReportRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ReportResponse, 0, len(reports))
	for _, rep := range reports {
		items = append(items, dto.NewReportResponse(rep))
	}
	return &dto.ListReportsResponse{
		Items: items,
		Pagination: types.PaginationResponse{
			Total:  len(items),
			Limit:  filter.GetLimit(),
			Offset: filter.GetOffset(),
		},
	}, nil
}

func (s *reportService) DownloadReport(ctx context.Context, id string) (*dto.DownloadReportResponse, error) {
	rep, err := s.getAuthorized(ctx, id)
	if err != nil {
		return nil, err
	}

	if rep.Status != types.ReportStatusReady {
		return nil, ierr.NewErrorf("report is not ready for download").
			WithHintf("Report status is %s", rep.Status).
			WithReportableDetails(map[string]interface{}{
				"report_id": rep.ID,
				"status":    rep.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	url, err := s.ArtifactStore.DownloadURL(ctx, rep.ArtifactKey)
	if err != nil {
		return nil, err
	}
	return &dto.DownloadReportResponse{URL: url}, nil
}

func (s *reportService) DeleteReport(ctx context.Context, id string) error {
	rep, err := s.getAuthorized(ctx, id)
	if err != nil {
		return err
	}

	if rep.ArtifactKey != "" {
		if err := s.ArtifactStore.Delete(ctx, rep.ArtifactKey); err != nil {
			// The document removal still proceeds; orphaned artifacts age
			// out of the store.
			s.Logger.Warnw("failed to delete report artifact",
				"report_id", rep.ID, "key", rep.ArtifactKey, "error", err)
		}
	}
	return s.ReportRepo.Delete(ctx, rep.ID)
}

// getAuthorized loads a report and enforces owner-or-admin access
func (s *reportService) getAuthorized(ctx context.Context, id string) (*report.Report, error) {
	rep, err := s.ReportRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rep.IsOwnedBy(types.GetUserID(ctx)) && !types.IsAdmin(ctx) {
		return nil, ierr.NewError("report belongs to another user").
			Mark(ierr.ErrPermissionDenied)
	}
	return rep, nil
}

// failUnqueued marks a report whose job never reached the queue as failed.
// A generating report without a queued job has no worker that will ever
// complete it.
func failUnqueued(ctx context.Context, params ServiceParams, rep *report.Report, reason string) {
	now := time.Now().UTC()
	rep.Status = types.ReportStatusFailed
	rep.FailureReason = reason
	rep.CompletedAt = &now
	rep.UpdatedAt = now
	if err := params.ReportRepo.Update(ctx, rep); err != nil {
		params.Logger.Errorw("failed to mark unqueued report as failed",
			"report_id", rep.ID, "error", err)
	}
}
