package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/testutil"
	"github.com/pulseboard/pulseboard/internal/types"
)

type ReportServiceSuite struct {
	ServiceTestSuite
	runner  *ReportRunner
	reports ReportService
}

func TestReportService(t *testing.T) {
	suite.Run(t, new(ReportServiceSuite))
}

func (s *ReportServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.runner = NewReportRunner(s.params)
	s.runner.Start()
	s.reports = NewReportService(s.params, s.runner)
}

func (s *ReportServiceSuite) TearDownTest() {
	s.runner.Stop()
}

func (s *ReportServiceSuite) waitForTerminal(reportID string) types.ReportStatus {
	var status types.ReportStatus
	s.Require().Eventually(func() bool {
		rep, err := s.GetStores().Reports.Get(s.GetContext(), reportID)
		if err != nil {
			return false
		}
		status = rep.Status
		return rep.Status.IsTerminal()
	}, 5*time.Second, 10*time.Millisecond)
	return status
}

func (s *ReportServiceSuite) TestCreateReportStartsGenerating() {
	resp, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Monthly Revenue",
		Type:  types.ReportTypeRevenue,
	})
	s.Require().NoError(err)
	s.Equal(types.ReportStatusGenerating, resp.Status)
	s.NotEmpty(resp.ID)
}

func (s *ReportServiceSuite) TestReportCompletesWithArtifact() {
	now := time.Now().UTC()
	s.seedRevenue(testUserID, "Jan", now.Year(), 1000, 900, now)

	resp, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Monthly Revenue",
		Type:  types.ReportTypeRevenue,
	})
	s.Require().NoError(err)

	status := s.waitForTerminal(resp.ID)
	s.Equal(types.ReportStatusReady, status)

	rep, err := s.GetStores().Reports.Get(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.NotEmpty(rep.ArtifactKey)
	s.NotNil(rep.CompletedAt)

	data, exists := s.GetStores().Artifacts.GetObject(rep.ArtifactKey)
	s.True(exists)
	s.Contains(string(data), "month")
	s.Contains(string(data), "Jan")
}

func (s *ReportServiceSuite) TestCreateReportRejectsUnknownType() {
	_, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Bad",
		Type:  types.ReportType("Quarterly"),
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ReportServiceSuite) TestDownloadOnlyWhenReady() {
	resp, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Monthly Revenue",
		Type:  types.ReportTypeRevenue,
	})
	s.Require().NoError(err)

	s.waitForTerminal(resp.ID)

	download, err := s.reports.DownloadReport(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.NotEmpty(download.URL)
}

func (s *ReportServiceSuite) TestDownloadRejectedWhileGenerating() {
	rep, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Team Overview",
		Type:  types.ReportTypeTeam,
	})
	s.Require().NoError(err)

	// Let the worker finish, then rewind the document so the
	// not-ready case is deterministic.
	s.waitForTerminal(rep.ID)
	stored, err := s.GetStores().Reports.Get(s.GetContext(), rep.ID)
	s.Require().NoError(err)
	stored.Status = types.ReportStatusGenerating
	stored.ArtifactKey = ""
	s.Require().NoError(s.GetStores().Reports.Update(s.GetContext(), stored))

	_, err = s.reports.DownloadReport(s.GetContext(), rep.ID)
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ReportServiceSuite) TestOwnershipEnforced() {
	resp, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Monthly Revenue",
		Type:  types.ReportTypeRevenue,
	})
	s.Require().NoError(err)
	s.waitForTerminal(resp.ID)

	strangerCtx := testutil.AuthenticatedContext("user_stranger", types.UserRoleUser)
	_, err = s.reports.GetReport(strangerCtx, resp.ID)
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	_, err = s.reports.DownloadReport(strangerCtx, resp.ID)
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	// Admins see everything.
	_, err = s.reports.GetReport(s.adminContext(), resp.ID)
	s.NoError(err)
}

func (s *ReportServiceSuite) TestListScopedToOwner() {
	_, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Mine",
		Type:  types.ReportTypeRevenue,
	})
	s.Require().NoError(err)

	otherCtx := testutil.AuthenticatedContext("user_other", types.UserRoleUser)
	list, err := s.reports.ListReports(otherCtx)
	s.Require().NoError(err)
	s.Empty(list.Items)

	list, err = s.reports.ListReports(s.GetContext())
	s.Require().NoError(err)
	s.Len(list.Items, 1)
}

func (s *ReportServiceSuite) TestScheduledReportCarriesNextRun() {
	resp, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Weekly Digest",
		Type:  types.ReportTypeAnalytics,
		Scheduled: &dto.ScheduleRequest{
			Enabled:   true,
			Frequency: types.ScheduleFrequencyWeekly,
		},
	})
	s.Require().NoError(err)
	s.Require().NotNil(resp.Scheduled)
	s.Equal(types.ScheduleFrequencyWeekly, resp.Scheduled.Frequency)
	s.Equal("Every Monday", resp.Scheduled.FrequencyLabel)
	s.True(resp.Scheduled.NextRun.After(time.Now().UTC()))

	list, err := s.reports.ListScheduledReports(s.GetContext())
	s.Require().NoError(err)
	s.Len(list.Items, 1)
}

func (s *ReportServiceSuite) TestEnqueueFailureDoesNotStrandReport() {
	// A zero-capacity queue with no workers rejects every enqueue.
	cfg := *s.GetConfig()
	cfg.Reports.QueueSize = 0
	params := s.params
	params.Config = &cfg
	full := NewReportService(params, NewReportRunner(params))

	_, err := full.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Monthly Revenue",
		Type:  types.ReportTypeRevenue,
	})
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))

	all := s.GetStores().Reports.All(s.GetContext())
	s.Require().Len(all, 1)
	s.Equal(types.ReportStatusFailed, all[0].Status)
	s.NotEmpty(all[0].FailureReason)
	s.NotNil(all[0].CompletedAt)
}

func (s *ReportServiceSuite) TestGenerationFailureMarksFailed() {
	s.GetStores().Artifacts.FailPuts(ierr.NewError("object store unavailable").
		Mark(ierr.ErrHTTPClient))

	resp, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Monthly Revenue",
		Type:  types.ReportTypeRevenue,
	})
	s.Require().NoError(err)

	status := s.waitForTerminal(resp.ID)
	s.Equal(types.ReportStatusFailed, status)

	rep, err := s.GetStores().Reports.Get(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Empty(rep.ArtifactKey)
	s.NotEmpty(rep.FailureReason)
	s.NotNil(rep.CompletedAt)

	_, err = s.reports.DownloadReport(s.GetContext(), resp.ID)
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ReportServiceSuite) TestDeleteRemovesArtifact() {
	resp, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title: "Monthly Revenue",
		Type:  types.ReportTypeRevenue,
	})
	s.Require().NoError(err)
	s.waitForTerminal(resp.ID)

	rep, err := s.GetStores().Reports.Get(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	key := rep.ArtifactKey

	s.Require().NoError(s.reports.DeleteReport(s.GetContext(), resp.ID))

	_, err = s.GetStores().Reports.Get(s.GetContext(), resp.ID)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))

	_, exists := s.GetStores().Artifacts.GetObject(key)
	s.False(exists)
}
