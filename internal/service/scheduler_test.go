package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pulseboard/pulseboard/internal/domain/report"
	"github.com/pulseboard/pulseboard/internal/types"
)

type ReportSchedulerSuite struct {
	ServiceTestSuite
	runner    *ReportRunner
	scheduler *ReportScheduler
}

func TestReportScheduler(t *testing.T) {
	suite.Run(t, new(ReportSchedulerSuite))
}

func (s *ReportSchedulerSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.runner = NewReportRunner(s.params)
	s.runner.Start()
	s.scheduler = NewReportScheduler(s.params, s.runner)
}

func (s *ReportSchedulerSuite) TearDownTest() {
	s.runner.Stop()
}

func (s *ReportSchedulerSuite) seedScheduled(userID string, frequency types.ScheduleFrequency, nextRun time.Time) *report.Report {
	rep := &report.Report{
		ID:     types.GenerateUUIDWithPrefix(types.UUIDPrefixReport),
		UserID: userID,
		Title:  "Weekly Digest",
		Type:   types.ReportTypeAnalytics,
		Status: types.ReportStatusReady,
		Scheduled: &report.Schedule{
			Enabled:   true,
			Frequency: frequency,
			NextRun:   nextRun,
		},
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().Reports.Create(s.GetContext(), rep))
	return rep
}

func (s *ReportSchedulerSuite) TestRunDueClonesAndAdvances() {
	now := time.Now().UTC()
	scheduled := s.seedScheduled(testUserID, types.ScheduleFrequencyWeekly, now.Add(-time.Hour))

	s.scheduler.RunDue()

	all := s.GetStores().Reports.All(s.GetContext())
	s.Require().Len(all, 2)

	var clone *report.Report
	for _, rep := range all {
		if rep.ID != scheduled.ID {
			clone = rep
		}
	}
	s.Require().NotNil(clone)
	s.Equal(testUserID, clone.UserID)
	s.Equal(scheduled.Title, clone.Title)
	s.Equal(scheduled.Type, clone.Type)
	s.Nil(clone.Scheduled, "occurrence must not carry the schedule")

	updated, err := s.GetStores().Reports.Get(s.GetContext(), scheduled.ID)
	s.Require().NoError(err)
	s.True(updated.Scheduled.NextRun.After(now))
}

func (s *ReportSchedulerSuite) TestRunDueCatchesUpStaleSchedule() {
	now := time.Now().UTC()
	// Several missed weeks produce one occurrence, not one per missed slot.
	scheduled := s.seedScheduled(testUserID, types.ScheduleFrequencyWeekly, now.AddDate(0, 0, -30))

	s.scheduler.RunDue()

	s.Len(s.GetStores().Reports.All(s.GetContext()), 2)

	updated, err := s.GetStores().Reports.Get(s.GetContext(), scheduled.ID)
	s.Require().NoError(err)
	s.True(updated.Scheduled.NextRun.After(now))
	s.True(updated.Scheduled.NextRun.Before(now.AddDate(0, 0, 8)))
}

func (s *ReportSchedulerSuite) TestRunDueFailsCloneWhenQueueFull() {
	now := time.Now().UTC()
	scheduled := s.seedScheduled(testUserID, types.ScheduleFrequencyWeekly, now.Add(-time.Hour))

	cfg := *s.GetConfig()
	cfg.Reports.QueueSize = 0
	params := s.params
	params.Config = &cfg
	stuck := NewReportScheduler(params, NewReportRunner(params))

	stuck.RunDue()

	all := s.GetStores().Reports.All(s.GetContext())
	s.Require().Len(all, 2)
	for _, rep := range all {
		if rep.ID == scheduled.ID {
			continue
		}
		s.Equal(types.ReportStatusFailed, rep.Status)
		s.NotEmpty(rep.FailureReason)
	}
}

func (s *ReportSchedulerSuite) TestRunDueIgnoresFutureAndDisabled() {
	now := time.Now().UTC()
	s.seedScheduled(testUserID, types.ScheduleFrequencyWeekly, now.Add(24*time.Hour))

	disabled := s.seedScheduled(testUserID, types.ScheduleFrequencyDaily, now.Add(-time.Hour))
	disabled.Scheduled.Enabled = false
	s.Require().NoError(s.GetStores().Reports.Update(s.GetContext(), disabled))

	s.scheduler.RunDue()

	s.Len(s.GetStores().Reports.All(s.GetContext()), 2)
}
