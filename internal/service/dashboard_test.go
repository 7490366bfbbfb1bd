package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pulseboard/pulseboard/internal/types"
)

type DashboardServiceSuite struct {
	ServiceTestSuite
	dashboard DashboardService
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.dashboard = NewDashboardService(s.params)
}

func (s *DashboardServiceSuite) TestKPIsWithNoDataReadFlat() {
	kpis, err := s.dashboard.GetKPIs(s.GetContext())
	s.Require().NoError(err)

	// Nothing recorded: every change guards the zero baseline.
	s.Equal("$0", kpis.TotalRevenue.Value)
	s.Equal("0.0%", kpis.TotalRevenue.Change)
	s.Equal("0", kpis.ActiveUsers.Value)
	s.Equal("0.0%", kpis.ActiveUsers.Change)
	s.Equal("0.0%", kpis.ConversionRate.Value)
	s.Equal("0.0%", kpis.ConversionRate.Change)
	s.Equal("0.0%", kpis.RetentionRate.Value)
}

func (s *DashboardServiceSuite) TestConversionAndRetentionDeriveFromActivity() {
	// All rows land inside the current month so the previous-month
	// baseline is zero and the change reads flat.
	monthStart := time.Now().UTC()
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 12, 0, 0, 0, time.UTC)
	s.seedActivity(testUserID, monthStart, 200, 50)

	kpis, err := s.dashboard.GetKPIs(s.GetContext())
	s.Require().NoError(err)

	s.Equal("200", kpis.ActiveUsers.Value)
	s.Equal("25.0%", kpis.ConversionRate.Value)
	s.Equal("75.0%", kpis.RetentionRate.Value)
	s.Equal("0.0%", kpis.ConversionRate.Change)
	s.Equal(types.KPITrendUp, kpis.ConversionRate.Trend)
}

func (s *DashboardServiceSuite) TestRevenueKPIFormatsWithCurrency() {
	now := time.Now().UTC()
	s.seedRevenue(testUserID, "Jan", now.Year(), 45231.5, 40000, now)

	kpis, err := s.dashboard.GetKPIs(s.GetContext())
	s.Require().NoError(err)
	s.Equal("$45,231.5", kpis.TotalRevenue.Value)
}

func (s *DashboardServiceSuite) TestDashboardSeriesAreUnfiltered() {
	now := time.Now().UTC()
	s.seedRevenue(testUserID, "Jan", now.Year(), 100, 100, now)

	revenue, err := s.dashboard.GetRevenueSeries(s.GetContext())
	s.Require().NoError(err)
	s.Len(revenue, 12)

	activity, err := s.dashboard.GetActivitySeries(s.GetContext())
	s.Require().NoError(err)
	s.Len(activity, 7)

	traffic, err := s.dashboard.GetTrafficSeries(s.GetContext())
	s.Require().NoError(err)
	s.Empty(traffic)
}
