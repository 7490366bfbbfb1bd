package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/pulseboard/pulseboard/internal/types"
)

type AnalyticsServiceSuite struct {
	ServiceTestSuite
	analytics AnalyticsService
}

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceSuite))
}

func (s *AnalyticsServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.analytics = NewAnalyticsService(s.params)
}

func (s *AnalyticsServiceSuite) TestRevenueSeriesUnfilteredAlwaysHasTwelveBuckets() {
	now := time.Now().UTC()
	s.seedRevenue(testUserID, "Jan", now.Year(), 1000, 1200, now)
	s.seedRevenue(testUserID, "Mar", now.Year(), 3000, 2500, now)

	series, err := s.analytics.GetRevenueSeries(s.GetContext(), types.DefaultRevenuePeriod, false)
	s.Require().NoError(err)
	s.Require().Len(series, 12)

	for i, point := range series {
		s.Equal(types.MonthNames[i], point.Month)
	}
	s.Equal(float64(1000), series[0].Revenue)
	s.Equal(float64(1200), series[0].Target)

	// Missing months carry zero values, not gaps.
	s.Equal(float64(0), series[1].Revenue)
	s.Equal(float64(0), series[1].Target)
	s.Equal(float64(3000), series[2].Revenue)
}

func (s *AnalyticsServiceSuite) TestRevenueSeriesIgnoresOtherTenants() {
	now := time.Now().UTC()
	s.seedRevenue("user_other", "Jan", now.Year(), 9999, 0, now)

	series, err := s.analytics.GetRevenueSeries(s.GetContext(), types.DefaultRevenuePeriod, false)
	s.Require().NoError(err)
	s.Require().Len(series, 12)
	s.Equal(float64(0), series[0].Revenue)
}

func (s *AnalyticsServiceSuite) TestRevenueSeriesWindowedDropsMonthsBeforeWindow() {
	now := time.Now().UTC()
	s.seedRevenue(testUserID, "Jan", now.Year(), 1000, 1200, now)

	series, err := s.analytics.GetRevenueSeries(s.GetContext(), types.AnalyticsPeriod30D, true)
	s.Require().NoError(err)

	start := types.AnalyticsPeriod30D.StartTime(now)
	expected := 0
	for i := range types.MonthNames {
		monthStart := time.Date(now.Year(), time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
		if !monthStart.Before(start) {
			expected++
		}
	}
	s.Require().Len(series, expected)
	for _, point := range series {
		idx := types.MonthIndex(point.Month)
		monthStart := time.Date(now.Year(), time.Month(idx+1), 1, 0, 0, 0, 0, time.UTC)
		s.False(monthStart.Before(start), "month %s starts before the window", point.Month)
	}
}

func (s *AnalyticsServiceSuite) TestActivitySeriesAlwaysHasSevenBuckets() {
	now := time.Now().UTC()
	s.seedActivity(testUserID, now.Add(-2*time.Hour), 120, 30)

	series, err := s.analytics.GetActivitySeries(s.GetContext(), types.DefaultActivityPeriod)
	s.Require().NoError(err)
	s.Require().Len(series, 7)

	for i, point := range series {
		s.Equal(types.WeekdayNames[i], point.Day)
	}

	idx := types.WeekdayIndex(now.Add(-2 * time.Hour))
	s.Equal(int64(120), series[idx].Active)
	s.Equal(int64(30), series[idx].New)
}

func (s *AnalyticsServiceSuite) TestActivitySeriesExcludesRowsOutsideWindow() {
	now := time.Now().UTC()
	s.seedActivity(testUserID, now.AddDate(0, 0, -10), 500, 100)

	series, err := s.analytics.GetActivitySeries(s.GetContext(), types.AnalyticsPeriod7D)
	s.Require().NoError(err)
	s.Require().Len(series, 7)
	for _, point := range series {
		s.Equal(int64(0), point.Active)
		s.Equal(int64(0), point.New)
	}
}

func (s *AnalyticsServiceSuite) TestTrafficSeriesSortsDescWithStableTies() {
	now := time.Now().UTC()
	s.seedTraffic(testUserID, "Organic", 400, "", now)
	s.seedTraffic(testUserID, "Direct", 700, "", now)
	s.seedTraffic(testUserID, "Email", 400, "", now)
	s.seedTraffic(testUserID, "Organic", 300, "", now)

	series, err := s.analytics.GetTrafficSeries(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Require().Len(series, 3)

	// Organic and Direct tie at 700; the tie breaks alphabetically.
	s.Equal("Direct", series[0].Name)
	s.Equal(int64(700), series[0].Value)
	s.Equal("Organic", series[1].Name)
	s.Equal(int64(700), series[1].Value)
	s.Equal("Email", series[2].Name)
	s.Equal(int64(400), series[2].Value)
}

func (s *AnalyticsServiceSuite) TestTrafficSeriesFillColors() {
	now := time.Now().UTC()
	s.seedTraffic(testUserID, "Organic", 500, "", now)
	s.seedTraffic(testUserID, "Partner", 300, "", now)
	s.seedTraffic(testUserID, "Custom", 100, "#123456", now)

	series, err := s.analytics.GetTrafficSeries(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Require().Len(series, 3)

	byName := make(map[string]string)
	for _, point := range series {
		byName[point.Name] = point.Fill
	}
	s.Equal("#3b82f6", byName["Organic"])
	s.Equal(types.TrafficFillFallback, byName["Partner"])
	s.Equal("#123456", byName["Custom"])
}

func (s *AnalyticsServiceSuite) TestTrafficSeriesEmptyWithoutRows() {
	series, err := s.analytics.GetTrafficSeries(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Empty(series)
}

func (s *AnalyticsServiceSuite) TestRevenueBreakdownShares() {
	now := time.Now().UTC()
	s.seedRevenue(testUserID, "Jan", now.Year(), 600, 0, now)
	s.seedRevenue(testUserID, "Feb", now.Year(), 400, 0, now)

	breakdown, err := s.analytics.GetRevenueBreakdown(s.GetContext())
	s.Require().NoError(err)
	s.Equal(float64(1000), breakdown.Total)
	s.Require().Len(breakdown.Slices, 3)

	s.Equal("Subscriptions", breakdown.Slices[0].Name)
	s.Equal(68, breakdown.Slices[0].Percent)
	s.Equal(float64(680), breakdown.Slices[0].Amount)
	s.Equal("One-time purchases", breakdown.Slices[1].Name)
	s.Equal(23, breakdown.Slices[1].Percent)
	s.Equal(float64(230), breakdown.Slices[1].Amount)
	s.Equal("Add-ons", breakdown.Slices[2].Name)
	s.Equal(9, breakdown.Slices[2].Percent)
	s.Equal(float64(90), breakdown.Slices[2].Amount)
}

func (s *AnalyticsServiceSuite) TestFormatPercentChange() {
	s.Equal("+25.0%", FormatPercentChange(decimal.NewFromInt(125), decimal.NewFromInt(100)))
	s.Equal("-20.0%", FormatPercentChange(decimal.NewFromInt(80), decimal.NewFromInt(100)))
	s.Equal("+0.0%", FormatPercentChange(decimal.NewFromInt(100), decimal.NewFromInt(100)))

	// A zero baseline never divides; the change reads as flat.
	s.Equal("0.0%", FormatPercentChange(decimal.NewFromInt(500), decimal.Zero))
}
