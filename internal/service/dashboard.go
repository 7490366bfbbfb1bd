package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	"github.com/pulseboard/pulseboard/internal/domain/metrics"
	"github.com/pulseboard/pulseboard/internal/types"
)

// DashboardService assembles the stat cards and unfiltered chart views on
// the dashboard page.
type DashboardService interface {
	GetKPIs(ctx context.Context) (*dto.DashboardKPIsResponse, error)
	GetRevenueSeries(ctx context.Context) ([]dto.RevenuePoint, error)
	GetActivitySeries(ctx context.Context) ([]dto.ActivityPoint, error)
	GetTrafficSeries(ctx context.Context) ([]dto.TrafficSource, error)
}

type dashboardService struct {
	ServiceParams
	analytics AnalyticsService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{
		ServiceParams: params,
		analytics:     NewAnalyticsService(params),
	}
}

// GetRevenueSeries returns the full-year revenue chart
func (s *dashboardService) GetRevenueSeries(ctx context.Context) ([]dto.RevenuePoint, error) {
	return s.analytics.GetRevenueSeries(ctx, types.DefaultRevenuePeriod, false)
}

// GetActivitySeries returns the weekly activity chart
func (s *dashboardService) GetActivitySeries(ctx context.Context) ([]dto.ActivityPoint, error) {
	return s.analytics.GetActivitySeries(ctx, types.DefaultActivityPeriod)
}

// GetTrafficSeries returns the all-time traffic distribution
func (s *dashboardService) GetTrafficSeries(ctx context.Context) ([]dto.TrafficSource, error) {
	return s.analytics.GetTrafficSeries(ctx, nil)
}

func (s *dashboardService) GetKPIs(ctx context.Context) (*dto.DashboardKPIsResponse, error) {
	userID := types.GetUserID(ctx)
	now := time.Now().UTC()

	account, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	revenueKPI, err := s.revenueKPI(ctx, userID, account.Currency, now)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	totals, err := s.ActivityRepo.SumTotals(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	prevTotals, err := s.ActivityRepo.SumTotals(ctx, userID, &monthStart)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardKPIsResponse{
		TotalRevenue:   *revenueKPI,
		ActiveUsers:    activeUsersKPI(totals, prevTotals),
		ConversionRate: rateKPI(totals, prevTotals, conversionRate, "New signups as a share of active users"),
		RetentionRate:  rateKPI(totals, prevTotals, retentionRate, "Returning users as a share of active users"),
	}, nil
}

// revenueKPI sums the year's revenue and compares the current month against
// the previous one.
func (s *dashboardService) revenueKPI(ctx context.Context, userID string, currency types.Currency, now time.Time) (*dto.KPI, error) {
	rows, err := s.RevenueRepo.ListByYear(ctx, userID, now.Year(), nil)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	byMonth := make(map[int]decimal.Decimal, len(rows))
	for _, row := range rows {
		amount := decimal.NewFromFloat(row.Revenue)
		total = total.Add(amount)
		if idx := types.MonthIndex(row.Month); idx >= 0 {
			byMonth[idx] = amount
		}
	}

	curIdx := int(now.Month()) - 1
	cur := byMonth[curIdx]
	prev := decimal.Zero
	if curIdx > 0 {
		prev = byMonth[curIdx-1]
	}

	change := FormatPercentChange(cur, prev)
	return &dto.KPI{
		Value:       currency.FormatAmount(total),
		Change:      change,
		Trend:       trendOf(cur, prev),
		Description: "Total revenue this year",
	}, nil
}

func activeUsersKPI(totals, prevTotals *metrics.ActivityTotals) dto.KPI {
	cur := decimal.NewFromInt(totals.Active)
	prev := decimal.NewFromInt(prevTotals.Active)
	return dto.KPI{
		Value:       cur.String(),
		Change:      FormatPercentChange(cur, prev),
		Trend:       trendOf(cur, prev),
		Description: "Active users across the workspace",
	}
}

func conversionRate(t *metrics.ActivityTotals) decimal.Decimal {
	if t.Active == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(t.New).
		Div(decimal.NewFromInt(t.Active)).
		Mul(decimal.NewFromInt(100))
}

func retentionRate(t *metrics.ActivityTotals) decimal.Decimal {
	if t.Active == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(t.Active - t.New).
		Div(decimal.NewFromInt(t.Active)).
		Mul(decimal.NewFromInt(100))
}

func rateKPI(totals, prevTotals *metrics.ActivityTotals, rate func(*metrics.ActivityTotals) decimal.Decimal, description string) dto.KPI {
	cur := rate(totals)
	prev := rate(prevTotals)
	return dto.KPI{
		Value:       cur.StringFixed(1) + "%",
		Change:      FormatPercentChange(cur, prev),
		Trend:       trendOf(cur, prev),
		Description: description,
	}
}

func trendOf(cur, prev decimal.Decimal) types.KPITrend {
	if cur.LessThan(prev) {
		return types.KPITrendDown
	}
	return types.KPITrendUp
}
