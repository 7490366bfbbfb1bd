package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	"github.com/pulseboard/pulseboard/internal/domain/metrics"
	"github.com/pulseboard/pulseboard/internal/types"
)

// Fixed category shares of the revenue breakdown view
var revenueBreakdownShares = []struct {
	Name    string
	Percent int
}{
	{"Subscriptions", 68},
	{"One-time purchases", 23},
	{"Add-ons", 9},
}

// AnalyticsService computes the windowed series behind the analytics and
// dashboard views. Every method scopes to the context principal.
type AnalyticsService interface {
	// GetRevenueSeries returns the month-bucketed revenue series for the
	// current year. Windowed mode keeps only months starting inside the
	// period; dashboard mode always yields all twelve buckets.
	GetRevenueSeries(ctx context.Context, period types.AnalyticsPeriod, windowed bool) ([]dto.RevenuePoint, error)

	// GetActivitySeries returns the Monday-first weekday-bucketed activity
	// series for rows inside the period.
	GetActivitySeries(ctx context.Context, period types.AnalyticsPeriod) ([]dto.ActivityPoint, error)

	// GetTrafficSeries returns per-source visit totals, largest first. A nil
	// period aggregates the full history.
	GetTrafficSeries(ctx context.Context, period *types.AnalyticsPeriod) ([]dto.TrafficSource, error)

	// GetRevenueBreakdown splits year-to-date revenue across the fixed
	// category shares.
	GetRevenueBreakdown(ctx context.Context) (*dto.RevenueBreakdownResponse, error)
}

type analyticsService struct {
	ServiceParams
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(params ServiceParams) AnalyticsService {
	return &analyticsService{ServiceParams: params}
}

func (s *analyticsService) GetRevenueSeries(ctx context.Context, period types.AnalyticsPeriod, windowed bool) ([]dto.RevenuePoint, error) {
	userID := types.GetUserID(ctx)
	now := time.Now().UTC()
	start := period.StartTime(now)

	var since *time.Time
	if windowed {
		since = &start
	}

	rows, err := s.RevenueRepo.ListByYear(ctx, userID, now.Year(), since)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int]*metrics.Revenue, len(rows))
	for _, row := range rows {
		if idx := types.MonthIndex(row.Month); idx >= 0 {
			byMonth[idx] = row
		}
	}

	// Left-join against the canonical month set so every bucket exists even
	// with no stored rows.
	series := make([]dto.RevenuePoint, 0, len(types.MonthNames))
	for i, month := range types.MonthNames {
		if windowed {
			monthStart := time.Date(now.Year(), time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
			if monthStart.Before(start) {
				continue
			}
		}
		point := dto.RevenuePoint{Month: month}
		if row, ok := byMonth[i]; ok {
			point.Revenue = row.Revenue
			point.Target = row.Target
		}
		series = append(series, point)
	}
	return series, nil
}

func (s *analyticsService) GetActivitySeries(ctx context.Context, period types.AnalyticsPeriod) ([]dto.ActivityPoint, error) {
	userID := types.GetUserID(ctx)
	now := time.Now().UTC()
	start := period.StartTime(now)

	rows, err := s.ActivityRepo.ListSince(ctx, userID, start)
	if err != nil {
		return nil, err
	}

	series := make([]dto.ActivityPoint, len(types.WeekdayNames))
	for i, day := range types.WeekdayNames {
		series[i] = dto.ActivityPoint{Day: day}
	}
	for _, row := range rows {
		idx := types.WeekdayIndex(row.Date)
		series[idx].Active += row.Active
		series[idx].New += row.New
	}
	return series, nil
}

func (s *analyticsService) GetTrafficSeries(ctx context.Context, period *types.AnalyticsPeriod) ([]dto.TrafficSource, error) {
	userID := types.GetUserID(ctx)

	var since *time.Time
	if period != nil {
		start := period.StartTime(time.Now().UTC())
		since = &start
	}

	totals, err := s.TrafficRepo.TotalsBySource(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	series := make([]dto.TrafficSource, 0, len(totals))
	for _, total := range totals {
		series = append(series, dto.TrafficSource{
			Name:  total.Name,
			Value: total.Total,
			Fill:  trafficFill(total),
		})
	}
	return series, nil
}

// trafficFill resolves a source's chart color: the stored fill wins, then
// the canonical color table, then the neutral fallback.
func trafficFill(total *metrics.TrafficSourceTotal) string {
	if total.Fill != "" {
		return total.Fill
	}
	if fill, ok := types.TrafficFillColors[total.Name]; ok {
		return fill
	}
	return types.TrafficFillFallback
}

func (s *analyticsService) GetRevenueBreakdown(ctx context.Context) (*dto.RevenueBreakdownResponse, error) {
	userID := types.GetUserID(ctx)
	now := time.Now().UTC()

	rows, err := s.RevenueRepo.ListByYear(ctx, userID, now.Year(), nil)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(decimal.NewFromFloat(row.Revenue))
	}

	resp := &dto.RevenueBreakdownResponse{
		Total:  total.InexactFloat64(),
		Slices: make([]dto.RevenueBreakdownSlice, 0, len(revenueBreakdownShares)),
	}
	for _, share := range revenueBreakdownShares {
		amount := total.Mul(decimal.NewFromInt(int64(share.Percent))).Div(decimal.NewFromInt(100))
		resp.Slices = append(resp.Slices, dto.RevenueBreakdownSlice{
			Name:    share.Name,
			Amount:  amount.InexactFloat64(),
			Percent: share.Percent,
		})
	}
	return resp, nil
}

// FormatPercentChange renders (cur-prev)/prev*100 with one decimal, a "%"
// suffix, and a leading "+" when non-negative. A zero previous value yields
// exactly "0.0%".
func FormatPercentChange(cur, prev decimal.Decimal) string {
	if prev.IsZero() {
		return "0.0%"
	}
	change := cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100))
	s := change.StringFixed(1) + "%"
	if change.Sign() >= 0 {
		return "+" + s
	}
	return s
}
