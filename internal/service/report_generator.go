package service

import (
	"context"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/pulseboard/pulseboard/internal/domain/report"
	"github.com/pulseboard/pulseboard/internal/domain/user"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

type revenueCSVRow struct {
	Month   string  `csv:"month"`
	Revenue float64 `csv:"revenue"`
	Target  float64 `csv:"target"`
}

type activityCSVRow struct {
	Day    string `csv:"day"`
	Active int64  `csv:"active_users"`
	New    int64  `csv:"new_users"`
}

type growthCSVRow struct {
	Month   string  `csv:"month"`
	Revenue float64 `csv:"revenue"`
	Change  string  `csv:"change"`
}

type teamCSVRow struct {
	Name   string `csv:"name"`
	Email  string `csv:"email"`
	Role   string `csv:"role"`
	Status string `csv:"status"`
}

// ReportGenerator builds CSV artifacts from the owning tenant's analytics
// data. The context passed in must carry the report owner as its principal.
type ReportGenerator struct {
	params    ServiceParams
	analytics AnalyticsService
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(params ServiceParams) *ReportGenerator {
	return &ReportGenerator{
		params:    params,
		analytics: NewAnalyticsService(params),
	}
}

// Generate produces the CSV artifact bytes for a report
func (g *ReportGenerator) Generate(ctx context.Context, rep *report.Report) ([]byte, error) {
	switch rep.Type {
	case types.ReportTypeRevenue:
		return g.revenueCSV(ctx)
	case types.ReportTypeAnalytics:
		return g.analyticsCSV(ctx)
	case types.ReportTypeGrowth:
		return g.growthCSV(ctx)
	case types.ReportTypeTeam:
		return g.teamCSV(ctx)
	default:
		return nil, ierr.NewErrorf("unsupported report type: %s", rep.Type).
			Mark(ierr.ErrValidation)
	}
}

func (g *ReportGenerator) revenueCSV(ctx context.Context) ([]byte, error) {
	series, err := g.analytics.GetRevenueSeries(ctx, types.DefaultRevenuePeriod, false)
	if err != nil {
		return nil, err
	}
	rows := make([]revenueCSVRow, 0, len(series))
	for _, point := range series {
		rows = append(rows, revenueCSVRow{Month: point.Month, Revenue: point.Revenue, Target: point.Target})
	}
	return marshalCSV(&rows)
}

func (g *ReportGenerator) analyticsCSV(ctx context.Context) ([]byte, error) {
	series, err := g.analytics.GetActivitySeries(ctx, types.DefaultActivityPeriod)
	if err != nil {
		return nil, err
	}
	rows := make([]activityCSVRow, 0, len(series))
	for _, point := range series {
		rows = append(rows, activityCSVRow{Day: point.Day, Active: point.Active, New: point.New})
	}
	return marshalCSV(&rows)
}

func (g *ReportGenerator) growthCSV(ctx context.Context) ([]byte, error) {
	series, err := g.analytics.GetRevenueSeries(ctx, types.DefaultRevenuePeriod, false)
	if err != nil {
		return nil, err
	}
	rows := make([]growthCSVRow, 0, len(series))
	prev := decimal.Zero
	for _, point := range series {
		cur := decimal.NewFromFloat(point.Revenue)
		rows = append(rows, growthCSVRow{
			Month:   point.Month,
			Revenue: point.Revenue,
			Change:  FormatPercentChange(cur, prev),
		})
		prev = cur
	}
	return marshalCSV(&rows)
}

func (g *ReportGenerator) teamCSV(ctx context.Context) ([]byte, error) {
	members, err := g.params.UserRepo.List(ctx, user.NewFilter())
	if err != nil {
		return nil, err
	}
	rows := make([]teamCSVRow, 0, len(members))
	for _, member := range members {
		rows = append(rows, teamCSVRow{
			Name:   member.Name,
			Email:  member.Email,
			Role:   string(member.Role),
			Status: string(member.Status),
		})
	}
	return marshalCSV(&rows)
}

func marshalCSV(rows interface{}) ([]byte, error) {
	data, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode report CSV").
			Mark(ierr.ErrInternal)
	}
	return data, nil
}
