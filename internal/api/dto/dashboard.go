package dto

import "github.com/pulseboard/pulseboard/internal/types"

// KPI is one dashboard stat card
type KPI struct {
	Value       string         `json:"value"`
	Change      string         `json:"change"`
	Trend       types.KPITrend `json:"trend"`
	Description string         `json:"description"`
}

// DashboardKPIsResponse is the stat card row at the top of the dashboard
type DashboardKPIsResponse struct {
	TotalRevenue   KPI `json:"total_revenue"`
	ActiveUsers    KPI `json:"active_users"`
	ConversionRate KPI `json:"conversion_rate"`
	RetentionRate  KPI `json:"retention_rate"`
}
