package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/service"
	"github.com/pulseboard/pulseboard/internal/types"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	logger           *logger.Logger
}

func NewAnalyticsHandler(
	analyticsService service.AnalyticsService,
	logger *logger.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

func (h *AnalyticsHandler) GetRevenue(c *gin.Context) {
	period := types.ParsePeriodOr(c.Query("period"), types.DefaultRevenuePeriod)

	data, err := h.analyticsService.GetRevenueSeries(c.Request.Context(), period, true)
	if err != nil {
		h.logger.Errorw("failed to get revenue series", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.RevenueSeriesResponse{Period: string(period), Data: data})
}

func (h *AnalyticsHandler) GetActivity(c *gin.Context) {
	period := types.ParsePeriodOr(c.Query("period"), types.DefaultActivityPeriod)

	data, err := h.analyticsService.GetActivitySeries(c.Request.Context(), period)
	if err != nil {
		h.logger.Errorw("failed to get activity series", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ActivitySeriesResponse{Period: string(period), Data: data})
}

func (h *AnalyticsHandler) GetTraffic(c *gin.Context) {
	period := types.ParsePeriodOr(c.Query("period"), types.DefaultTrafficPeriod)

	data, err := h.analyticsService.GetTrafficSeries(c.Request.Context(), &period)
	if err != nil {
		h.logger.Errorw("failed to get traffic series", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.TrafficSeriesResponse{Period: string(period), Data: data})
}

func (h *AnalyticsHandler) GetRevenueBreakdown(c *gin.Context) {
	response, err := h.analyticsService.GetRevenueBreakdown(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get revenue breakdown", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}
