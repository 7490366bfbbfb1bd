package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

func NewDashboardHandler(
	dashboardService service.DashboardService,
	logger *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

func (h *DashboardHandler) GetKPIs(c *gin.Context) {
	response, err := h.dashboardService.GetKPIs(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get dashboard kpis", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *DashboardHandler) GetRevenue(c *gin.Context) {
	response, err := h.dashboardService.GetRevenueSeries(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get dashboard revenue", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *DashboardHandler) GetActivity(c *gin.Context) {
	response, err := h.dashboardService.GetActivitySeries(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get dashboard activity", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *DashboardHandler) GetTraffic(c *gin.Context) {
	response, err := h.dashboardService.GetTrafficSeries(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get dashboard traffic", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}
