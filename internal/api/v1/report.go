package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/service"
)

type ReportHandler struct {
	reportService service.ReportService
	logger        *logger.Logger
}

func NewReportHandler(
	reportService service.ReportService,
	logger *logger.Logger,
) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.reportService.CreateReport(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to create report", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	response, err := h.reportService.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	response, err := h.reportService.ListReports(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list reports", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ReportHandler) ListScheduledReports(c *gin.Context) {
	response, err := h.reportService.ListScheduledReports(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list scheduled reports", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ReportHandler) DownloadReport(c *gin.Context) {
	response, err := h.reportService.DownloadReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	if err := h.reportService.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "report deleted"})
}
