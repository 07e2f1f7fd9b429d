package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/service"
	"github.com/skylens/routemetrics/pkg/response"
)

// DiagnosticsHandler handles HTTP requests for data quality and insights
type DiagnosticsHandler struct {
	service *service.DiagnosticsService
}

// NewDiagnosticsHandler creates a new diagnostics handler
func NewDiagnosticsHandler(service *service.DiagnosticsService) *DiagnosticsHandler {
	return &DiagnosticsHandler{service: service}
}

// GetQuality handles GET /api/v1/diagnostics/quality
func (h *DiagnosticsHandler) GetQuality(c *gin.Context) {
	report, err := h.service.Quality()
	if err != nil {
		response.InternalError(c, "Failed to run quality checks", err)
		return
	}
	response.Success(c, report)
}

// GetBreakdown handles GET /api/v1/diagnostics/breakdowns/:name
func (h *DiagnosticsHandler) GetBreakdown(c *gin.Context) {
	name := c.Param("name")

	rows, err := h.service.Breakdown(name)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to compute breakdown", err)
		return
	}
	response.Success(c, gin.H{
		"name": name,
		"rows": rows,
	})
}

// GetCancelTiming handles GET /api/v1/diagnostics/cancel-timing
func (h *DiagnosticsHandler) GetCancelTiming(c *gin.Context) {
	timing, err := h.service.CancelTiming()
	if err != nil {
		response.InternalError(c, "Failed to summarize cancellations", err)
		return
	}
	response.Success(c, timing)
}

// GetCorrelation handles GET /api/v1/diagnostics/revenue-load-correlation
func (h *DiagnosticsHandler) GetCorrelation(c *gin.Context) {
	corr, err := h.service.RevenueLoadCorrelation()
	if err != nil {
		response.InternalError(c, "Failed to compute correlation", err)
		return
	}
	response.Success(c, gin.H{
		"correlation": corr,
		"defined":     corr != nil,
	})
}

// GetRankings handles GET /api/v1/diagnostics/rankings
func (h *DiagnosticsHandler) GetRankings(c *gin.Context) {
	var req models.RankingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	legs, err := h.service.RankLegs(req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to rank legs", err)
		return
	}
	response.Success(c, gin.H{
		"metric":     req.Metric,
		"descending": req.Descending,
		"data":       legs,
	})
}
