package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/service"
	"github.com/skylens/routemetrics/pkg/response"
)

// MartHandler handles HTTP requests for the derived marts
type MartHandler struct {
	service *service.MartService
}

// NewMartHandler creates a new mart handler
func NewMartHandler(service *service.MartService) *MartHandler {
	return &MartHandler{service: service}
}

// GetLegFacts handles GET /api/v1/marts/legs
func (h *MartHandler) GetLegFacts(c *gin.Context) {
	var filter models.LegFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	legs, err := h.service.GetLegFacts(filter)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to get leg facts", err)
		return
	}
	response.Success(c, gin.H{
		"data":  legs,
		"total": len(legs),
	})
}

// GetSegments handles GET /api/v1/marts/segments
func (h *MartHandler) GetSegments(c *gin.Context) {
	segments, err := h.service.GetSegments()
	if err != nil {
		response.InternalError(c, "Failed to get segment rollups", err)
		return
	}
	response.Success(c, gin.H{
		"data":  segments,
		"total": len(segments),
	})
}
