package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skylens/routemetrics/internal/service"
	"github.com/skylens/routemetrics/pkg/response"
)

// KPIHandler handles HTTP requests for KPI values
type KPIHandler struct {
	service *service.KPIService
}

// NewKPIHandler creates a new KPI handler
func NewKPIHandler(service *service.KPIService) *KPIHandler {
	return &KPIHandler{service: service}
}

// ListNames handles GET /api/v1/kpis
func (h *KPIHandler) ListNames(c *gin.Context) {
	names, err := h.service.ListNames()
	if err != nil {
		response.InternalError(c, "Failed to list KPIs", err)
		return
	}
	response.Success(c, gin.H{
		"names": names,
		"total": len(names),
	})
}

// GetByName handles GET /api/v1/kpis/:name
func (h *KPIHandler) GetByName(c *gin.Context) {
	name := c.Param("name")

	values, err := h.service.GetByName(name)
	if err != nil {
		response.InternalError(c, "Failed to get KPI", err)
		return
	}
	if len(values) == 0 {
		response.NotFound(c, "Unknown KPI or no completed run: "+name)
		return
	}
	response.Success(c, gin.H{
		"name":   name,
		"values": values,
	})
}

// GetParams handles GET /api/v1/config/params
func (h *KPIHandler) GetParams(c *gin.Context) {
	response.Success(c, h.service.Params())
}
