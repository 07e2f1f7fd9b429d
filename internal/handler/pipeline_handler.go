package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skylens/routemetrics/internal/kpi"
	"github.com/skylens/routemetrics/internal/service"
	"github.com/skylens/routemetrics/pkg/response"
)

// PipelineHandler handles HTTP requests for pipeline runs
type PipelineHandler struct {
	service *service.PipelineService
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(service *service.PipelineService) *PipelineHandler {
	return &PipelineHandler{service: service}
}

// Run handles POST /api/v1/pipeline/run. An optional JSON body
// overrides the KPI parameters for this run only.
func (h *PipelineHandler) Run(c *gin.Context) {
	var params *kpi.Params
	if c.Request.ContentLength > 0 {
		var p kpi.Params
		if err := c.ShouldBindJSON(&p); err != nil {
			response.BadRequest(c, "Invalid parameter override", err)
			return
		}
		if err := p.Validate(); err != nil {
			response.BadRequest(c, "Invalid parameter override", err)
			return
		}
		params = &p
	}

	run, err := h.service.Run(params)
	if err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			response.Error(c, http.StatusConflict, "Pipeline busy", err)
			return
		}
		// The run row, if one was created, already records the failure.
		response.InternalError(c, "Pipeline run failed", err)
		return
	}
	response.Success(c, run)
}

// LatestRun handles GET /api/v1/pipeline/runs/latest
func (h *PipelineHandler) LatestRun(c *gin.Context) {
	run, err := h.service.LatestRun()
	if err != nil {
		response.InternalError(c, "Failed to get latest run", err)
		return
	}
	if run == nil {
		response.NotFound(c, "No pipeline run yet")
		return
	}
	response.Success(c, run)
}
