package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/skylens/routemetrics/internal/kpi"
	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/pipeline"
	"github.com/skylens/routemetrics/internal/repository"
)

// ErrRunInProgress is returned when a run is requested while another
// is still executing.
var ErrRunInProgress = errors.New("a pipeline run is already in progress")

// PipelineService handles business logic for pipeline runs
type PipelineService struct {
	runner  *pipeline.Runner
	runRepo *repository.RunRepository
	mu      sync.Mutex
	running bool
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(runner *pipeline.Runner, runRepo *repository.RunRepository) *PipelineService {
	return &PipelineService{runner: runner, runRepo: runRepo}
}

// Run executes one pipeline pass, optionally with a one-off KPI
// parameter override. Runs are serialized: a second request while one
// is in flight is rejected instead of queued.
func (s *PipelineService) Run(params *kpi.Params) (*models.PipelineRun, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrRunInProgress
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	return s.runner.RunWithParams(params)
}

// LatestRun retrieves the most recent run record, nil when no run has
// ever happened.
func (s *PipelineService) LatestRun() (*models.PipelineRun, error) {
	run, err := s.runRepo.Latest()
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	return run, nil
}
