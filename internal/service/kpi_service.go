package service

import (
	"fmt"

	"github.com/skylens/routemetrics/internal/kpi"
	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/repository"
)

// KPIService handles business logic for persisted KPI values
type KPIService struct {
	kpiRepo *repository.KPIRepository
	params  kpi.Params
}

// NewKPIService creates a new KPI service
func NewKPIService(kpiRepo *repository.KPIRepository, params kpi.Params) *KPIService {
	return &KPIService{kpiRepo: kpiRepo, params: params}
}

// ListNames retrieves the KPI names produced by the latest run.
func (s *KPIService) ListNames() ([]string, error) {
	names, err := s.kpiRepo.ListNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi names: %w", err)
	}
	return names, nil
}

// GetByName retrieves all rows of one named KPI. An empty slice means
// the name is unknown or no run has been executed yet.
func (s *KPIService) GetByName(name string) ([]models.KPIValue, error) {
	if name == "" {
		return nil, fmt.Errorf("kpi name is required")
	}
	values, err := s.kpiRepo.GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get kpi %s: %w", name, err)
	}
	return values, nil
}

// Params returns the active KPI parameter record.
func (s *KPIService) Params() kpi.Params {
	return s.params
}
