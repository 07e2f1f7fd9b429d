package service

import (
	"fmt"

	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/repository"
)

// MartService handles business logic for the derived mart tables
type MartService struct {
	martRepo *repository.MartRepository
}

// NewMartService creates a new mart service
func NewMartService(martRepo *repository.MartRepository) *MartService {
	return &MartService{martRepo: martRepo}
}

// GetLegFacts retrieves leg facts with filtering and ordering.
func (s *MartService) GetLegFacts(filter models.LegFilter) ([]models.LegFact, error) {
	switch filter.OrderBy {
	case "", "revenue", "load_factor", "rev_per_pax":
	default:
		return nil, fmt.Errorf("invalid orderBy: %s", filter.OrderBy)
	}

	legs, err := s.martRepo.ListLegFacts(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get leg facts: %w", err)
	}
	return legs, nil
}

// GetSegments retrieves every segment rollup.
func (s *MartService) GetSegments() ([]models.SegmentRollup, error) {
	segments, err := s.martRepo.ListSegments()
	if err != nil {
		return nil, fmt.Errorf("failed to get segment rollups: %w", err)
	}
	return segments, nil
}
