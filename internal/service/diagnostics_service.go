package service

import (
	"fmt"

	"github.com/skylens/routemetrics/internal/diagnostics"
	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/repository"
)

// Breakdown names addressable via the diagnostics API.
const (
	BreakdownLoadFactorByTimeOfDay = "load_factor_by_time_of_day"
	BreakdownLoadFactorByDayOfWeek = "load_factor_by_day_of_week"
	BreakdownCancelRateBySegment   = "cancel_rate_by_segment"
	BreakdownCancelRateByChannel   = "cancel_rate_by_channel"
	BreakdownAncillaryShare        = "ancillary_share_by_segment"
	BreakdownDirectionalImbalance  = "directional_imbalance"
)

// DiagnosticsService handles business logic for data quality checks
// and insight breakdowns. Breakdowns are recomputed on demand from the
// persisted marts, so they always reflect the latest run.
type DiagnosticsService struct {
	martRepo *repository.MartRepository
	rawRepo  *repository.RawRepository
}

// NewDiagnosticsService creates a new diagnostics service
func NewDiagnosticsService(martRepo *repository.MartRepository, rawRepo *repository.RawRepository) *DiagnosticsService {
	return &DiagnosticsService{martRepo: martRepo, rawRepo: rawRepo}
}

// Quality runs the full data quality report over the current marts
// and raw bookings.
func (s *DiagnosticsService) Quality() (*diagnostics.QualityReport, error) {
	legs, err := s.martRepo.ListAllLegFacts()
	if err != nil {
		return nil, fmt.Errorf("failed to load leg facts: %w", err)
	}
	bookings, err := s.rawRepo.ListBookings()
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	report := diagnostics.Check(legs, bookings, diagnostics.DefaultLoadFactorTolerance)
	return &report, nil
}

// Breakdown computes one named insight breakdown.
func (s *DiagnosticsService) Breakdown(name string) ([]diagnostics.BreakdownRow, error) {
	switch name {
	case BreakdownLoadFactorByTimeOfDay, BreakdownLoadFactorByDayOfWeek,
		BreakdownCancelRateBySegment, BreakdownAncillaryShare,
		BreakdownDirectionalImbalance:
		legs, err := s.martRepo.ListAllLegFacts()
		if err != nil {
			return nil, fmt.Errorf("failed to load leg facts: %w", err)
		}
		switch name {
		case BreakdownLoadFactorByTimeOfDay:
			return diagnostics.AvgLoadFactorByTimeOfDay(legs), nil
		case BreakdownLoadFactorByDayOfWeek:
			return diagnostics.AvgLoadFactorByDayOfWeek(legs), nil
		case BreakdownCancelRateBySegment:
			return diagnostics.CancelRateBySegment(legs), nil
		case BreakdownAncillaryShare:
			return diagnostics.AncillaryShareBySegment(legs), nil
		default:
			return diagnostics.DirectionalImbalance(legs), nil
		}
	case BreakdownCancelRateByChannel:
		bookings, err := s.rawRepo.ListBookings()
		if err != nil {
			return nil, fmt.Errorf("failed to load bookings: %w", err)
		}
		return diagnostics.CancelRateByChannel(bookings), nil
	default:
		return nil, fmt.Errorf("unknown breakdown: %s", name)
	}
}

// CancelTiming summarizes cancellation lead times over raw bookings.
func (s *DiagnosticsService) CancelTiming() (*diagnostics.CancelTiming, error) {
	bookings, err := s.rawRepo.ListBookings()
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	timing := diagnostics.CancelTimingSummary(bookings)
	return &timing, nil
}

// RevenueLoadCorrelation returns the Pearson correlation between leg
// revenue and load factor, nil when too few defined pairs exist.
func (s *DiagnosticsService) RevenueLoadCorrelation() (*float64, error) {
	legs, err := s.martRepo.ListAllLegFacts()
	if err != nil {
		return nil, fmt.Errorf("failed to load leg facts: %w", err)
	}
	return diagnostics.RevenueLoadCorrelation(legs), nil
}

// RankLegs returns a top/bottom-N leg ranking by one leg metric.
func (s *DiagnosticsService) RankLegs(req models.RankingRequest) ([]models.LegFact, error) {
	switch req.Metric {
	case diagnostics.MetricLoadFactor, diagnostics.MetricRevPerPax:
	default:
		return nil, fmt.Errorf("invalid ranking metric: %s", req.Metric)
	}

	legs, err := s.martRepo.ListAllLegFacts()
	if err != nil {
		return nil, fmt.Errorf("failed to load leg facts: %w", err)
	}
	return diagnostics.RankLegs(legs, req.Metric, req.N, req.Descending), nil
}
