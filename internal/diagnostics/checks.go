package diagnostics

import (
	"github.com/skylens/routemetrics/internal/models"
)

// DefaultLoadFactorTolerance is the upper plausibility bound for a leg
// load factor. Values above 1.0 signal overbooking or data anomalies;
// 1.2 is a tolerance, not a business rule, and callers may override it.
const DefaultLoadFactorTolerance = 1.2

// DefaultRankingSize is the default N for top/bottom leg rankings.
const DefaultRankingSize = 10

// QualityReport holds data-quality violation counts. Violations are
// reported, never fatal: callers decide whether a non-zero count fails
// their build.
type QualityReport struct {
	LoadFactorTolerance float64 `json:"load_factor_tolerance"`

	// Leg-grain boundary checks
	NegativePaxLegs       int `json:"negative_pax_legs"`
	BadSeatLegs           int `json:"bad_seat_legs"` // Seats missing or <= 0
	OutOfBoundsLoadFactor int `json:"out_of_bounds_load_factor"`
	PaxExceedsCapacity    int `json:"pax_exceeds_capacity"`

	// Booking-grain anomaly counts
	RevenueWithZeroPax            int `json:"revenue_with_zero_pax"`
	NegativeRevenueComponent      int `json:"negative_revenue_component"`
	NegativePaxBookings           int `json:"negative_pax_bookings"`
	CancelledWithPositivePax      int `json:"cancelled_with_positive_pax"`
	CancelledWithCheckinAncillary int `json:"cancelled_with_checkin_ancillary"`
	CancellationBeforeReservation int `json:"cancellation_before_reservation"`
	ReservationAfterFlight        int `json:"reservation_after_flight"`
}

// Check runs every boundary assertion over the leg fact set and the
// raw bookings. A tolerance of 0 selects the default.
func Check(legs []models.LegFact, bookings []models.Booking, tolerance float64) QualityReport {
	if tolerance <= 0 {
		tolerance = DefaultLoadFactorTolerance
	}
	report := QualityReport{LoadFactorTolerance: tolerance}

	for i := range legs {
		leg := &legs[i]
		if leg.Pax < 0 {
			report.NegativePaxLegs++
		}
		if leg.Seats == nil || *leg.Seats <= 0 {
			report.BadSeatLegs++
		}
		if leg.LoadFactor != nil && (*leg.LoadFactor < 0 || *leg.LoadFactor > tolerance) {
			report.OutOfBoundsLoadFactor++
		}
		if leg.Seats != nil && leg.Pax > *leg.Seats {
			report.PaxExceedsCapacity++
		}
	}

	for i := range bookings {
		b := &bookings[i]
		if b.PassengerCount < 0 {
			report.NegativePaxBookings++
		}
		if b.PassengerCount == 0 && b.TotalRevenue() > 0 {
			report.RevenueWithZeroPax++
		}
		if b.TicketRevenue < 0 || b.AncillaryPreRevenue < 0 || b.AncillaryAtRevenue < 0 {
			report.NegativeRevenueComponent++
		}
		if b.IsCancelled() {
			if b.PassengerCount > 0 {
				report.CancelledWithPositivePax++
			}
			if b.AncillaryAtRevenue > 0 {
				report.CancelledWithCheckinAncillary++
			}
			// ISO dates compare lexically
			if b.ReservationDate != nil && *b.CancellationDate < *b.ReservationDate {
				report.CancellationBeforeReservation++
			}
		}
		if b.ReservationDate != nil && b.FlightDate != "" && *b.ReservationDate > b.FlightDate {
			report.ReservationAfterFlight++
		}
	}

	return report
}
