package models

// Booking represents one raw booking event as loaded by ingestion.
// Rows are immutable: the pipeline only ever reads them.
type Booking struct {
	ID        int64  `json:"id" db:"id"`
	BookingID string `json:"booking_id" db:"booking_id"` // Normalized PNR (digits only)

	// Leg identification
	FlightNumber string `json:"flight_number" db:"flight_number"`
	FlightDate   string `json:"flight_date" db:"flight_date"` // YYYY-MM-DD
	Origin       string `json:"origin" db:"origin"`           // Upper-cased IATA code
	Destination  string `json:"destination" db:"destination"` // Upper-cased IATA code

	// Passengers and revenue components
	PassengerCount      int     `json:"passenger_count" db:"passenger_count"`
	TicketRevenue       float64 `json:"ticket_revenue" db:"ticket_revenue"`
	AncillaryPreRevenue float64 `json:"ancillary_pre_revenue" db:"ancillary_pre_revenue"`
	AncillaryAtRevenue  float64 `json:"ancillary_at_revenue" db:"ancillary_at_revenue"`

	// Lifecycle dates (nil when not set)
	ReservationDate  *string `json:"reservation_date,omitempty" db:"reservation_date"`
	CancellationDate *string `json:"cancellation_date,omitempty" db:"cancellation_date"`

	// Cancellation lead times, derived at load when the dates allow
	DaysToCancelAfterBooking *int `json:"days_to_cancel_after_booking,omitempty" db:"days_to_cancel_after_booking"`
	DaysToCancelBeforeFlight *int `json:"days_to_cancel_before_flight,omitempty" db:"days_to_cancel_before_flight"`

	BookingChannel string `json:"booking_channel,omitempty" db:"booking_channel"`
	DayOfWeek      string `json:"day_of_week,omitempty" db:"day_of_week"`
}

// TotalRevenue sums the three revenue components of the booking.
func (b *Booking) TotalRevenue() float64 {
	return b.TicketRevenue + b.AncillaryPreRevenue + b.AncillaryAtRevenue
}

// AncillaryRevenue sums the pre-check-in and at-check-in components.
func (b *Booking) AncillaryRevenue() float64 {
	return b.AncillaryPreRevenue + b.AncillaryAtRevenue
}

// IsCancelled reports whether the booking carries a cancellation marker.
func (b *Booking) IsCancelled() bool {
	return b.CancellationDate != nil && *b.CancellationDate != ""
}
