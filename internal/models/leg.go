package models

// LegFact is one operated flight leg: the pipeline's aggregation grain.
// Key = (flight_number, flight_date, origin, destination). Nullable
// fields stay nil when the flight join missed or a denominator was
// zero; they are never defaulted to zero.
type LegFact struct {
	ID int64 `json:"id" db:"id"`

	// Grouping key — all four fields; fewer would silently merge
	// revenue from distinct legs.
	FlightNumber string `json:"flight_number" db:"flight_number"`
	FlightDate   string `json:"flight_date" db:"flight_date"`
	Origin       string `json:"origin" db:"origin"`
	Destination  string `json:"destination" db:"destination"`

	// Aggregated from bookings
	Pax              int     `json:"pax" db:"pax"`
	TotalRevenue     float64 `json:"total_revenue" db:"total_revenue"`
	AncillaryRevenue float64 `json:"ancillary_revenue" db:"ancillary_revenue"`
	Cancels          int     `json:"cancels" db:"cancels"`

	// Joined from the flight record; nil on a join miss
	Seats     *int    `json:"seats,omitempty" db:"seats"`
	TimeOfDay *string `json:"time_of_day,omitempty" db:"time_of_day"`
	RouteType *string `json:"route_type,omitempty" db:"route_type"`

	// Derived; nil means undefined, not zero
	LoadFactor *float64 `json:"load_factor,omitempty" db:"load_factor"`
	RevPerPax  *float64 `json:"rev_per_pax,omitempty" db:"rev_per_pax"`
	YieldIndex *float64 `json:"yield_index,omitempty" db:"yield_index"`

	DayOfWeek string `json:"day_of_week,omitempty" db:"day_of_week"`
}

// Key returns the four-field grouping key of the leg.
func (l *LegFact) Key() string {
	return l.FlightNumber + "|" + l.FlightDate + "|" + l.Origin + "|" + l.Destination
}

// FlightKey returns the (flight_number, flight_date) join key.
func (l *LegFact) FlightKey() string {
	return l.FlightNumber + "|" + l.FlightDate
}

// Segment returns the origin-destination pair as "ORG-DST".
func (l *LegFact) Segment() string {
	return l.Origin + "-" + l.Destination
}

// SegmentRollup is the (origin, destination) aggregate over leg facts.
// Pure sums only; all averaging happens in the KPI engine.
type SegmentRollup struct {
	ID          int64  `json:"id" db:"id"`
	Origin      string `json:"origin" db:"origin"`
	Destination string `json:"destination" db:"destination"`

	Legs             int     `json:"legs" db:"legs"`
	Pax              int     `json:"pax" db:"pax"`
	Seats            int     `json:"seats" db:"seats"` // Legs with unknown capacity contribute 0
	Cancels          int     `json:"cancels" db:"cancels"`
	TotalRevenue     float64 `json:"total_revenue" db:"total_revenue"`
	AncillaryRevenue float64 `json:"ancillary_revenue" db:"ancillary_revenue"`

	// Great-circle enrichment; nil when an endpoint airport is unknown
	DistanceKm *float64 `json:"distance_km,omitempty" db:"distance_km"`
	ASK        *float64 `json:"ask,omitempty" db:"ask"` // Available seat kilometers
}

// Segment returns the origin-destination pair as "ORG-DST".
func (s *SegmentRollup) Segment() string {
	return s.Origin + "-" + s.Destination
}
