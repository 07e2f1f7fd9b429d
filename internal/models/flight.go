package models

// Flight represents one raw operated-flight record. Joined 1:1 to
// aggregated bookings by (flight_number, flight_date).
type Flight struct {
	ID                int64  `json:"id" db:"id"`
	FlightNumber      string `json:"flight_number" db:"flight_number"`
	FlightDate        string `json:"flight_date" db:"flight_date"` // YYYY-MM-DD
	AvailableCapacity int    `json:"available_capacity" db:"available_capacity"`
	TimeOfDay         string `json:"time_of_day,omitempty" db:"time_of_day"`
	RouteType         string `json:"route_type,omitempty" db:"route_type"`
}

// Key returns the join key shared with aggregated bookings.
func (f *Flight) Key() string {
	return f.FlightNumber + "|" + f.FlightDate
}
