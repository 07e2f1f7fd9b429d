package models

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// PipelineRun records one wholesale rebuild of the derived marts.
type PipelineRun struct {
	ID         int64   `json:"id" db:"id"`
	Status     string  `json:"status" db:"status"`
	StartedAt  string  `json:"started_at" db:"started_at"`
	FinishedAt *string `json:"finished_at,omitempty" db:"finished_at"`

	// Input and output row counts
	Bookings int `json:"bookings" db:"bookings"`
	Flights  int `json:"flights" db:"flights"`
	Legs     int `json:"legs" db:"legs"`
	Segments int `json:"segments" db:"segments"`

	// Data-quality violation counts (reported, never fatal)
	NegativePaxLegs       int `json:"negative_pax_legs" db:"negative_pax_legs"`
	BadSeatLegs           int `json:"bad_seat_legs" db:"bad_seat_legs"`
	OutOfBoundsLoadFactor int `json:"out_of_bounds_load_factor" db:"out_of_bounds_load_factor"`

	Error string `json:"error,omitempty" db:"error"`
}
