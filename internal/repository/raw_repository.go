package repository

import (
	"database/sql"
	"fmt"

	"github.com/skylens/routemetrics/internal/database"
	"github.com/skylens/routemetrics/internal/models"
)

// RawRepository handles database operations for the raw booking and
// flight tables. These tables are append-only: ingestion writes them,
// the pipeline only reads.
type RawRepository struct {
	db *sql.DB
}

// NewRawRepository creates a new raw repository
func NewRawRepository(db *sql.DB) *RawRepository {
	return &RawRepository{db: db}
}

// InsertBookings appends a batch of bookings in a single transaction.
func (r *RawRepository) InsertBookings(bookings []models.Booking) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO bookings (
			booking_id, flight_number, flight_date, origin, destination,
			passenger_count, ticket_revenue, ancillary_pre_revenue, ancillary_at_revenue,
			reservation_date, cancellation_date,
			days_to_cancel_after_booking, days_to_cancel_before_flight,
			booking_channel, day_of_week
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare booking insert: %w", err)
		}
		defer stmt.Close()

		for i := range bookings {
			b := &bookings[i]
			_, err := stmt.Exec(
				b.BookingID, b.FlightNumber, b.FlightDate, b.Origin, b.Destination,
				b.PassengerCount, b.TicketRevenue, b.AncillaryPreRevenue, b.AncillaryAtRevenue,
				b.ReservationDate, b.CancellationDate,
				b.DaysToCancelAfterBooking, b.DaysToCancelBeforeFlight,
				b.BookingChannel, b.DayOfWeek,
			)
			if err != nil {
				return fmt.Errorf("failed to insert booking %s: %w", b.BookingID, err)
			}
		}
		return nil
	})
}

// InsertFlights appends a batch of flights in a single transaction.
// Re-ingesting the same (flight_number, flight_date) replaces the row.
func (r *RawRepository) InsertFlights(flights []models.Flight) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO flights (
			flight_number, flight_date, available_capacity, time_of_day, route_type
		) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare flight insert: %w", err)
		}
		defer stmt.Close()

		for i := range flights {
			f := &flights[i]
			_, err := stmt.Exec(f.FlightNumber, f.FlightDate, f.AvailableCapacity, f.TimeOfDay, f.RouteType)
			if err != nil {
				return fmt.Errorf("failed to insert flight %s: %w", f.Key(), err)
			}
		}
		return nil
	})
}

// ListBookings retrieves every raw booking in insertion order.
func (r *RawRepository) ListBookings() ([]models.Booking, error) {
	query := `SELECT id, booking_id, flight_number, flight_date, origin, destination,
		passenger_count, ticket_revenue, ancillary_pre_revenue, ancillary_at_revenue,
		reservation_date, cancellation_date,
		days_to_cancel_after_booking, days_to_cancel_before_flight,
		booking_channel, day_of_week
		FROM bookings ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		var channel, dayOfWeek sql.NullString
		err := rows.Scan(
			&b.ID, &b.BookingID, &b.FlightNumber, &b.FlightDate, &b.Origin, &b.Destination,
			&b.PassengerCount, &b.TicketRevenue, &b.AncillaryPreRevenue, &b.AncillaryAtRevenue,
			&b.ReservationDate, &b.CancellationDate,
			&b.DaysToCancelAfterBooking, &b.DaysToCancelBeforeFlight,
			&channel, &dayOfWeek,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.BookingChannel = channel.String
		b.DayOfWeek = dayOfWeek.String
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// ListFlights retrieves every raw flight record.
func (r *RawRepository) ListFlights() ([]models.Flight, error) {
	query := `SELECT id, flight_number, flight_date, available_capacity, time_of_day, route_type
		FROM flights ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	var flights []models.Flight
	for rows.Next() {
		var f models.Flight
		var timeOfDay, routeType sql.NullString
		err := rows.Scan(&f.ID, &f.FlightNumber, &f.FlightDate, &f.AvailableCapacity, &timeOfDay, &routeType)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		f.TimeOfDay = timeOfDay.String
		f.RouteType = routeType.String
		flights = append(flights, f)
	}

	return flights, rows.Err()
}

// CountRaw returns the raw table row counts for run bookkeeping.
func (r *RawRepository) CountRaw() (bookings, flights int, err error) {
	if err := r.db.QueryRow("SELECT COUNT(*) FROM bookings").Scan(&bookings); err != nil {
		return 0, 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	if err := r.db.QueryRow("SELECT COUNT(*) FROM flights").Scan(&flights); err != nil {
		return 0, 0, fmt.Errorf("failed to count flights: %w", err)
	}
	return bookings, flights, nil
}
