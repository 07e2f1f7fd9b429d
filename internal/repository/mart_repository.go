package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/skylens/routemetrics/internal/database"
	"github.com/skylens/routemetrics/internal/models"
)

// MartRepository handles database operations for the derived mart
// tables (leg_facts and segment_rollups). Both tables are rebuilt
// wholesale by each pipeline run: delete everything, insert the new
// rows, all inside one transaction, so readers never observe a
// half-built mart.
type MartRepository struct {
	db *sql.DB
}

// NewMartRepository creates a new mart repository
func NewMartRepository(db *sql.DB) *MartRepository {
	return &MartRepository{db: db}
}

// ReplaceLegFacts swaps the full leg_facts table for the given rows.
func (r *MartRepository) ReplaceLegFacts(legs []models.LegFact) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM leg_facts"); err != nil {
			return fmt.Errorf("failed to clear leg facts: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO leg_facts (
			flight_number, flight_date, origin, destination,
			pax, total_revenue, ancillary_revenue, cancels,
			seats, time_of_day, route_type,
			load_factor, rev_per_pax, yield_index, day_of_week
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare leg fact insert: %w", err)
		}
		defer stmt.Close()

		for i := range legs {
			l := &legs[i]
			_, err := stmt.Exec(
				l.FlightNumber, l.FlightDate, l.Origin, l.Destination,
				l.Pax, l.TotalRevenue, l.AncillaryRevenue, l.Cancels,
				l.Seats, l.TimeOfDay, l.RouteType,
				l.LoadFactor, l.RevPerPax, l.YieldIndex, l.DayOfWeek,
			)
			if err != nil {
				return fmt.Errorf("failed to insert leg fact %s: %w", l.Key(), err)
			}
		}
		return nil
	})
}

// ListLegFacts retrieves leg facts with filtering and ordering.
func (r *MartRepository) ListLegFacts(filter models.LegFilter) ([]models.LegFact, error) {
	query := `SELECT id, flight_number, flight_date, origin, destination,
		pax, total_revenue, ancillary_revenue, cancels,
		seats, time_of_day, route_type,
		load_factor, rev_per_pax, yield_index, day_of_week
		FROM leg_facts`

	var conditions []string
	var args []interface{}

	if filter.Origin != "" {
		conditions = append(conditions, "origin = ?")
		args = append(args, strings.ToUpper(filter.Origin))
	}
	if filter.Destination != "" {
		conditions = append(conditions, "destination = ?")
		args = append(args, strings.ToUpper(filter.Destination))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// NULLs sort last regardless of direction: an undefined metric
	// must never outrank a defined one.
	switch filter.OrderBy {
	case "load_factor":
		query += " ORDER BY load_factor IS NULL, load_factor DESC"
	case "rev_per_pax":
		query += " ORDER BY rev_per_pax IS NULL, rev_per_pax DESC"
	default:
		query += " ORDER BY total_revenue DESC"
	}

	if filter.Limit < 1 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}
	query += " LIMIT ?"
	args = append(args, filter.Limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leg facts: %w", err)
	}
	defer rows.Close()

	var legs []models.LegFact
	for rows.Next() {
		var l models.LegFact
		var dayOfWeek sql.NullString
		err := rows.Scan(
			&l.ID, &l.FlightNumber, &l.FlightDate, &l.Origin, &l.Destination,
			&l.Pax, &l.TotalRevenue, &l.AncillaryRevenue, &l.Cancels,
			&l.Seats, &l.TimeOfDay, &l.RouteType,
			&l.LoadFactor, &l.RevPerPax, &l.YieldIndex, &dayOfWeek,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leg fact: %w", err)
		}
		l.DayOfWeek = dayOfWeek.String
		legs = append(legs, l)
	}

	return legs, rows.Err()
}

// ListAllLegFacts retrieves the full mart in insertion order, for the
// pipeline and for breakdowns computed on demand.
func (r *MartRepository) ListAllLegFacts() ([]models.LegFact, error) {
	query := `SELECT id, flight_number, flight_date, origin, destination,
		pax, total_revenue, ancillary_revenue, cancels,
		seats, time_of_day, route_type,
		load_factor, rev_per_pax, yield_index, day_of_week
		FROM leg_facts ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leg facts: %w", err)
	}
	defer rows.Close()

	var legs []models.LegFact
	for rows.Next() {
		var l models.LegFact
		var dayOfWeek sql.NullString
		err := rows.Scan(
			&l.ID, &l.FlightNumber, &l.FlightDate, &l.Origin, &l.Destination,
			&l.Pax, &l.TotalRevenue, &l.AncillaryRevenue, &l.Cancels,
			&l.Seats, &l.TimeOfDay, &l.RouteType,
			&l.LoadFactor, &l.RevPerPax, &l.YieldIndex, &dayOfWeek,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leg fact: %w", err)
		}
		l.DayOfWeek = dayOfWeek.String
		legs = append(legs, l)
	}

	return legs, rows.Err()
}

// ReplaceSegments swaps the full segment_rollups table for the given rows.
func (r *MartRepository) ReplaceSegments(segments []models.SegmentRollup) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM segment_rollups"); err != nil {
			return fmt.Errorf("failed to clear segment rollups: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO segment_rollups (
			origin, destination, legs, pax, seats, cancels,
			total_revenue, ancillary_revenue, distance_km, ask
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare segment insert: %w", err)
		}
		defer stmt.Close()

		for i := range segments {
			s := &segments[i]
			_, err := stmt.Exec(
				s.Origin, s.Destination, s.Legs, s.Pax, s.Seats, s.Cancels,
				s.TotalRevenue, s.AncillaryRevenue, s.DistanceKm, s.ASK,
			)
			if err != nil {
				return fmt.Errorf("failed to insert segment %s: %w", s.Segment(), err)
			}
		}
		return nil
	})
}

// ListSegments retrieves every segment rollup ordered by revenue.
func (r *MartRepository) ListSegments() ([]models.SegmentRollup, error) {
	query := `SELECT id, origin, destination, legs, pax, seats, cancels,
		total_revenue, ancillary_revenue, distance_km, ask
		FROM segment_rollups ORDER BY total_revenue DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query segment rollups: %w", err)
	}
	defer rows.Close()

	var segments []models.SegmentRollup
	for rows.Next() {
		var s models.SegmentRollup
		err := rows.Scan(
			&s.ID, &s.Origin, &s.Destination, &s.Legs, &s.Pax, &s.Seats, &s.Cancels,
			&s.TotalRevenue, &s.AncillaryRevenue, &s.DistanceKm, &s.ASK,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment rollup: %w", err)
		}
		segments = append(segments, s)
	}

	return segments, rows.Err()
}
