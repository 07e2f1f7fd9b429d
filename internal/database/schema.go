package database

import (
	"database/sql"
	"fmt"
)

// schema is the full DDL for raw tables, derived marts, and run
// bookkeeping. The schema set is fixed and ships with the binary, so
// it is applied idempotently at startup instead of via migration
// files. Raw tables are written only by ingestion; every derived table
// is wholesale-replaced by a pipeline run.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		booking_id TEXT NOT NULL,
		flight_number TEXT NOT NULL,
		flight_date TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		passenger_count INTEGER NOT NULL,
		ticket_revenue REAL NOT NULL DEFAULT 0,
		ancillary_pre_revenue REAL NOT NULL DEFAULT 0,
		ancillary_at_revenue REAL NOT NULL DEFAULT 0,
		reservation_date TEXT,
		cancellation_date TEXT,
		days_to_cancel_after_booking INTEGER,
		days_to_cancel_before_flight INTEGER,
		booking_channel TEXT,
		day_of_week TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_leg
		ON bookings(flight_number, flight_date, origin, destination)`,

	`CREATE TABLE IF NOT EXISTS flights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		flight_number TEXT NOT NULL,
		flight_date TEXT NOT NULL,
		available_capacity INTEGER NOT NULL,
		time_of_day TEXT,
		route_type TEXT,
		UNIQUE(flight_number, flight_date)
	)`,

	`CREATE TABLE IF NOT EXISTS leg_facts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		flight_number TEXT NOT NULL,
		flight_date TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		pax INTEGER NOT NULL,
		total_revenue REAL NOT NULL,
		ancillary_revenue REAL NOT NULL,
		cancels INTEGER NOT NULL,
		seats INTEGER,
		time_of_day TEXT,
		route_type TEXT,
		load_factor REAL,
		rev_per_pax REAL,
		yield_index REAL,
		day_of_week TEXT,
		UNIQUE(flight_number, flight_date, origin, destination)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leg_facts_segment
		ON leg_facts(origin, destination)`,

	`CREATE TABLE IF NOT EXISTS segment_rollups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		legs INTEGER NOT NULL,
		pax INTEGER NOT NULL,
		seats INTEGER NOT NULL,
		cancels INTEGER NOT NULL,
		total_revenue REAL NOT NULL,
		ancillary_revenue REAL NOT NULL,
		distance_km REAL,
		ask REAL,
		UNIQUE(origin, destination)
	)`,

	`CREATE TABLE IF NOT EXISTS kpi_values (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		dim_key TEXT NOT NULL DEFAULT '',
		value REAL,
		defined INTEGER NOT NULL DEFAULT 0,
		available INTEGER NOT NULL DEFAULT 1,
		UNIQUE(name, dim_key)
	)`,

	`CREATE TABLE IF NOT EXISTS pipeline_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		status TEXT NOT NULL,
		started_at TEXT NOT NULL DEFAULT (datetime('now')),
		finished_at TEXT,
		bookings INTEGER NOT NULL DEFAULT 0,
		flights INTEGER NOT NULL DEFAULT 0,
		legs INTEGER NOT NULL DEFAULT 0,
		segments INTEGER NOT NULL DEFAULT 0,
		negative_pax_legs INTEGER NOT NULL DEFAULT 0,
		bad_seat_legs INTEGER NOT NULL DEFAULT 0,
		out_of_bounds_load_factor INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT ''
	)`,
}

// InitSchema applies the embedded DDL.
func InitSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
