package repository

import (
	"database/sql"
	"fmt"

	"github.com/skylens/routemetrics/internal/models"
)

// RunRepository handles database operations for pipeline run bookkeeping.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run in the running state and returns its ID.
func (r *RunRepository) Create() (int64, error) {
	result, err := r.db.Exec("INSERT INTO pipeline_runs (status) VALUES (?)", models.RunStatusRunning)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return id, nil
}

// Finish records the terminal state and counters of a run.
func (r *RunRepository) Finish(run *models.PipelineRun) error {
	_, err := r.db.Exec(`UPDATE pipeline_runs SET
		status = ?, finished_at = datetime('now'),
		bookings = ?, flights = ?, legs = ?, segments = ?,
		negative_pax_legs = ?, bad_seat_legs = ?, out_of_bounds_load_factor = ?,
		error = ?
		WHERE id = ?`,
		run.Status,
		run.Bookings, run.Flights, run.Legs, run.Segments,
		run.NegativePaxLegs, run.BadSeatLegs, run.OutOfBoundsLoadFactor,
		run.Error,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// Latest retrieves the most recent run, or nil when none exists.
func (r *RunRepository) Latest() (*models.PipelineRun, error) {
	query := `SELECT id, status, started_at, finished_at,
		bookings, flights, legs, segments,
		negative_pax_legs, bad_seat_legs, out_of_bounds_load_factor, error
		FROM pipeline_runs ORDER BY id DESC LIMIT 1`

	var run models.PipelineRun
	err := r.db.QueryRow(query).Scan(
		&run.ID, &run.Status, &run.StartedAt, &run.FinishedAt,
		&run.Bookings, &run.Flights, &run.Legs, &run.Segments,
		&run.NegativePaxLegs, &run.BadSeatLegs, &run.OutOfBoundsLoadFactor, &run.Error,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	return &run, nil
}
