package repository

import (
	"database/sql"
	"fmt"

	"github.com/skylens/routemetrics/internal/database"
	"github.com/skylens/routemetrics/internal/models"
)

// KPIRepository handles database operations for persisted KPI values.
// Like the marts, kpi_values is wholesale-replaced by each run.
type KPIRepository struct {
	db *sql.DB
}

// NewKPIRepository creates a new KPI repository
func NewKPIRepository(db *sql.DB) *KPIRepository {
	return &KPIRepository{db: db}
}

// ReplaceValues swaps the full kpi_values table for the given rows.
func (r *KPIRepository) ReplaceValues(values []models.KPIValue) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM kpi_values"); err != nil {
			return fmt.Errorf("failed to clear kpi values: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO kpi_values (
			run_id, name, dim_key, value, defined, available
		) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare kpi insert: %w", err)
		}
		defer stmt.Close()

		for i := range values {
			v := &values[i]
			_, err := stmt.Exec(v.RunID, v.Name, v.DimKey, v.Value, v.Defined, v.Available)
			if err != nil {
				return fmt.Errorf("failed to insert kpi %s: %w", v.Name, err)
			}
		}
		return nil
	})
}

// GetByName retrieves all rows of one named KPI. A scalar KPI yields a
// single row with an empty dim_key; a breakdown yields one row per
// dimension value. An empty result means the KPI name is unknown or no
// run has happened yet.
func (r *KPIRepository) GetByName(name string) ([]models.KPIValue, error) {
	query := `SELECT id, run_id, name, dim_key, value, defined, available
		FROM kpi_values WHERE name = ? ORDER BY dim_key`

	rows, err := r.db.Query(query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpi values: %w", err)
	}
	defer rows.Close()

	var values []models.KPIValue
	for rows.Next() {
		var v models.KPIValue
		err := rows.Scan(&v.ID, &v.RunID, &v.Name, &v.DimKey, &v.Value, &v.Defined, &v.Available)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kpi value: %w", err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// ListNames retrieves the distinct KPI names currently persisted.
func (r *KPIRepository) ListNames() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT name FROM kpi_values ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query kpi names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan kpi name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
