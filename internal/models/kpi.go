package models

// KPIValue is one persisted KPI output row, addressable by stable name.
// Scalars use an empty dim_key; breakdown tables carry one row per
// dimension value. Undefined results keep a NULL value with defined=0,
// so a zero denominator can never be read back as 0.0.
type KPIValue struct {
	ID        int64    `json:"id" db:"id"`
	RunID     int64    `json:"run_id" db:"run_id"`
	Name      string   `json:"name" db:"name"`
	DimKey    string   `json:"dim_key,omitempty" db:"dim_key"`
	Value     *float64 `json:"value,omitempty" db:"value"`
	Defined   bool     `json:"defined" db:"defined"`
	Available bool     `json:"available" db:"available"`
}
