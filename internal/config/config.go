package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/skylens/routemetrics/internal/kpi"
)

// Config holds application configuration.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	KPIParams kpi.Params
}

// Load reads configuration from the environment, applying defaults
// for everything except malformed values, which are a startup error.
func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/routemetrics.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	params := kpi.DefaultParams()
	if v := os.Getenv("VARIABLE_COST_PER_SEAT_LEG"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid VARIABLE_COST_PER_SEAT_LEG %q: %w", v, err)
		}
		params.VariableCostPerSeatLeg = f
	}
	if v := os.Getenv("CONNECTION_VALUE_PCT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CONNECTION_VALUE_PCT %q: %w", v, err)
		}
		params.ConnectionValuePct = f
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kpi parameters: %w", err)
	}

	return &Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,
		KPIParams: params,
	}, nil
}
