package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/skylens/routemetrics/internal/database"
	"github.com/skylens/routemetrics/internal/kpi"
	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T) (*Runner, *repository.RawRepository, *repository.MartRepository, *repository.KPIRepository, *repository.RunRepository) {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	params := kpi.DefaultParams()
	engine, err := kpi.NewEngine(&params)
	require.NoError(t, err)

	raw := repository.NewRawRepository(db)
	marts := repository.NewMartRepository(db)
	kpis := repository.NewKPIRepository(db)
	runs := repository.NewRunRepository(db)
	return NewRunner(raw, marts, kpis, runs, engine), raw, marts, kpis, runs
}

func TestRunnerEndToEnd(t *testing.T) {
	runner, raw, marts, kpis, runs := newTestRunner(t)

	require.NoError(t, raw.InsertBookings([]models.Booking{
		booking("DE1400", "2024-06-03", "FRA", "PMI", 100, 10000),
		booking("DE1400", "2024-06-03", "FRA", "PMI", 50, 5000),
		booking("DE1401", "2024-06-03", "PMI", "FRA", 140, 12000),
	}))
	require.NoError(t, raw.InsertFlights([]models.Flight{
		{FlightNumber: "DE1400", FlightDate: "2024-06-03", AvailableCapacity: 180, TimeOfDay: "morning"},
		{FlightNumber: "DE1401", FlightDate: "2024-06-03", AvailableCapacity: 180, TimeOfDay: "evening"},
	}))

	run, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, 3, run.Bookings)
	assert.Equal(t, 2, run.Flights)
	assert.Equal(t, 2, run.Legs)
	assert.Equal(t, 2, run.Segments)

	legs, err := marts.ListAllLegFacts()
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, 150, legs[0].Pax)
	require.NotNil(t, legs[0].LoadFactor)
	assert.InDelta(t, 150.0/180.0, *legs[0].LoadFactor, 1e-9)
	require.NotNil(t, legs[0].YieldIndex)

	segments, err := marts.ListSegments()
	require.NoError(t, err)
	assert.Len(t, segments, 2)

	fwlf, err := kpis.GetByName(KPIFWLFOverall)
	require.NoError(t, err)
	require.Len(t, fwlf, 1)
	require.NotNil(t, fwlf[0].Value)
	assert.InDelta(t, 290.0/360.0, *fwlf[0].Value, 1e-9)
	assert.True(t, fwlf[0].Defined)

	otri, err := kpis.GetByName(KPIOTRIOverall)
	require.NoError(t, err)
	require.Len(t, otri, 1)
	assert.False(t, otri[0].Available)
	assert.Nil(t, otri[0].Value)

	bySeg, err := kpis.GetByName(KPIFWLFBySegment)
	require.NoError(t, err)
	assert.Len(t, bySeg, 2)

	pacs, err := kpis.GetByName(KPIPACSLeg)
	require.NoError(t, err)
	assert.Len(t, pacs, 2)

	latest, err := runs.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, run.ID, latest.ID)
	assert.Equal(t, models.RunStatusCompleted, latest.Status)
}

func TestRunnerRebuildsWholesale(t *testing.T) {
	runner, raw, marts, _, _ := newTestRunner(t)

	require.NoError(t, raw.InsertBookings([]models.Booking{
		booking("DE1", "2024-01-01", "FRA", "PMI", 100, 10000),
	}))
	_, err := runner.Run()
	require.NoError(t, err)

	legs, err := marts.ListAllLegFacts()
	require.NoError(t, err)
	require.Len(t, legs, 1)

	// New raw data; rerun replaces rather than appends.
	require.NoError(t, raw.InsertBookings([]models.Booking{
		booking("DE2", "2024-01-02", "FRA", "LPA", 50, 5000),
	}))
	_, err = runner.Run()
	require.NoError(t, err)

	legs, err = marts.ListAllLegFacts()
	require.NoError(t, err)
	assert.Len(t, legs, 2, "one leg per distinct key, no duplicates from the first run")
}

func TestRunnerEmptyWarehouse(t *testing.T) {
	runner, _, _, kpis, _ := newTestRunner(t)

	run, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Zero(t, run.Legs)

	fwlf, err := kpis.GetByName(KPIFWLFOverall)
	require.NoError(t, err)
	require.Len(t, fwlf, 1)
	assert.False(t, fwlf[0].Defined, "no data yields undefined, not zero")
	assert.Nil(t, fwlf[0].Value)
}

func TestRunnerRecordsQualityCounts(t *testing.T) {
	runner, raw, _, _, _ := newTestRunner(t)

	// Booking without a matching flight: seats unknown.
	require.NoError(t, raw.InsertBookings([]models.Booking{
		booking("DE9", "2024-03-01", "MUC", "AYT", 80, 7000),
	}))

	run, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, run.BadSeatLegs)
}

func TestRunnerParamsOverride(t *testing.T) {
	runner, raw, _, kpis, _ := newTestRunner(t)

	require.NoError(t, raw.InsertBookings([]models.Booking{
		booking("DE1400", "2024-06-03", "FRA", "PMI", 150, 15000),
	}))
	require.NoError(t, raw.InsertFlights([]models.Flight{
		{FlightNumber: "DE1400", FlightDate: "2024-06-03", AvailableCapacity: 180},
	}))

	// Zero cost and zero connection credit: PACS collapses to plain
	// revenue per seat.
	_, err := runner.RunWithParams(&kpi.Params{})
	require.NoError(t, err)

	pacs, err := kpis.GetByName(KPIPACSLeg)
	require.NoError(t, err)
	require.Len(t, pacs, 1)
	require.NotNil(t, pacs[0].Value)
	assert.InDelta(t, 15000.0/180.0, *pacs[0].Value, 1e-9)

	// Rerun without an override restores the configured record.
	_, err = runner.Run()
	require.NoError(t, err)

	pacs, err = kpis.GetByName(KPIPACSLeg)
	require.NoError(t, err)
	require.Len(t, pacs, 1)
	require.NotNil(t, pacs[0].Value)
	assert.InDelta(t, (15000.0*1.15-180.0*25.0)/180.0, *pacs[0].Value, 1e-9)
}

func TestRunnerRejectsInvalidOverride(t *testing.T) {
	runner, _, _, _, runs := newTestRunner(t)

	_, err := runner.RunWithParams(&kpi.Params{VariableCostPerSeatLeg: -1})
	require.Error(t, err)

	latest, err := runs.Latest()
	require.NoError(t, err)
	assert.Nil(t, latest, "rejected override must not leave a run row")
}
