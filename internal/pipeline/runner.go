package pipeline

import (
	"fmt"
	"log"

	"github.com/skylens/routemetrics/internal/diagnostics"
	"github.com/skylens/routemetrics/internal/kpi"
	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/repository"
)

// KPI output names. Consumers address persisted values by these
// strings, so they are part of the external contract and never change
// between runs.
const (
	KPIFWLFOverall   = "fwlf_overall"
	KPIFWLFBySegment = "fwlf_by_segment"
	KPICALFOverall   = "calf_overall"
	KPICALFBySegment = "calf_by_segment"
	KPIPACSLeg       = "pacs_leg"
	KPIYALFOverall   = "yalf_overall"
	KPIARASOverall   = "aras_overall"
	KPISRMOverall    = "srm_overall"
	KPIOTRIOverall   = "otri_overall"
)

// Runner executes one wholesale rebuild of the derived marts and KPI
// values from the raw tables. Runs are strictly sequential: each stage
// fully materializes before the next starts, and there is never more
// than one run in flight.
type Runner struct {
	raw    *repository.RawRepository
	marts  *repository.MartRepository
	kpis   *repository.KPIRepository
	runs   *repository.RunRepository
	engine *kpi.Engine
}

// NewRunner creates a pipeline runner.
func NewRunner(
	raw *repository.RawRepository,
	marts *repository.MartRepository,
	kpis *repository.KPIRepository,
	runs *repository.RunRepository,
	engine *kpi.Engine,
) *Runner {
	return &Runner{raw: raw, marts: marts, kpis: kpis, runs: runs, engine: engine}
}

// Run performs a full pipeline pass with the configured KPI parameter
// record.
func (r *Runner) Run() (*models.PipelineRun, error) {
	return r.RunWithParams(nil)
}

// RunWithParams performs a full pipeline pass and records its outcome,
// optionally overriding the KPI parameter record for this run only. A
// nil override keeps the configured record. Data quality violations
// are counted and reported on the run row but never abort it; only
// infrastructure failures do.
func (r *Runner) RunWithParams(params *kpi.Params) (*models.PipelineRun, error) {
	engine := r.engine
	if params != nil {
		var err error
		engine, err = kpi.NewEngine(params)
		if err != nil {
			return nil, err
		}
	}

	runID, err := r.runs.Create()
	if err != nil {
		return nil, err
	}
	run := &models.PipelineRun{ID: runID, Status: models.RunStatusRunning}

	if err := r.execute(run, engine); err != nil {
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
		if ferr := r.runs.Finish(run); ferr != nil {
			log.Printf("Failed to record failed run %d: %v", runID, ferr)
		}
		return run, err
	}

	run.Status = models.RunStatusCompleted
	if err := r.runs.Finish(run); err != nil {
		return run, err
	}
	log.Printf("Pipeline run %d completed: %d bookings, %d flights -> %d legs, %d segments",
		run.ID, run.Bookings, run.Flights, run.Legs, run.Segments)
	return run, nil
}

func (r *Runner) execute(run *models.PipelineRun, engine *kpi.Engine) error {
	bookings, err := r.raw.ListBookings()
	if err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}
	flights, err := r.raw.ListFlights()
	if err != nil {
		return fmt.Errorf("failed to load flights: %w", err)
	}
	run.Bookings = len(bookings)
	run.Flights = len(flights)

	legs := BuildLegFacts(bookings, flights)
	AttachRevPerPax(legs)
	AssignYieldIndexes(legs)
	segments := RollupSegments(legs)
	run.Legs = len(legs)
	run.Segments = len(segments)

	if err := r.marts.ReplaceLegFacts(legs); err != nil {
		return err
	}
	if err := r.marts.ReplaceSegments(segments); err != nil {
		return err
	}

	values := r.computeKPIValues(engine, run.ID, legs)
	if err := r.kpis.ReplaceValues(values); err != nil {
		return err
	}

	report := diagnostics.Check(legs, bookings, diagnostics.DefaultLoadFactorTolerance)
	run.NegativePaxLegs = report.NegativePaxLegs
	run.BadSeatLegs = report.BadSeatLegs
	run.OutOfBoundsLoadFactor = report.OutOfBoundsLoadFactor
	return nil
}

// computeKPIValues evaluates every named KPI over the freshly built
// leg facts and flattens the results into persistable rows.
func (r *Runner) computeKPIValues(engine *kpi.Engine, runID int64, legs []models.LegFact) []models.KPIValue {
	var values []models.KPIValue

	// Undefined or unavailable results persist a NULL value, so a
	// missing number can never be read back as 0.0.
	nullable := func(res kpi.Result) *float64 {
		if !res.Defined {
			return nil
		}
		v := res.Value
		return &v
	}
	scalar := func(name string, res kpi.Result) {
		values = append(values, models.KPIValue{
			RunID:     runID,
			Name:      name,
			Value:     nullable(res),
			Defined:   res.Defined,
			Available: res.Available,
		})
	}
	bySegment := func(name string, results []kpi.SegmentResult) {
		for _, sr := range results {
			values = append(values, models.KPIValue{
				RunID:     runID,
				Name:      name,
				DimKey:    sr.Origin + "-" + sr.Destination,
				Value:     nullable(sr.Result),
				Defined:   sr.Defined,
				Available: sr.Available,
			})
		}
	}

	scalar(KPIFWLFOverall, engine.FWLFOverall(legs))
	bySegment(KPIFWLFBySegment, engine.FWLFBySegment(legs))
	scalar(KPICALFOverall, engine.CALFOverall(legs))
	bySegment(KPICALFBySegment, engine.CALFBySegment(legs))
	scalar(KPIYALFOverall, engine.YALFOverall(legs))
	scalar(KPIARASOverall, engine.ARASOverall(legs))
	scalar(KPISRMOverall, engine.SRMOverall(legs))
	scalar(KPIOTRIOverall, engine.OTRI())

	for _, lr := range engine.PACSPerLeg(legs) {
		values = append(values, models.KPIValue{
			RunID:     runID,
			Name:      KPIPACSLeg,
			DimKey:    lr.FlightNumber + "|" + lr.FlightDate + "|" + lr.Origin + "|" + lr.Destination,
			Value:     nullable(lr.Result),
			Defined:   lr.Defined,
			Available: lr.Available,
		})
	}

	return values
}
