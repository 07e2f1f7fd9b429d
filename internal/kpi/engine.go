package kpi

import (
	"errors"

	"github.com/skylens/routemetrics/internal/models"
)

// ErrMissingParams is returned when the engine is constructed without
// a configuration record.
var ErrMissingParams = errors.New("kpi: configuration record missing")

// Result is one KPI scalar. A zero denominator yields Defined=false
// with no value — distinguishable from a genuine 0.0. Available=false
// marks a metric whose input feed does not exist yet (OTRI); callers
// must treat it as "not yet computed", never as zero.
type Result struct {
	Value     float64 `json:"value"`
	Defined   bool    `json:"defined"`
	Available bool    `json:"available"`
}

// DefinedResult wraps a computed value.
func DefinedResult(v float64) Result {
	return Result{Value: v, Defined: true, Available: true}
}

// UndefinedResult marks a zero-denominator outcome.
func UndefinedResult() Result {
	return Result{Available: true}
}

// UnavailableResult marks a metric pending an input feed.
func UnavailableResult() Result {
	return Result{}
}

// ratio divides num by den, undefined when the denominator is zero.
func ratio(num, den float64) Result {
	if den == 0 {
		return UndefinedResult()
	}
	return DefinedResult(num / den)
}

// SegmentResult is a KPI value for one origin-destination pair.
type SegmentResult struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Result
}

// LegResult is a KPI value for one leg.
type LegResult struct {
	FlightNumber string `json:"flight_number"`
	FlightDate   string `json:"flight_date"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Result
}

// Engine derives the named KPIs from leg facts. Every method is a
// read-only pure function of the facts plus the parameter record; no
// call mutates a fact.
type Engine struct {
	params Params
}

// NewEngine builds a KPI engine from an explicit parameter record. A
// nil record is a configuration error: the defaults materially change
// profitability figures, so they are never substituted silently.
func NewEngine(params *Params) (*Engine, error) {
	if params == nil {
		return nil, ErrMissingParams
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{params: *params}, nil
}

// Params returns the engine's configuration record.
func (e *Engine) Params() Params {
	return e.params
}

// FWLFOverall computes the fleet-wide load factor: total pax over total
// seats as one aggregate division, not an average of per-leg ratios.
// Legs with unknown capacity contribute pax but no seats.
func (e *Engine) FWLFOverall(legs []models.LegFact) Result {
	var pax, seats int
	for i := range legs {
		pax += legs[i].Pax
		if legs[i].Seats != nil {
			seats += *legs[i].Seats
		}
	}
	return ratio(float64(pax), float64(seats))
}

// FWLFBySegment computes the fleet-wide load factor per
// origin-destination pair. A segment with zero total seats yields an
// explicitly undefined result rather than propagating NaN.
func (e *Engine) FWLFBySegment(legs []models.LegFact) []SegmentResult {
	return e.loadFactorBySegment(legs)
}

// PACSPerLeg computes profit after connection value and seat cost per
// seat-leg: (rev + rev*pct - seats*cost) / seats. Undefined when seats
// are unknown or zero.
func (e *Engine) PACSPerLeg(legs []models.LegFact) []LegResult {
	results := make([]LegResult, 0, len(legs))
	for i := range legs {
		leg := &legs[i]
		r := LegResult{
			FlightNumber: leg.FlightNumber,
			FlightDate:   leg.FlightDate,
			Origin:       leg.Origin,
			Destination:  leg.Destination,
		}
		if leg.Seats == nil || *leg.Seats == 0 {
			r.Result = UndefinedResult()
		} else {
			seats := float64(*leg.Seats)
			uplifted := leg.TotalRevenue + leg.TotalRevenue*e.params.ConnectionValuePct
			r.Result = DefinedResult((uplifted - seats*e.params.VariableCostPerSeatLeg) / seats)
		}
		results = append(results, r)
	}
	return results
}

// YALFOverall computes the yield-adjusted load factor:
// sum(pax * yield_index) / sum(seats) across legs with a defined yield
// index. Exclusion policy: a leg without a yield index (zero pax, so
// no rev-per-pax rank) contributes neither to the numerator nor its
// seats to the denominator — counting unranked seats would blur YALF
// into FWLF. Legs with a yield index but unknown capacity add zero
// seats.
func (e *Engine) YALFOverall(legs []models.LegFact) Result {
	var num, den float64
	for i := range legs {
		leg := &legs[i]
		if leg.YieldIndex == nil {
			continue
		}
		num += float64(leg.Pax) * *leg.YieldIndex
		if leg.Seats != nil {
			den += float64(*leg.Seats)
		}
	}
	return ratio(num, den)
}

// ARASOverall computes ancillary revenue per available seat:
// sum(ancillary) / sum(seats), aggregated at leg grain then summed.
func (e *Engine) ARASOverall(legs []models.LegFact) Result {
	var anc float64
	var seats int
	for i := range legs {
		anc += legs[i].AncillaryRevenue
		if legs[i].Seats != nil {
			seats += *legs[i].Seats
		}
	}
	return ratio(anc, float64(seats))
}

// SRMOverall computes the seat-reuse proxy: passenger-legs per distinct
// operated flight. Without passenger-identity stitching this
// approximates multi-leg itinerary reuse and must not be read as a
// precise seat-reuse measure.
func (e *Engine) SRMOverall(legs []models.LegFact) Result {
	flights := make(map[string]struct{})
	var pax int
	for i := range legs {
		pax += legs[i].Pax
		flights[legs[i].FlightKey()] = struct{}{}
	}
	return ratio(float64(pax), float64(len(flights)))
}

// CALFOverall computes the capacity-adjusted load factor. The formula
// currently matches FWLF; it stays a distinct computation so a future
// no-show adjustment lands here without renaming any consumer.
func (e *Engine) CALFOverall(legs []models.LegFact) Result {
	return e.FWLFOverall(legs)
}

// CALFBySegment computes the capacity-adjusted load factor per
// origin-destination pair; see CALFOverall.
func (e *Engine) CALFBySegment(legs []models.LegFact) []SegmentResult {
	return e.loadFactorBySegment(legs)
}

// OTRI returns the on-time-reliability index. The on-time-performance
// feed does not exist yet, so the result is explicitly unavailable —
// never a numeric zero that could leak into reliability rollups.
func (e *Engine) OTRI() Result {
	return UnavailableResult()
}

// loadFactorBySegment aggregates pax/seats per origin-destination pair
// in first-leg order.
func (e *Engine) loadFactorBySegment(legs []models.LegFact) []SegmentResult {
	type sums struct {
		pax   int
		seats int
	}

	index := make(map[string]int)
	var keys []sums
	var results []SegmentResult

	for i := range legs {
		leg := &legs[i]
		key := leg.Segment()
		pos, ok := index[key]
		if !ok {
			pos = len(results)
			index[key] = pos
			results = append(results, SegmentResult{Origin: leg.Origin, Destination: leg.Destination})
			keys = append(keys, sums{})
		}
		keys[pos].pax += leg.Pax
		if leg.Seats != nil {
			keys[pos].seats += *leg.Seats
		}
	}

	for i := range results {
		results[i].Result = ratio(float64(keys[i].pax), float64(keys[i].seats))
	}
	return results
}
