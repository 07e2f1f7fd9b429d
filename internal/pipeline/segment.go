package pipeline

import (
	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/route"
)

// RollupSegments sums leg facts by (origin, destination). Pure sums
// only — weighted averages belong to the KPI engine. Legs with unknown
// capacity contribute zero seats to the rollup. Segments come out in
// first-leg order.
func RollupSegments(legs []models.LegFact) []models.SegmentRollup {
	index := make(map[string]int)
	var rollups []models.SegmentRollup

	for i := range legs {
		leg := &legs[i]
		key := leg.Segment()

		pos, ok := index[key]
		if !ok {
			pos = len(rollups)
			index[key] = pos
			rollups = append(rollups, models.SegmentRollup{
				Origin:      leg.Origin,
				Destination: leg.Destination,
			})
		}

		s := &rollups[pos]
		s.Legs++
		s.Pax += leg.Pax
		s.Cancels += leg.Cancels
		s.TotalRevenue += leg.TotalRevenue
		s.AncillaryRevenue += leg.AncillaryRevenue
		if leg.Seats != nil {
			s.Seats += *leg.Seats
		}
	}

	// Great-circle enrichment; segments touching an airport outside
	// the reference table stay unenriched.
	for i := range rollups {
		s := &rollups[i]
		km, ok := route.SegmentDistanceKm(s.Origin, s.Destination)
		if !ok {
			continue
		}
		dist := km
		ask := float64(s.Seats) * km
		s.DistanceKm = &dist
		s.ASK = &ask
	}

	return rollups
}
