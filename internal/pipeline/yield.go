package pipeline

import (
	"sort"

	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/stats"
)

// yieldBuckets is the number of equal-frequency groups used for the
// yield index, mapping bucket b to (b-1)/(yieldBuckets-1).
const yieldBuckets = 5

// AttachRevPerPax derives revenue-per-passenger for every leg. A leg
// with zero pax keeps a nil value: undefined must stay distinguishable
// from a genuine zero-revenue leg.
func AttachRevPerPax(legs []models.LegFact) {
	for i := range legs {
		if legs[i].Pax > 0 {
			v := legs[i].TotalRevenue / float64(legs[i].Pax)
			legs[i].RevPerPax = &v
		} else {
			legs[i].RevPerPax = nil
		}
	}
}

// AssignYieldIndexes buckets revenue-per-pax into five equal-frequency
// groups within each (origin, destination) partition and maps bucket b
// (1-indexed) to a yield index of (b-1)/4. Legs without a defined
// rev-per-pax are excluded from ranking and keep a nil index. Ranking
// is ascending with ties broken by input order, so recomputing over an
// unchanged leg set reproduces identical assignments. Partitions with
// fewer than five eligible legs fill buckets 1..n, leaving the higher
// buckets absent while the index stays monotone with rank.
func AssignYieldIndexes(legs []models.LegFact) {
	partitions := make(map[string][]int)
	for i := range legs {
		legs[i].YieldIndex = nil
		if legs[i].RevPerPax == nil {
			continue
		}
		seg := legs[i].Segment()
		partitions[seg] = append(partitions[seg], i)
	}

	for _, ranked := range partitions {
		sort.SliceStable(ranked, func(a, b int) bool {
			return *legs[ranked[a]].RevPerPax < *legs[ranked[b]].RevPerPax
		})

		buckets := stats.Ntile(len(ranked), yieldBuckets)
		for pos, legIdx := range ranked {
			yi := float64(buckets[pos]-1) / float64(yieldBuckets-1)
			legs[legIdx].YieldIndex = &yi
		}
	}
}
