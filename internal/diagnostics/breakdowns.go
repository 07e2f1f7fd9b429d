package diagnostics

import (
	"sort"

	"github.com/skylens/routemetrics/internal/models"
	"github.com/skylens/routemetrics/internal/stats"
)

// weekdayOrder fixes the reporting order for day-of-week breakdowns.
var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// BreakdownRow is one keyed value of an exploratory breakdown. A nil
// value means undefined for that key (zero denominator or no data),
// never zero. N is the sample size behind the value.
type BreakdownRow struct {
	Key   string   `json:"key"`
	Value *float64 `json:"value,omitempty"`
	N     int      `json:"n"`
}

// AvgLoadFactorByTimeOfDay averages per-leg load factors by the flight
// record's time-of-day bucket. Legs without a joined flight record
// group under "unknown".
func AvgLoadFactorByTimeOfDay(legs []models.LegFact) []BreakdownRow {
	groups := make(map[string][]float64)
	counts := make(map[string]int)
	for i := range legs {
		key := "unknown"
		if legs[i].TimeOfDay != nil {
			key = *legs[i].TimeOfDay
		}
		counts[key]++
		if legs[i].LoadFactor != nil {
			groups[key] = append(groups[key], *legs[i].LoadFactor)
		}
	}
	return meanRows(groups, counts, sortedKeys(counts))
}

// AvgLoadFactorByDayOfWeek averages per-leg load factors by weekday,
// reported in Monday-first order. Days with legs but no defined load
// factor stay undefined.
func AvgLoadFactorByDayOfWeek(legs []models.LegFact) []BreakdownRow {
	groups := make(map[string][]float64)
	counts := make(map[string]int)
	for i := range legs {
		key := legs[i].DayOfWeek
		if key == "" {
			continue
		}
		counts[key]++
		if legs[i].LoadFactor != nil {
			groups[key] = append(groups[key], *legs[i].LoadFactor)
		}
	}
	return meanRows(groups, counts, weekdayOrder)
}

// CancelRateBySegment computes cancels/(pax+cancels) per
// origin-destination pair; undefined when a segment has neither pax
// nor cancels.
func CancelRateBySegment(legs []models.LegFact) []BreakdownRow {
	type sums struct {
		pax, cancels, legs int
	}
	groups := make(map[string]*sums)
	for i := range legs {
		key := legs[i].Segment()
		s, ok := groups[key]
		if !ok {
			s = &sums{}
			groups[key] = s
		}
		s.pax += legs[i].Pax
		s.cancels += legs[i].Cancels
		s.legs++
	}

	rows := make([]BreakdownRow, 0, len(groups))
	for _, key := range sortedKeysOf(groups) {
		s := groups[key]
		row := BreakdownRow{Key: key, N: s.legs}
		if denom := s.pax + s.cancels; denom > 0 {
			rate := float64(s.cancels) / float64(denom)
			row.Value = &rate
		}
		rows = append(rows, row)
	}
	return rows
}

// CancelRateByChannel computes booking-grain cancellation rates per
// booking channel.
func CancelRateByChannel(bookings []models.Booking) []BreakdownRow {
	type sums struct {
		bookings, cancels int
	}
	groups := make(map[string]*sums)
	for i := range bookings {
		key := bookings[i].BookingChannel
		if key == "" {
			key = "unknown"
		}
		s, ok := groups[key]
		if !ok {
			s = &sums{}
			groups[key] = s
		}
		s.bookings++
		if bookings[i].IsCancelled() {
			s.cancels++
		}
	}

	rows := make([]BreakdownRow, 0, len(groups))
	for _, key := range sortedKeysOf(groups) {
		s := groups[key]
		row := BreakdownRow{Key: key, N: s.bookings}
		if s.bookings > 0 {
			rate := float64(s.cancels) / float64(s.bookings)
			row.Value = &rate
		}
		rows = append(rows, row)
	}
	return rows
}

// AncillaryShareBySegment computes ancillary revenue as a share of
// total revenue per origin-destination pair; undefined when a segment
// has no positive revenue.
func AncillaryShareBySegment(legs []models.LegFact) []BreakdownRow {
	type sums struct {
		total, ancillary float64
		legs             int
	}
	groups := make(map[string]*sums)
	for i := range legs {
		key := legs[i].Segment()
		s, ok := groups[key]
		if !ok {
			s = &sums{}
			groups[key] = s
		}
		s.total += legs[i].TotalRevenue
		s.ancillary += legs[i].AncillaryRevenue
		s.legs++
	}

	rows := make([]BreakdownRow, 0, len(groups))
	for _, key := range sortedKeysOf(groups) {
		s := groups[key]
		row := BreakdownRow{Key: key, N: s.legs}
		if s.total > 0 {
			share := s.ancillary / s.total
			row.Value = &share
		}
		rows = append(rows, row)
	}
	return rows
}

// DirectionalImbalance reports, per origin-destination pair, the mean
// leg load factor minus the mean load factor of the reverse direction.
// Undefined when either direction lacks a defined mean.
func DirectionalImbalance(legs []models.LegFact) []BreakdownRow {
	groups := make(map[string][]float64)
	counts := make(map[string]int)
	for i := range legs {
		key := legs[i].Segment()
		counts[key]++
		if legs[i].LoadFactor != nil {
			groups[key] = append(groups[key], *legs[i].LoadFactor)
		}
	}

	reverse := func(key string) string {
		for i := 0; i < len(key); i++ {
			if key[i] == '-' {
				return key[i+1:] + "-" + key[:i]
			}
		}
		return key
	}

	rows := make([]BreakdownRow, 0, len(groups))
	for _, key := range sortedKeys(counts) {
		row := BreakdownRow{Key: key, N: counts[key]}
		fwd, rev := groups[key], groups[reverse(key)]
		if len(fwd) > 0 && len(rev) > 0 {
			diff := stats.Mean(fwd) - stats.Mean(rev)
			row.Value = &diff
		}
		rows = append(rows, row)
	}
	return rows
}

// RevenueLoadCorrelation computes the Pearson correlation between
// revenue-per-pax and load factor at leg grain. Nil when fewer than
// three legs define both values.
func RevenueLoadCorrelation(legs []models.LegFact) *float64 {
	var lf, rpp []float64
	for i := range legs {
		if legs[i].LoadFactor != nil && legs[i].RevPerPax != nil {
			lf = append(lf, *legs[i].LoadFactor)
			rpp = append(rpp, *legs[i].RevPerPax)
		}
	}
	if len(lf) <= 2 {
		return nil
	}
	corr := stats.PearsonCorrelation(lf, rpp)
	return &corr
}

// CancelTiming summarizes cancellation lead times across cancelled
// bookings. Nil fields mean no cancelled booking carried that lead
// time.
type CancelTiming struct {
	Cancellations          int      `json:"cancellations"`
	MedianDaysAfterBooking *float64 `json:"median_days_after_booking,omitempty"`
	P90DaysAfterBooking    *float64 `json:"p90_days_after_booking,omitempty"`
	MedianDaysBeforeFlight *float64 `json:"median_days_before_flight,omitempty"`
	P90DaysBeforeFlight    *float64 `json:"p90_days_before_flight,omitempty"`
	LastMinuteCancelShare  *float64 `json:"last_minute_cancel_share,omitempty"` // <= 1 day before flight
}

// CancelTimingSummary computes median and P90 cancellation lead times.
func CancelTimingSummary(bookings []models.Booking) CancelTiming {
	var after, before []float64
	var lastMinute int
	summary := CancelTiming{}

	for i := range bookings {
		b := &bookings[i]
		if !b.IsCancelled() {
			continue
		}
		summary.Cancellations++
		if b.DaysToCancelAfterBooking != nil {
			after = append(after, float64(*b.DaysToCancelAfterBooking))
		}
		if b.DaysToCancelBeforeFlight != nil {
			before = append(before, float64(*b.DaysToCancelBeforeFlight))
			if *b.DaysToCancelBeforeFlight <= 1 {
				lastMinute++
			}
		}
	}

	if len(after) > 0 {
		med := stats.Median(after)
		p90 := stats.Quantile(after, 0.9)
		summary.MedianDaysAfterBooking = &med
		summary.P90DaysAfterBooking = &p90
	}
	if len(before) > 0 {
		med := stats.Median(before)
		p90 := stats.Quantile(before, 0.9)
		summary.MedianDaysBeforeFlight = &med
		summary.P90DaysBeforeFlight = &p90
		share := float64(lastMinute) / float64(len(before))
		summary.LastMinuteCancelShare = &share
	}
	return summary
}

// Ranking metrics for RankLegs.
const (
	MetricLoadFactor = "load_factor"
	MetricRevPerPax  = "rev_per_pax"
)

// RankLegs returns the top (descending) or bottom (ascending) n legs
// by the given metric. Legs with an undefined metric sort last in
// either direction and only fill the tail when fewer than n legs
// define the metric. n <= 0 selects the default of 10.
func RankLegs(legs []models.LegFact, metric string, n int, descending bool) []models.LegFact {
	if n <= 0 {
		n = DefaultRankingSize
	}

	value := func(l *models.LegFact) *float64 {
		if metric == MetricRevPerPax {
			return l.RevPerPax
		}
		return l.LoadFactor
	}

	ranked := make([]models.LegFact, len(legs))
	copy(ranked, legs)

	sort.SliceStable(ranked, func(a, b int) bool {
		va, vb := value(&ranked[a]), value(&ranked[b])
		if va == nil {
			return false
		}
		if vb == nil {
			return true
		}
		if descending {
			return *va > *vb
		}
		return *va < *vb
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// meanRows builds breakdown rows from grouped values in the given key
// order, skipping keys never seen.
func meanRows(groups map[string][]float64, counts map[string]int, order []string) []BreakdownRow {
	rows := make([]BreakdownRow, 0, len(counts))
	for _, key := range order {
		n, seen := counts[key]
		if !seen {
			continue
		}
		row := BreakdownRow{Key: key, N: n}
		if values := groups[key]; len(values) > 0 {
			mean := stats.Mean(values)
			row.Value = &mean
		}
		rows = append(rows, row)
	}
	return rows
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysOf[V any](m map[string]*V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
