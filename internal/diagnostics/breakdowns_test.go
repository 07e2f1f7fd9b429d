package diagnostics

import (
	"testing"

	"github.com/skylens/routemetrics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvgLoadFactorByTimeOfDay(t *testing.T) {
	legs := []models.LegFact{
		{TimeOfDay: strPtr("morning"), LoadFactor: floatPtr(0.8)},
		{TimeOfDay: strPtr("morning"), LoadFactor: floatPtr(0.6)},
		{LoadFactor: floatPtr(0.5)}, // no joined flight
	}

	rows := AvgLoadFactorByTimeOfDay(legs)
	require.Len(t, rows, 2)

	// Keys come out sorted: morning, unknown.
	assert.Equal(t, "morning", rows[0].Key)
	require.NotNil(t, rows[0].Value)
	assert.InDelta(t, 0.7, *rows[0].Value, 1e-9)
	assert.Equal(t, 2, rows[0].N)

	assert.Equal(t, "unknown", rows[1].Key)
	require.NotNil(t, rows[1].Value)
	assert.InDelta(t, 0.5, *rows[1].Value, 1e-9)
}

func TestAvgLoadFactorByDayOfWeekOrder(t *testing.T) {
	legs := []models.LegFact{
		{DayOfWeek: "Sunday", LoadFactor: floatPtr(0.9)},
		{DayOfWeek: "Monday", LoadFactor: floatPtr(0.5)},
		{DayOfWeek: "Monday"}, // counted, but no defined load factor
	}

	rows := AvgLoadFactorByDayOfWeek(legs)
	require.Len(t, rows, 2)
	assert.Equal(t, "Monday", rows[0].Key)
	assert.Equal(t, 2, rows[0].N)
	require.NotNil(t, rows[0].Value)
	assert.InDelta(t, 0.5, *rows[0].Value, 1e-9)
	assert.Equal(t, "Sunday", rows[1].Key)
}

func TestCancelRateBySegment(t *testing.T) {
	legs := []models.LegFact{
		{Origin: "FRA", Destination: "PMI", Pax: 90, Cancels: 10},
		{Origin: "FRA", Destination: "PMI", Pax: 100, Cancels: 0},
		{Origin: "MUC", Destination: "AYT", Pax: 0, Cancels: 0},
	}

	rows := CancelRateBySegment(legs)
	require.Len(t, rows, 2)

	assert.Equal(t, "FRA-PMI", rows[0].Key)
	require.NotNil(t, rows[0].Value)
	assert.InDelta(t, 10.0/200.0, *rows[0].Value, 1e-9)

	// Neither pax nor cancels: rate undefined, not zero.
	assert.Equal(t, "MUC-AYT", rows[1].Key)
	assert.Nil(t, rows[1].Value)
}

func TestCancelRateByChannel(t *testing.T) {
	bookings := []models.Booking{
		{BookingChannel: "website"},
		{BookingChannel: "website", CancellationDate: strPtr("2024-01-01")},
		{BookingChannel: ""},
	}

	rows := CancelRateByChannel(bookings)
	require.Len(t, rows, 2)

	assert.Equal(t, "unknown", rows[0].Key)
	require.NotNil(t, rows[0].Value)
	assert.InDelta(t, 0.0, *rows[0].Value, 1e-9)

	assert.Equal(t, "website", rows[1].Key)
	require.NotNil(t, rows[1].Value)
	assert.InDelta(t, 0.5, *rows[1].Value, 1e-9)
}

func TestAncillaryShareBySegment(t *testing.T) {
	legs := []models.LegFact{
		{Origin: "FRA", Destination: "PMI", TotalRevenue: 10000, AncillaryRevenue: 1500},
		{Origin: "MUC", Destination: "AYT"}, // no revenue
	}

	rows := AncillaryShareBySegment(legs)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Value)
	assert.InDelta(t, 0.15, *rows[0].Value, 1e-9)
	assert.Nil(t, rows[1].Value)
}

func TestDirectionalImbalance(t *testing.T) {
	legs := []models.LegFact{
		{Origin: "FRA", Destination: "PMI", LoadFactor: floatPtr(0.9)},
		{Origin: "PMI", Destination: "FRA", LoadFactor: floatPtr(0.7)},
		{Origin: "MUC", Destination: "AYT", LoadFactor: floatPtr(0.8)}, // no reverse leg
	}

	rows := DirectionalImbalance(legs)
	require.Len(t, rows, 3)

	byKey := map[string]BreakdownRow{}
	for _, r := range rows {
		byKey[r.Key] = r
	}

	require.NotNil(t, byKey["FRA-PMI"].Value)
	assert.InDelta(t, 0.2, *byKey["FRA-PMI"].Value, 1e-9)
	require.NotNil(t, byKey["PMI-FRA"].Value)
	assert.InDelta(t, -0.2, *byKey["PMI-FRA"].Value, 1e-9)
	assert.Nil(t, byKey["MUC-AYT"].Value)
}

func TestRevenueLoadCorrelationNeedsThreePairs(t *testing.T) {
	legs := []models.LegFact{
		{LoadFactor: floatPtr(0.5), RevPerPax: floatPtr(100)},
		{LoadFactor: floatPtr(0.6), RevPerPax: floatPtr(120)},
	}
	assert.Nil(t, RevenueLoadCorrelation(legs))

	legs = append(legs, models.LegFact{LoadFactor: floatPtr(0.7), RevPerPax: floatPtr(140)})
	corr := RevenueLoadCorrelation(legs)
	require.NotNil(t, corr)
	assert.InDelta(t, 1.0, *corr, 1e-9)
}

func TestCancelTimingSummary(t *testing.T) {
	bookings := []models.Booking{
		{CancellationDate: strPtr("2024-05-01"), DaysToCancelAfterBooking: intPtr(10), DaysToCancelBeforeFlight: intPtr(30)},
		{CancellationDate: strPtr("2024-05-20"), DaysToCancelAfterBooking: intPtr(20), DaysToCancelBeforeFlight: intPtr(1)},
		{}, // not cancelled
	}

	timing := CancelTimingSummary(bookings)
	assert.Equal(t, 2, timing.Cancellations)
	require.NotNil(t, timing.MedianDaysAfterBooking)
	assert.InDelta(t, 15.0, *timing.MedianDaysAfterBooking, 1e-9)
	require.NotNil(t, timing.LastMinuteCancelShare)
	assert.InDelta(t, 0.5, *timing.LastMinuteCancelShare, 1e-9)
}

func TestCancelTimingSummaryNoCancellations(t *testing.T) {
	timing := CancelTimingSummary([]models.Booking{{}})
	assert.Zero(t, timing.Cancellations)
	assert.Nil(t, timing.MedianDaysAfterBooking)
	assert.Nil(t, timing.LastMinuteCancelShare)
}

func TestRankLegsDescendingWithUndefinedLast(t *testing.T) {
	legs := []models.LegFact{
		{FlightNumber: "A", LoadFactor: floatPtr(0.5)},
		{FlightNumber: "B"}, // undefined
		{FlightNumber: "C", LoadFactor: floatPtr(0.9)},
		{FlightNumber: "D", LoadFactor: floatPtr(0.7)},
	}

	top := RankLegs(legs, MetricLoadFactor, 3, true)
	require.Len(t, top, 3)
	assert.Equal(t, "C", top[0].FlightNumber)
	assert.Equal(t, "D", top[1].FlightNumber)
	assert.Equal(t, "A", top[2].FlightNumber)
}

func TestRankLegsAscendingKeepsUndefinedLast(t *testing.T) {
	legs := []models.LegFact{
		{FlightNumber: "A", LoadFactor: floatPtr(0.5)},
		{FlightNumber: "B"}, // undefined
		{FlightNumber: "C", LoadFactor: floatPtr(0.9)},
	}

	bottom := RankLegs(legs, MetricLoadFactor, 3, false)
	require.Len(t, bottom, 3)
	assert.Equal(t, "A", bottom[0].FlightNumber)
	assert.Equal(t, "C", bottom[1].FlightNumber)
	assert.Equal(t, "B", bottom[2].FlightNumber, "undefined fills the tail only")
}

func TestRankLegsDefaultN(t *testing.T) {
	legs := make([]models.LegFact, 15)
	for i := range legs {
		legs[i].LoadFactor = floatPtr(float64(i) / 15)
	}
	assert.Len(t, RankLegs(legs, MetricLoadFactor, 0, true), DefaultRankingSize)
}

func TestRankLegsDoesNotMutateInput(t *testing.T) {
	legs := []models.LegFact{
		{FlightNumber: "A", LoadFactor: floatPtr(0.5)},
		{FlightNumber: "B", LoadFactor: floatPtr(0.9)},
	}
	RankLegs(legs, MetricLoadFactor, 1, true)
	assert.Equal(t, "A", legs[0].FlightNumber)
}
