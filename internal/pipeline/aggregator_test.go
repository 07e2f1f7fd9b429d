package pipeline

import (
	"testing"

	"github.com/skylens/routemetrics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func booking(flight, date, org, dst string, pax int, ticket float64) models.Booking {
	return models.Booking{
		FlightNumber:   flight,
		FlightDate:     date,
		Origin:         org,
		Destination:    dst,
		PassengerCount: pax,
		TicketRevenue:  ticket,
	}
}

func TestBuildLegFactsAggregatesOneLeg(t *testing.T) {
	b1 := booking("LH100", "2024-01-01", "FRA", "FCO", 100, 10000)
	b2 := booking("LH100", "2024-01-01", "FRA", "FCO", 50, 5000)
	cancelled := booking("LH100", "2024-01-01", "FRA", "FCO", 0, 0)
	cancelled.CancellationDate = strPtr("2023-12-20")

	flights := []models.Flight{
		{FlightNumber: "LH100", FlightDate: "2024-01-01", AvailableCapacity: 180, TimeOfDay: "morning", RouteType: "leisure"},
	}

	legs := BuildLegFacts([]models.Booking{b1, b2, cancelled}, flights)
	require.Len(t, legs, 1)

	leg := legs[0]
	assert.Equal(t, 150, leg.Pax)
	assert.Equal(t, 15000.0, leg.TotalRevenue)
	assert.Equal(t, 1, leg.Cancels)
	require.NotNil(t, leg.Seats)
	assert.Equal(t, 180, *leg.Seats)
	require.NotNil(t, leg.LoadFactor)
	assert.InDelta(t, 150.0/180.0, *leg.LoadFactor, 1e-9)
	require.NotNil(t, leg.TimeOfDay)
	assert.Equal(t, "morning", *leg.TimeOfDay)
	assert.Equal(t, "Monday", leg.DayOfWeek)
}

func TestBuildLegFactsGroupsOnAllFourKeyFields(t *testing.T) {
	// Same flight and date, different directions: two distinct legs.
	bookings := []models.Booking{
		booking("DE1400", "2024-06-01", "FRA", "PMI", 120, 12000),
		booking("DE1400", "2024-06-01", "PMI", "FRA", 110, 9000),
	}

	legs := BuildLegFacts(bookings, nil)
	require.Len(t, legs, 2)
	assert.Equal(t, "FRA", legs[0].Origin)
	assert.Equal(t, "PMI", legs[1].Origin)
	assert.Equal(t, 120, legs[0].Pax)
	assert.Equal(t, 110, legs[1].Pax)
}

func TestBuildLegFactsJoinMissKeepsNilFields(t *testing.T) {
	legs := BuildLegFacts([]models.Booking{booking("DE77", "2024-03-10", "MUC", "AYT", 80, 7000)}, nil)
	require.Len(t, legs, 1)

	leg := legs[0]
	assert.Nil(t, leg.Seats)
	assert.Nil(t, leg.LoadFactor)
	assert.Nil(t, leg.TimeOfDay)
	assert.Nil(t, leg.RouteType)
	assert.Equal(t, 80, leg.Pax)
}

func TestBuildLegFactsZeroCapacityLeavesLoadFactorUndefined(t *testing.T) {
	flights := []models.Flight{
		{FlightNumber: "DE9", FlightDate: "2024-02-02", AvailableCapacity: 0},
	}
	legs := BuildLegFacts([]models.Booking{booking("DE9", "2024-02-02", "HAM", "HER", 40, 3000)}, flights)
	require.Len(t, legs, 1)

	leg := legs[0]
	require.NotNil(t, leg.Seats)
	assert.Equal(t, 0, *leg.Seats)
	assert.Nil(t, leg.LoadFactor, "zero capacity must not divide")
}

func TestBuildLegFactsPreservesFirstBookingOrder(t *testing.T) {
	bookings := []models.Booking{
		booking("DE2", "2024-01-02", "FRA", "LPA", 10, 1000),
		booking("DE1", "2024-01-01", "FRA", "PMI", 10, 1000),
		booking("DE2", "2024-01-02", "FRA", "LPA", 5, 500),
	}

	legs := BuildLegFacts(bookings, nil)
	require.Len(t, legs, 2)
	assert.Equal(t, "DE2", legs[0].FlightNumber)
	assert.Equal(t, 15, legs[0].Pax)
	assert.Equal(t, "DE1", legs[1].FlightNumber)
}
