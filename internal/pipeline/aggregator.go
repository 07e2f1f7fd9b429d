package pipeline

import (
	"time"

	"github.com/skylens/routemetrics/internal/models"
)

// BuildLegFacts groups bookings into exactly one leg fact per distinct
// (flight number, flight date, origin, destination) combination and
// joins flight metadata by (flight number, flight date). Legs come out
// in first-booking order, which keeps downstream tie-breaking stable.
//
// Grouping must use all four key fields: grouping by fewer would
// silently merge revenue from distinct legs. A booking whose flight
// record is missing keeps nil seats/time-of-day/route-type and an
// undefined load factor; the build never fails over a join miss, and a
// matched flight with zero capacity likewise leaves the load factor
// undefined rather than dividing by zero.
func BuildLegFacts(bookings []models.Booking, flights []models.Flight) []models.LegFact {
	flightByKey := make(map[string]models.Flight, len(flights))
	for _, f := range flights {
		flightByKey[f.Key()] = f
	}

	index := make(map[string]int)
	var legs []models.LegFact

	for i := range bookings {
		b := &bookings[i]
		key := b.FlightNumber + "|" + b.FlightDate + "|" + b.Origin + "|" + b.Destination

		pos, ok := index[key]
		if !ok {
			pos = len(legs)
			index[key] = pos
			legs = append(legs, models.LegFact{
				FlightNumber: b.FlightNumber,
				FlightDate:   b.FlightDate,
				Origin:       b.Origin,
				Destination:  b.Destination,
				DayOfWeek:    dayOfWeek(b.FlightDate, b.DayOfWeek),
			})
		}

		leg := &legs[pos]
		leg.Pax += b.PassengerCount
		leg.TotalRevenue += b.TotalRevenue()
		leg.AncillaryRevenue += b.AncillaryRevenue()
		if b.IsCancelled() {
			leg.Cancels++
		}
	}

	// Join flight metadata and derive the load factor
	for i := range legs {
		leg := &legs[i]

		f, ok := flightByKey[leg.FlightKey()]
		if !ok {
			continue
		}

		seats := f.AvailableCapacity
		leg.Seats = &seats
		if f.TimeOfDay != "" {
			tod := f.TimeOfDay
			leg.TimeOfDay = &tod
		}
		if f.RouteType != "" {
			rt := f.RouteType
			leg.RouteType = &rt
		}

		if seats > 0 {
			lf := float64(leg.Pax) / float64(seats)
			leg.LoadFactor = &lf
		}
	}

	return legs
}

// dayOfWeek derives the weekday name from the flight date, falling
// back to the day-of-week the booking row carried.
func dayOfWeek(flightDate, fallback string) string {
	t, err := time.Parse("2006-01-02", flightDate)
	if err != nil {
		return fallback
	}
	return t.Weekday().String()
}
