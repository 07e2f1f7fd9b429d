package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookings(t *testing.T) {
	csv := `BookingID (PNR),FlightNumber,Flight_Date,Origin,Destination,PassengerCount,Revenue per Booking (Ticket),Revenue per Booking (Ancilliary Pre Check In),Revenue per Booking (Ancilliary At Check In),Reservation_Date,Cancellation_Date,Booking_Channel
AB-12345,de1400,2024-06-03,fra,pmi,2,300.50,40,10,2024-05-01,,Website
CD-67890,DE1400,2024-06-03,FRA,PMI,1,150,0,0,2024-05-10,2024-05-20,app
`
	bookings, err := ParseBookings(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	b := bookings[0]
	assert.Equal(t, "12345", b.BookingID, "PNR keeps digits only")
	assert.Equal(t, "DE1400", b.FlightNumber)
	assert.Equal(t, "FRA", b.Origin)
	assert.Equal(t, "PMI", b.Destination)
	assert.Equal(t, 2, b.PassengerCount)
	assert.Equal(t, 300.50, b.TicketRevenue)
	assert.Equal(t, 40.0, b.AncillaryPreRevenue)
	assert.Equal(t, 10.0, b.AncillaryAtRevenue)
	assert.Equal(t, "website", b.BookingChannel)
	assert.Equal(t, "Monday", b.DayOfWeek)
	require.NotNil(t, b.ReservationDate)
	assert.Equal(t, "2024-05-01", *b.ReservationDate)
	assert.Nil(t, b.CancellationDate)
	assert.Nil(t, b.DaysToCancelAfterBooking)

	c := bookings[1]
	assert.Equal(t, "condor app", c.BookingChannel)
	require.NotNil(t, c.CancellationDate)
	require.NotNil(t, c.DaysToCancelAfterBooking)
	assert.Equal(t, 10, *c.DaysToCancelAfterBooking)
	require.NotNil(t, c.DaysToCancelBeforeFlight)
	assert.Equal(t, 14, *c.DaysToCancelBeforeFlight)
}

func TestParseBookingsRejectsBadFlightDate(t *testing.T) {
	csv := "BookingID,FlightNumber,Flight_Date,Origin,Destination,PassengerCount\nX1,DE1,junk,FRA,PMI,1\n"
	_, err := ParseBookings(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParseBookingsEmptyFile(t *testing.T) {
	bookings, err := ParseBookings(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestParseFlights(t *testing.T) {
	csv := `FlightNumber,FlightDate,AvailableCapacity,TimeOfDay,RouteType
de1400,2024-06-03,180,Morning,Leisure
DE77,2024-06-04,,,
`
	flights, err := ParseFlights(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, flights, 2)

	f := flights[0]
	assert.Equal(t, "DE1400", f.FlightNumber)
	assert.Equal(t, "2024-06-03", f.FlightDate)
	assert.Equal(t, 180, f.AvailableCapacity)
	assert.Equal(t, "morning", f.TimeOfDay)
	assert.Equal(t, "leisure", f.RouteType)

	assert.Equal(t, 0, flights[1].AvailableCapacity)
	assert.Equal(t, "", flights[1].TimeOfDay)
}

func TestNormalizeChannel(t *testing.T) {
	assert.Equal(t, "condor app", NormalizeChannel(" Condor-App "))
	assert.Equal(t, "ota", NormalizeChannel("Online Travel Agency"))
	assert.Equal(t, "carrier desk", NormalizeChannel("Carrier Desk"), "unknown channels pass through lower-cased")
}

func TestNormalizeBookingID(t *testing.T) {
	assert.Equal(t, "12345", NormalizeBookingID(" AB-12345 "))
	assert.Equal(t, "", NormalizeBookingID("ABCDE"))
}

func TestParseDateLayouts(t *testing.T) {
	for _, in := range []string{"2024-06-03", "2024-06-03 00:00:00", "03.06.2024"} {
		got, ok := parseDate(in)
		require.True(t, ok, in)
		assert.Equal(t, "2024-06-03", got, in)
	}

	_, ok := parseDate("junk")
	assert.False(t, ok)

	got, ok := parseDate("")
	assert.True(t, ok)
	assert.Equal(t, "", got)
}
