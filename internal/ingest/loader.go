package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/skylens/routemetrics/internal/models"
)

// columnAliases maps the spellings seen in source exports to canonical
// column names, applied after normalizeHeader.
var columnAliases = map[string]string{
	"bookingid_pnr":              "booking_id",
	"bookingid":                  "booking_id",
	"flightnumber":               "flight_number",
	"flightdate":                 "flight_date",
	"passengercount":             "passenger_count",
	"revenue_per_booking_ticket": "ticket_revenue",
	"revenue_per_booking_ancilliary_pre_check_in": "ancillary_pre_revenue",
	"revenue_per_booking_ancilliary_at_check_in":  "ancillary_at_revenue",
	"availablecapacity":                           "available_capacity",
	"timeofday":                                   "time_of_day",
	"routetype":                                   "route_type",
}

type record struct {
	fields map[string]int
	row    []string
}

func (r record) get(name string) string {
	idx, ok := r.fields[name]
	if !ok || idx >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[idx])
}

// readAll parses a headered CSV stream into records with canonical
// column names.
func readAll(src io.Reader) ([]record, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	fields := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		fields[name] = i
	}

	var records []record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		records = append(records, record{fields: fields, row: row})
	}
	return records, nil
}

// ParseBookings reads raw booking rows from a CSV export. Key fields
// are normalized (digits-only PNR, upper-cased IATA codes, canonical
// dates) and cancellation lead times are derived where the dates
// allow. A row with an unparseable flight date is rejected: every
// downstream join keys on it.
func ParseBookings(src io.Reader) ([]models.Booking, error) {
	records, err := readAll(src)
	if err != nil {
		return nil, err
	}

	bookings := make([]models.Booking, 0, len(records))
	for i, rec := range records {
		flightDate, ok := parseDate(rec.get("flight_date"))
		if !ok || flightDate == "" {
			return nil, fmt.Errorf("booking row %d: bad flight_date %q", i+2, rec.get("flight_date"))
		}

		b := models.Booking{
			BookingID:      NormalizeBookingID(rec.get("booking_id")),
			FlightNumber:   strings.ToUpper(rec.get("flight_number")),
			FlightDate:     flightDate,
			Origin:         NormalizeIATA(rec.get("origin")),
			Destination:    NormalizeIATA(rec.get("destination")),
			BookingChannel: NormalizeChannel(rec.get("booking_channel")),
			DayOfWeek:      weekday(flightDate),
		}

		if b.PassengerCount, err = parseInt(rec.get("passenger_count")); err != nil {
			return nil, fmt.Errorf("booking row %d: bad passenger_count: %w", i+2, err)
		}
		if b.TicketRevenue, err = parseFloat(rec.get("ticket_revenue")); err != nil {
			return nil, fmt.Errorf("booking row %d: bad ticket_revenue: %w", i+2, err)
		}
		if b.AncillaryPreRevenue, err = parseFloat(rec.get("ancillary_pre_revenue")); err != nil {
			return nil, fmt.Errorf("booking row %d: bad ancillary_pre_revenue: %w", i+2, err)
		}
		if b.AncillaryAtRevenue, err = parseFloat(rec.get("ancillary_at_revenue")); err != nil {
			return nil, fmt.Errorf("booking row %d: bad ancillary_at_revenue: %w", i+2, err)
		}

		// Lifecycle dates are optional; a malformed one is treated as
		// absent so that one bad date never drops the revenue row.
		if d, ok := parseDate(rec.get("reservation_date")); ok && d != "" {
			b.ReservationDate = &d
		}
		if d, ok := parseDate(rec.get("cancellation_date")); ok && d != "" {
			b.CancellationDate = &d
		}
		if b.ReservationDate != nil && b.CancellationDate != nil {
			b.DaysToCancelAfterBooking = daysBetween(*b.ReservationDate, *b.CancellationDate)
		}
		if b.CancellationDate != nil {
			b.DaysToCancelBeforeFlight = daysBetween(*b.CancellationDate, flightDate)
		}

		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ParseFlights reads raw operated-flight rows from a CSV export.
func ParseFlights(src io.Reader) ([]models.Flight, error) {
	records, err := readAll(src)
	if err != nil {
		return nil, err
	}

	flights := make([]models.Flight, 0, len(records))
	for i, rec := range records {
		flightDate, ok := parseDate(rec.get("flight_date"))
		if !ok || flightDate == "" {
			return nil, fmt.Errorf("flight row %d: bad flight_date %q", i+2, rec.get("flight_date"))
		}

		f := models.Flight{
			FlightNumber: strings.ToUpper(rec.get("flight_number")),
			FlightDate:   flightDate,
			TimeOfDay:    strings.ToLower(rec.get("time_of_day")),
			RouteType:    strings.ToLower(rec.get("route_type")),
		}
		if f.AvailableCapacity, err = parseInt(rec.get("available_capacity")); err != nil {
			return nil, fmt.Errorf("flight row %d: bad available_capacity: %w", i+2, err)
		}

		flights = append(flights, f)
	}
	return flights, nil
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	// Decimal-comma exports: "12,5" but never "1,234.56".
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}
