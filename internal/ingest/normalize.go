package ingest

import (
	"strings"
	"time"
)

// channelAliases maps raw booking-channel spellings to their canonical
// form. Unknown values pass through lower-cased rather than being
// dropped, so a new channel shows up in breakdowns instead of vanishing.
var channelAliases = map[string]string{
	"condor app":           "condor app",
	"condor-app":           "condor app",
	"app":                  "condor app",
	"website":              "website",
	"web":                  "website",
	"call center":          "call center",
	"travel agency":        "travel agency",
	"ota":                  "ota",
	"online travel agency": "ota",
}

// NormalizeChannel canonicalizes a booking channel label.
func NormalizeChannel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := channelAliases[s]; ok {
		return canonical
	}
	return s
}

// NormalizeBookingID strips a PNR down to its digits. Returns "" when
// no digits remain.
func NormalizeBookingID(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeIATA upper-cases and trims an airport code.
func NormalizeIATA(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// normalizeHeader maps a raw CSV header to its canonical column name:
// trimmed, lower-cased, spaces to underscores, parentheses dropped.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return s
}

// parseDate accepts the date layouts the source files use and returns
// the canonical YYYY-MM-DD form. Empty input stays empty.
func parseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", "02.01.2006", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// daysBetween returns the whole-day difference to - from for two
// canonical dates, nil when either is missing.
func daysBetween(from, to string) *int {
	if from == "" || to == "" {
		return nil
	}
	tf, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil
	}
	tt, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil
	}
	d := int(tt.Sub(tf).Hours() / 24)
	return &d
}

// weekday returns the English day name of a canonical date, "" when
// the date is missing or malformed.
func weekday(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
