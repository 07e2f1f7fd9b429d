package route

import "strings"

// Airport holds the reference coordinates for one airport.
type Airport struct {
	IATA string
	Lat  float64
	Lon  float64
}

// airports is the reference table for the carrier's network. Distances
// derived from it feed the ASK enrichment of segment rollups; segments
// touching an airport outside the table simply stay unenriched.
var airports = map[string]Airport{
	"FRA": {IATA: "FRA", Lat: 50.0379, Lon: 8.5622},
	"MUC": {IATA: "MUC", Lat: 48.3538, Lon: 11.7861},
	"DUS": {IATA: "DUS", Lat: 51.2895, Lon: 6.7668},
	"HAM": {IATA: "HAM", Lat: 53.6304, Lon: 9.9882},
	"STR": {IATA: "STR", Lat: 48.6899, Lon: 9.2220},
	"LEJ": {IATA: "LEJ", Lat: 51.4324, Lon: 12.2416},
	"FCO": {IATA: "FCO", Lat: 41.8003, Lon: 12.2389},
	"PMO": {IATA: "PMO", Lat: 38.1760, Lon: 13.0910},
	"CTA": {IATA: "CTA", Lat: 37.4668, Lon: 15.0664},
	"OLB": {IATA: "OLB", Lat: 40.8987, Lon: 9.5176},
	"PMI": {IATA: "PMI", Lat: 39.5517, Lon: 2.7388},
	"AGP": {IATA: "AGP", Lat: 36.6749, Lon: -4.4991},
	"LPA": {IATA: "LPA", Lat: 27.9319, Lon: -15.3866},
	"TFS": {IATA: "TFS", Lat: 28.0445, Lon: -16.5725},
	"FUE": {IATA: "FUE", Lat: 28.4527, Lon: -13.8638},
	"ACE": {IATA: "ACE", Lat: 28.9455, Lon: -13.6052},
	"HRG": {IATA: "HRG", Lat: 27.1783, Lon: 33.7994},
	"RMF": {IATA: "RMF", Lat: 25.5571, Lon: 34.5837},
	"AYT": {IATA: "AYT", Lat: 36.8987, Lon: 30.8005},
	"HER": {IATA: "HER", Lat: 35.3397, Lon: 25.1803},
	"RHO": {IATA: "RHO", Lat: 36.4054, Lon: 28.0862},
	"KGS": {IATA: "KGS", Lat: 36.7933, Lon: 27.0917},
	"CFU": {IATA: "CFU", Lat: 39.6019, Lon: 19.9117},
	"BCN": {IATA: "BCN", Lat: 41.2971, Lon: 2.0785},
	"LIS": {IATA: "LIS", Lat: 38.7813, Lon: -9.1359},
	"FAO": {IATA: "FAO", Lat: 37.0144, Lon: -7.9659},
}

// LookupAirport returns the reference coordinates for an IATA code.
func LookupAirport(iata string) (Airport, bool) {
	a, ok := airports[strings.ToUpper(strings.TrimSpace(iata))]
	return a, ok
}
