package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreatCircleKm(t *testing.T) {
	// Same point
	assert.InDelta(t, 0, GreatCircleKm(50.0, 8.5, 50.0, 8.5), 1e-9)

	// FRA to PMI is roughly 1300 km
	d := GreatCircleKm(50.0379, 8.5622, 39.5517, 2.7388)
	assert.InDelta(t, 1300, d, 100)

	// Symmetric
	assert.InDelta(t, d, GreatCircleKm(39.5517, 2.7388, 50.0379, 8.5622), 1e-9)
}

func TestSegmentDistanceKm(t *testing.T) {
	d, ok := SegmentDistanceKm("FRA", "PMI")
	require.True(t, ok)
	assert.Greater(t, d, 1000.0)
	assert.Less(t, d, 1600.0)

	// Case and whitespace tolerant lookup
	d2, ok := SegmentDistanceKm(" fra ", "pmi")
	require.True(t, ok)
	assert.Equal(t, d, d2)
}

func TestSegmentDistanceKmUnknownAirport(t *testing.T) {
	_, ok := SegmentDistanceKm("FRA", "ZZZ")
	assert.False(t, ok)
	_, ok = SegmentDistanceKm("ZZZ", "FRA")
	assert.False(t, ok)
}

func TestLookupAirport(t *testing.T) {
	a, ok := LookupAirport("fra")
	require.True(t, ok)
	assert.Equal(t, "FRA", a.IATA)

	_, ok = LookupAirport("")
	assert.False(t, ok)
}
