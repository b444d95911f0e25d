package acoustics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestIndex(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		target float64
		want   int
	}{
		{"exact match", []float64{0, 10, 20, 30}, 20, 2},
		{"between rounds down", []float64{0, 10, 20, 30}, 14, 1},
		{"between rounds up", []float64{0, 10, 20, 30}, 16, 2},
		{"tie goes to first", []float64{0, 10, 20, 30}, 15, 1},
		{"duplicate values", []float64{5, 3, 3, 1}, 3, 1},
		{"below all", []float64{-1, -2, -3, -2}, -50, 2},
		{"above all", []float64{-1, -2, -3}, 50, 0},
		{"skips negative infinity", []float64{math.Inf(-1), -4, math.Inf(-1)}, -30, 1},
		{"skips nan", []float64{math.NaN(), 7, 9}, 10, 2},
		{"all infinite", []float64{math.Inf(-1), math.Inf(-1)}, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NearestIndex(tt.values, tt.target))
		})
	}
}

func TestNearestIndexIdempotent(t *testing.T) {
	values := []float64{-3.5, 12, 0.25, 99, -40, 7.125}
	for _, v := range values {
		got := values[NearestIndex(values, v)]
		assert.Equal(t, v, got)
	}
}

func TestDecibel(t *testing.T) {
	assert.Equal(t, 0.0, Decibel(1))
	assert.InDelta(t, 10.0, Decibel(10), 1e-12)
	assert.InDelta(t, -30.0, Decibel(0.001), 1e-12)
	assert.True(t, math.IsInf(Decibel(0), -1), "zero power must map to -Inf")
}

func TestDecibelMonotonic(t *testing.T) {
	powers := []float64{1e-12, 3e-9, 0.5, 0.5000001, 1, 2, 1e6}
	for i := 1; i < len(powers); i++ {
		assert.Greater(t, Decibel(powers[i]), Decibel(powers[i-1]),
			"dB(%g) should exceed dB(%g)", powers[i], powers[i-1])
	}
}

func TestExtractBand(t *testing.T) {
	spec := &Spectrogram{
		Frequencies: []float64{0, 100, 200, 300},
		Times:       []float64{0.1, 0.2, 0.3},
		Power: [][]float64{
			{1, 1, 1},
			{10, 1, 0},
			{100, 10, 1},
			{1, 1, 1},
		},
	}

	series := ExtractBand(spec, 140)
	assert.Equal(t, 140.0, series.Target)
	assert.Equal(t, 100.0, series.Matched)
	assert.Equal(t, 1, series.Bin)
	require.Len(t, series.Values, 3)
	assert.InDelta(t, 10.0, series.Values[0], 1e-12)
	assert.InDelta(t, 0.0, series.Values[1], 1e-12)
	assert.True(t, math.IsInf(series.Values[2], -1))

	// Exactly between two bins resolves to the lower frequency.
	assert.Equal(t, 200.0, ExtractBand(spec, 250).Matched)
}
