package acoustics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateDecayLinear(t *testing.T) {
	values, times := linearSeries(40, 1, 0.1)

	res, err := EstimateDecay(values, times)
	require.NoError(t, err)

	assert.Equal(t, 0, res.PeakIndex)
	assert.Equal(t, 0.0, res.PeakValue)
	assert.Equal(t, 5, res.EarlyIndex)
	assert.Equal(t, 25, res.ReferenceIndex)
	assert.InDelta(t, 6.0, res.RT60, 1e-9)
}

func TestEstimateDecayIgnoresOnset(t *testing.T) {
	decay, decayTimes := linearSeries(40, 2, 0.05)
	// A quiet onset rising to the peak, then the same decay shifted by 10 frames.
	values := []float64{-60, -50, -40, -30, -20, -15, -10, -6, -3, -1}
	values = append(values, decay...)
	times := make([]float64, len(values))
	for i := range times {
		times[i] = 0.05 * float64(i)
	}

	res, err := EstimateDecay(values, times)
	require.NoError(t, err)

	base, err := EstimateDecay(decay, decayTimes)
	require.NoError(t, err)

	assert.Equal(t, 10, res.PeakIndex)
	assert.Equal(t, base.EarlyIndex+10, res.EarlyIndex)
	assert.Equal(t, base.ReferenceIndex+10, res.ReferenceIndex)
	assert.InDelta(t, base.RT60, res.RT60, 1e-9)
}

func TestEstimateDecayScaleInvariant(t *testing.T) {
	n := 60
	power := make([]float64, n)
	times := make([]float64, n)
	for i := range power {
		// 1.3 dB per frame with a little ripple so no two levels tie.
		power[i] = math.Pow(10, (-1.3*float64(i)+0.1*math.Sin(float64(i)))/10)
		times[i] = 0.02 * float64(i)
	}

	base, err := EstimateDecay(Decibels(power), times)
	require.NoError(t, err)

	for _, c := range []float64{1e-6, 0.37, 4, 2500} {
		scaled := make([]float64, n)
		for i, p := range power {
			scaled[i] = c * p
		}
		res, err := EstimateDecay(Decibels(scaled), times)
		require.NoError(t, err)
		assert.Equal(t, base.EarlyIndex, res.EarlyIndex, "scale %g", c)
		assert.Equal(t, base.ReferenceIndex, res.ReferenceIndex, "scale %g", c)
		assert.InDelta(t, base.RT60, res.RT60, 1e-12, "scale %g", c)
	}
}

func TestEstimateDecayDegenerate(t *testing.T) {
	inf := math.Inf(-1)

	tests := []struct {
		name   string
		values []float64
		times  []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []float64{0, -1}, []float64{0}},
		{"silent", []float64{inf, inf, inf}, []float64{0, 1, 2}},
		{"single frame", []float64{-3}, []float64{0}},
		{"flat", []float64{-3, -3, -3, -3}, []float64{0, 1, 2, 3}},
		{"peak at the end", []float64{-40, -30, -20, -10, 0}, []float64{0, 1, 2, 3, 4}},
		{"shallow decay", []float64{0, -1, -2, -3, -2.5}, []float64{0, 1, 2, 3, 4}},
		{"drops straight to silence", []float64{0, -3, inf, inf}, []float64{0, 1, 2, 3}},
		{"reference before early point", []float64{0, -25, -5, -4, -6}, []float64{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateDecay(tt.values, tt.times)
			assert.ErrorIs(t, err, ErrDegenerateBand)
		})
	}
}

func TestEstimateDecayReportsMisorderedWindow(t *testing.T) {
	values := []float64{0, -25, -5, -4, -6}
	times := []float64{0, 1, 2, 3, 4}

	res, err := EstimateDecay(values, times)
	require.ErrorIs(t, err, ErrDegenerateBand)

	// The measured value is kept rather than clamped.
	assert.Equal(t, 2, res.EarlyIndex)
	assert.Equal(t, 1, res.ReferenceIndex)
	assert.InDelta(t, -3.0, res.RT60, 1e-12)
}
