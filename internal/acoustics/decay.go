package acoustics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Decay window used for T20: the level is measured from EarlyDrop to
// ReferenceDrop below the peak and extrapolated to a 60 dB decay.
const (
	EarlyDrop     = 5.0
	ReferenceDrop = 25.0
	rt60Factor    = 60.0 / (ReferenceDrop - EarlyDrop)

	// MinDecaySpan is the smallest level difference, in dB, between the two
	// matched points for the window to count as a decay.
	MinDecaySpan = (ReferenceDrop - EarlyDrop) / 2
)

// DecayResult describes the T20 measurement of one decibel series.
// EarlyIndex and ReferenceIndex index the full series, not the post-peak slice.
type DecayResult struct {
	RT60           float64
	PeakIndex      int
	PeakValue      float64
	EarlyIndex     int
	ReferenceIndex int
}

// EstimateDecay locates the peak of values, finds the post-peak samples
// nearest to peak-5 dB and peak-25 dB and extrapolates their time difference
// to an RT60.
//
// When the window cannot be resolved the returned error wraps
// ErrDegenerateBand. The result still carries whatever was measured, RT60
// included, so callers can report it, but it must not be used as a decay time.
func EstimateDecay(values, times []float64) (DecayResult, error) {
	if len(values) == 0 {
		return DecayResult{}, fmt.Errorf("%w: empty series", ErrDegenerateBand)
	}
	if len(values) != len(times) {
		return DecayResult{}, fmt.Errorf("%w: %d values for %d times", ErrDegenerateBand, len(values), len(times))
	}

	res := DecayResult{PeakIndex: floats.MaxIdx(values)}
	res.PeakValue = values[res.PeakIndex]
	res.EarlyIndex = res.PeakIndex
	res.ReferenceIndex = res.PeakIndex

	if math.IsInf(res.PeakValue, -1) || math.IsNaN(res.PeakValue) {
		return res, fmt.Errorf("%w: band is silent", ErrDegenerateBand)
	}

	tail := values[res.PeakIndex:]
	if !hasDistinct(tail) {
		return res, fmt.Errorf("%w: no level change after peak", ErrDegenerateBand)
	}

	res.EarlyIndex = res.PeakIndex + NearestIndex(tail, res.PeakValue-EarlyDrop)
	res.ReferenceIndex = res.PeakIndex + NearestIndex(tail, res.PeakValue-ReferenceDrop)
	res.RT60 = rt60Factor * (times[res.ReferenceIndex] - times[res.EarlyIndex])

	if math.IsInf(values[res.EarlyIndex], -1) || math.IsInf(values[res.ReferenceIndex], -1) {
		return res, fmt.Errorf("%w: decay reaches silence", ErrDegenerateBand)
	}
	if res.ReferenceIndex <= res.EarlyIndex {
		return res, fmt.Errorf("%w: -%g dB point at %d does not follow -%g dB point at %d",
			ErrDegenerateBand, ReferenceDrop, res.ReferenceIndex, EarlyDrop, res.EarlyIndex)
	}
	if span := values[res.EarlyIndex] - values[res.ReferenceIndex]; span < MinDecaySpan {
		return res, fmt.Errorf("%w: level only drops %.1f dB across the window", ErrDegenerateBand, span)
	}

	return res, nil
}

// hasDistinct reports whether values holds at least two different levels.
func hasDistinct(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}
