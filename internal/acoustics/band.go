package acoustics

import (
	"math"
)

// BandSeries is the decibel level of one frequency bin over time.
type BandSeries struct {
	Target  float64   // requested frequency in Hz
	Matched float64   // frequency of the bin actually used
	Bin     int       // row index into the spectrogram
	Values  []float64 // 10*log10(power) per time bin, -Inf where power is zero
}

// ExtractBand returns the decibel series of the spectrogram row whose
// frequency is nearest to target.
func ExtractBand(s *Spectrogram, target float64) BandSeries {
	bin := NearestIndex(s.Frequencies, target)
	return BandSeries{
		Target:  target,
		Matched: s.Frequencies[bin],
		Bin:     bin,
		Values:  Decibels(s.Power[bin]),
	}
}

// Decibel converts a linear power value to decibels. Zero power maps to -Inf.
func Decibel(p float64) float64 {
	return 10 * math.Log10(p)
}

// Decibels converts every value of power to decibels.
func Decibels(power []float64) []float64 {
	out := make([]float64, len(power))
	for i, p := range power {
		out[i] = Decibel(p)
	}
	return out
}

// NearestIndex returns the index of the value closest to target. Ties go to
// the lowest index. Infinite and NaN values only win when nothing finite is
// available, in which case the first index is returned. It panics on an
// empty slice.
func NearestIndex(values []float64, target float64) int {
	if len(values) == 0 {
		panic("acoustics: NearestIndex of empty slice")
	}
	best := 0
	bestDist := distance(values[0], target)
	for i := 1; i < len(values); i++ {
		if d := distance(values[i], target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func distance(v, target float64) float64 {
	d := math.Abs(v - target)
	if math.IsNaN(d) {
		return math.Inf(1)
	}
	return d
}
