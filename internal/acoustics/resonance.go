package acoustics

import "gonum.org/v1/gonum/floats"

// ResonantFrequency returns the frequency of the row holding the largest
// power value anywhere in the spectrogram. Decibel conversion is monotonic,
// so the linear maximum is also the loudest bin. The first occurrence wins,
// which makes an all-zero spectrogram resolve to Frequencies[0].
func ResonantFrequency(s *Spectrogram) float64 {
	bestRow := 0
	best := -1.0
	for row, power := range s.Power {
		if len(power) == 0 {
			continue
		}
		if v := power[floats.MaxIdx(power)]; v > best {
			bestRow, best = row, v
		}
	}
	return s.Frequencies[bestRow]
}
