package acoustics

import (
	"fmt"
	"math"
)

// Signal is a mono recording: amplitudes sampled at SampleRate Hz.
type Signal struct {
	SampleRate int
	Samples    []float64
}

// Duration returns the length of the signal in seconds.
func (s Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// Validate checks the invariants the engine relies on.
func (s Signal) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleRate, s.SampleRate)
	}
	if len(s.Samples) == 0 {
		return ErrEmptySignal
	}
	for i, v := range s.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d", ErrNonFiniteSample, i)
		}
	}
	return nil
}
