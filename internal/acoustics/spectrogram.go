package acoustics

import (
	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// WindowSize is the FFT length of every spectrogram segment.
	WindowSize = 1024
	// WindowOverlap is the number of samples shared by consecutive segments.
	WindowOverlap = 128
)

// Spectrogram is a time-frequency power matrix indexed [frequency][time].
// Power values are linear (not decibels) and non-negative.
type Spectrogram struct {
	Frequencies []float64
	Times       []float64
	Power       [][]float64
}

// NewSpectrogram computes the one-sided power spectral density of sig over
// Hann-windowed segments of WindowSize samples overlapping by WindowOverlap.
// Signals shorter than one window are zero-padded.
func NewSpectrogram(sig Signal) (*Spectrogram, error) {
	if len(sig.Samples) == 0 {
		return nil, ErrEmptySignal
	}
	if sig.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	samples := sig.Samples
	if len(samples) < WindowSize {
		padded := make([]float64, WindowSize)
		copy(padded, samples)
		samples = padded
	}

	hop := WindowSize - WindowOverlap
	segments := (len(samples) - WindowOverlap) / hop
	bins := WindowSize/2 + 1
	rate := float64(sig.SampleRate)

	win := window.Hann(WindowSize)
	var winEnergy float64
	for _, w := range win {
		winEnergy += w * w
	}
	scale := 1 / (rate * winEnergy)

	spec := &Spectrogram{
		Frequencies: make([]float64, bins),
		Times:       make([]float64, segments),
		Power:       make([][]float64, bins),
	}
	for k := range spec.Frequencies {
		spec.Frequencies[k] = float64(k) * rate / WindowSize
		spec.Power[k] = make([]float64, segments)
	}

	fft := fourier.NewFFT(WindowSize)
	frame := make([]float64, WindowSize)
	coeffs := make([]complex128, bins)
	re := make([]float64, bins)
	im := make([]float64, bins)
	power := make([]float64, bins)

	for t := 0; t < segments; t++ {
		start := t * hop
		for i := range frame {
			frame[i] = samples[start+i] * win[i]
		}
		coeffs = fft.Coefficients(coeffs, frame)
		for k, c := range coeffs {
			re[k] = real(c)
			im[k] = imag(c)
		}
		vecmath.Power(power, re, im)

		for k, p := range power {
			// Fold the negative frequencies onto every bin except DC and Nyquist.
			if k > 0 && k < bins-1 {
				p *= 2
			}
			spec.Power[k][t] = p * scale
		}
		spec.Times[t] = float64(start+WindowSize/2) / rate
	}

	return spec, nil
}

// Bins returns the number of frequency rows.
func (s *Spectrogram) Bins() int { return len(s.Frequencies) }

// Frames returns the number of time columns.
func (s *Spectrogram) Frames() int { return len(s.Times) }
