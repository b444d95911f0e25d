package acoustics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalDuration(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		samples    int
	}{
		{"one sample", 8000, 1},
		{"one second", 44100, 44100},
		{"fractional", 48000, 12345},
		{"odd rate", 22050, 99991},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Signal{SampleRate: tt.sampleRate, Samples: make([]float64, tt.samples)}
			assert.Equal(t, float64(tt.samples)/float64(tt.sampleRate), sig.Duration())
		})
	}
}

func TestSignalValidate(t *testing.T) {
	tests := []struct {
		name    string
		signal  Signal
		wantErr error
	}{
		{"valid", Signal{SampleRate: 8000, Samples: []float64{0, 0.5}}, nil},
		{"zero rate", Signal{SampleRate: 0, Samples: []float64{1}}, ErrInvalidSampleRate},
		{"negative rate", Signal{SampleRate: -1, Samples: []float64{1}}, ErrInvalidSampleRate},
		{"no samples", Signal{SampleRate: 8000}, ErrEmptySignal},
		{"nan sample", Signal{SampleRate: 8000, Samples: []float64{0, math.NaN()}}, ErrNonFiniteSample},
		{"infinite sample", Signal{SampleRate: 8000, Samples: []float64{math.Inf(1)}}, ErrNonFiniteSample},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.signal.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
