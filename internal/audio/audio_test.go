package audio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/rt60/internal/acoustics"
)

type stubDecoder struct {
	sig acoustics.Signal
}

func (s stubDecoder) Decode(io.Reader) (acoustics.Signal, error) { return s.sig, nil }

func TestFormatForMIME(t *testing.T) {
	tests := []struct {
		mime    string
		want    string
		wantErr bool
	}{
		{"audio/wav", "wav", false},
		{"audio/x-wav", "wav", false},
		{"AUDIO/WAVE", "wav", false},
		{"audio/mpeg", "mp3", false},
		{"audio/ogg; codecs=vorbis", "ogg", false},
		{"audio/x-aiff", "aiff", false},
		{"audio/flac", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			got, err := FormatForMIME(tt.mime)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"room.wav", "wav", false},
		{"/tmp/Hall.WAV", "wav", false},
		{"clap.aif", "aiff", false},
		{"clap.mp3", "mp3", false},
		{"clap.ogg", "ogg", false},
		{"clap.flac", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupportedMIMETypes(t *testing.T) {
	types := SupportedMIMETypes()
	assert.IsIncreasing(t, types)
	for _, m := range types {
		_, err := FormatForMIME(m)
		assert.NoError(t, err, m)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	_, err := r.Decode("wav", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	want := acoustics.Signal{SampleRate: 8000, Samples: []float64{0.5}}
	r.Register("wav", stubDecoder{sig: want})

	got, err := r.Decode("wav", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, f := range []string{"wav", "aiff", "mp3", "ogg"} {
		_, ok := r.Get(f)
		assert.True(t, ok, f)
	}
}

func TestDefaultRegistryRejectsGarbage(t *testing.T) {
	garbage := []byte("this is not audio data at all, just text")
	r := DefaultRegistry()

	for _, f := range []string{"wav", "aiff", "mp3", "ogg"} {
		t.Run(f, func(t *testing.T) {
			_, err := r.Decode(f, bytes.NewReader(garbage))
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestDownmix(t *testing.T) {
	tests := []struct {
		name     string
		in       []float64
		channels int
		want     []float64
	}{
		{"mono passthrough", []float64{1, 2, 3}, 1, []float64{1, 2, 3}},
		{"stereo", []float64{1, 3, -1, 1}, 2, []float64{2, 0}},
		{"stereo partial frame", []float64{1, 3, 5}, 2, []float64{2}},
		{"three channels", []float64{3, 6, 9, 0, 0, 3}, 3, []float64{6, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, downmix(tt.in, tt.channels))
		})
	}
}

func TestIntScale(t *testing.T) {
	for depth, want := range map[int]float64{16: 32768, 24: 8388608, 32: 2147483648} {
		got, ok := intScale(depth)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := intScale(8)
	assert.False(t, ok)
}
