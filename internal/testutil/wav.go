package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// DecayingTone returns a sine of freq Hz whose level falls dbPerSecond
// decibels every second.
func DecayingTone(rate int, freq, dbPerSecond, seconds float64) []float64 {
	out := make([]float64, int(seconds*float64(rate)))
	for i := range out {
		t := float64(i) / float64(rate)
		out[i] = math.Pow(10, -dbPerSecond*t/20) * math.Sin(2*math.Pi*freq*t)
	}
	return out
}

// RoomChord returns one tone per default analysis band, each decaying
// dbPerSecond. The low tone is 6 dB louder than the others so the resonant
// frequency is unambiguous, and the sum stays within [-1, 1].
func RoomChord(rate int, dbPerSecond, seconds float64) []float64 {
	low := DecayingTone(rate, 1000, dbPerSecond, seconds)
	mid := DecayingTone(rate, 2500, dbPerSecond, seconds)
	high := DecayingTone(rate, 5000, dbPerSecond, seconds)

	out := make([]float64, len(low))
	for i := range out {
		out[i] = 0.5*low[i] + 0.25*mid[i] + 0.25*high[i]
	}
	return out
}

// EncodeWAV returns samples in [-1, 1] as a mono 16-bit WAV file.
func EncodeWAV(t testing.TB, rate int, samples []float64) []byte {
	t.Helper()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, s)) * math.MaxInt16))
	}
	return EncodePCM(t, rate, 16, data)
}

// EncodePCM returns raw integer samples as a mono WAV file of bitDepth bits.
func EncodePCM(t testing.TB, rate, bitDepth int, data []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, rate, bitDepth, 1, 1)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: rate, NumChannels: 1},
		Data:           data,
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return raw
}
