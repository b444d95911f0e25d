package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/rt60/internal/audio"
	"github.com/RMahshie/rt60/internal/testutil"
	"github.com/RMahshie/rt60/pkg/models"
)

func writeRecording(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hall.wav")
	raw := testutil.EncodeWAV(t, 44100, testutil.DecayingTone(44100, 1000, 30, 2))
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"rt60"}, args...))
	return out.String(), err
}

func TestAnalyzeCommandTable(t *testing.T) {
	path := writeRecording(t)

	out, err := run(t, "analyze", "-f", path)
	require.NoError(t, err)

	assert.Contains(t, out, "hall.wav")
	assert.Contains(t, out, "Resonant frequency:")
	for _, band := range []string{"low", "mid", "high"} {
		assert.Contains(t, out, band)
	}
	assert.Contains(t, out, "RT60 difference (target 0.50 s)")
}

func TestAnalyzeCommandJSON(t *testing.T) {
	path := writeRecording(t)

	out, err := run(t, "analyze", "-f", path, "--json", "--target", "1.5", "--mid", "2000")
	require.NoError(t, err)

	var results models.AnalysisResults
	require.NoError(t, json.Unmarshal([]byte(out), &results))

	assert.Equal(t, 44100, results.SampleRate)
	assert.InDelta(t, 2.0, results.DurationSeconds, 1e-9)
	assert.Equal(t, 1.5, results.TargetRT60)
	require.Len(t, results.Bands, 3)
	assert.Equal(t, "low", results.Bands[0].Band)
	assert.Equal(t, 2000.0, results.Bands[1].TargetHz)
	require.NotNil(t, results.Bands[0].RT60)
	assert.InEpsilon(t, 2.0, *results.Bands[0].RT60, 0.1)
}

func TestAnalyzeCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown extension", []string{"analyze", "-f", "room.flac"}, audio.ErrUnsupportedFormat},
		{"missing file", []string{"analyze", "-f", filepath.Join(os.TempDir(), "does-not-exist.wav")}, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAnalyzeCommandInvalidBand(t *testing.T) {
	path := writeRecording(t)

	_, err := run(t, "analyze", "-f", path, "--low=-5")
	assert.Error(t, err)
}

func TestPlotCommand(t *testing.T) {
	path := writeRecording(t)
	out := filepath.Join(t.TempDir(), "charts.html")

	_, err := run(t, "plot", "-f", path, "-o", out)
	require.NoError(t, err)

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>hall.wav</title>")
}

func TestHTMLPath(t *testing.T) {
	assert.Equal(t, "/tmp/room.html", htmlPath("/tmp/room.wav"))
	assert.Equal(t, "room.html", htmlPath("room"))
}
