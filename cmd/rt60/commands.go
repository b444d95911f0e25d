package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/rt60/internal/acoustics"
	"github.com/RMahshie/rt60/internal/audio"
	"github.com/RMahshie/rt60/internal/plot"
	"github.com/RMahshie/rt60/internal/processing"
	"github.com/RMahshie/rt60/pkg/models"
)

// analyzeFile decodes the recording at path and runs the analyzer on it.
func analyzeFile(path string, bands acoustics.BandConfig, target float64) (acoustics.Signal, *acoustics.Result, error) {
	format, err := audio.FormatForPath(path)
	if err != nil {
		return acoustics.Signal{}, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return acoustics.Signal{}, nil, fmt.Errorf("failed to open recording: %w", err)
	}
	defer f.Close()

	sig, err := audio.DefaultRegistry().Decode(format, f)
	if err != nil {
		return acoustics.Signal{}, nil, err
	}
	log.Debug().Str("file", path).Int("sample_rate", sig.SampleRate).Int("samples", len(sig.Samples)).Msg("Recording decoded")

	analyzer := acoustics.NewAnalyzer(
		acoustics.WithBands(bands),
		acoustics.WithTargetRT60(target),
		acoustics.WithLogger(log.Logger),
	)
	res, err := analyzer.Analyze(sig)
	if err != nil {
		return acoustics.Signal{}, nil, err
	}
	return sig, res, nil
}

func newResults(sig acoustics.Signal, res *acoustics.Result, target float64) *models.AnalysisResults {
	results := processing.NewResults(res, sig.SampleRate, target)
	results.CreatedAt = time.Now().UTC()
	return results
}

func writeJSON(w io.Writer, results *models.AnalysisResults) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeTable(w io.Writer, name string, results *models.AnalysisResults) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Recording:\t%s\n", name)
	fmt.Fprintf(tw, "Duration:\t%.3f s @ %d Hz\n", results.DurationSeconds, results.SampleRate)
	fmt.Fprintf(tw, "Resonant frequency:\t%.1f Hz\n\n", results.ResonantFrequencyHz)

	fmt.Fprintln(tw, "BAND\tTARGET HZ\tMATCHED HZ\tRT60 S\t")
	for _, b := range results.Bands {
		rt60 := "n/a (" + b.Reason + ")"
		if b.RT60 != nil {
			rt60 = fmt.Sprintf("%.3f", *b.RT60)
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%s\t\n", b.Band, b.TargetHz, b.MatchedHz, rt60)
	}

	diff := "n/a"
	if results.RT60Difference != nil {
		diff = fmt.Sprintf("%+.3f s", *results.RT60Difference)
	}
	fmt.Fprintf(tw, "\nRT60 difference (target %.2f s):\t%s\n", results.TargetRT60, diff)
	return tw.Flush()
}

func renderFile(path, title string, sig acoustics.Signal, res *acoustics.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := plot.Render(f, filepath.Base(title), sig, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func htmlPath(recording string) string {
	return strings.TrimSuffix(recording, filepath.Ext(recording)) + ".html"
}
