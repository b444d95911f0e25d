// Package plot renders analysis results as an interactive HTML report.
package plot

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/RMahshie/rt60/internal/acoustics"
)

// Limits keeping the generated page small enough for a browser.
const (
	maxWaveformPoints = 2000
	maxHeatmapFrames  = 200
	maxHeatmapBins    = 128

	// dbFloor replaces -Inf in the heatmap, which has no notion of gaps.
	dbFloor = -160.0
)

// gap is how echarts marks a missing point in a line series.
const gap = "-"

// Render writes an HTML page with the waveform, the spectrogram, one decay
// chart per band and an overlay of all bands.
func Render(w io.Writer, title string, sig acoustics.Signal, res *acoustics.Result) error {
	if res == nil || res.Spectrogram == nil {
		return fmt.Errorf("plot: no analysis result to render")
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(Waveform(sig), Spectrogram(res.Spectrogram))
	for _, b := range acoustics.Bands {
		page.AddCharts(Band(res.Band(b), res.Spectrogram.Times))
	}
	page.AddCharts(Overlay(res))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("plot: failed to render page: %w", err)
	}
	return nil
}

// Waveform charts the signal amplitude against time. Long signals keep the
// peak sample of each bucket so transients stay visible.
func Waveform(sig acoustics.Signal) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Waveform"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Amplitude"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	step := max(1, (len(sig.Samples)+maxWaveformPoints-1)/maxWaveformPoints)
	var xs []string
	var data []opts.LineData
	for start := 0; start < len(sig.Samples); start += step {
		end := min(start+step, len(sig.Samples))
		peak := sig.Samples[start]
		for _, v := range sig.Samples[start:end] {
			if math.Abs(v) > math.Abs(peak) {
				peak = v
			}
		}
		xs = append(xs, seconds(float64(start)/float64(sig.SampleRate)))
		data = append(data, opts.LineData{Value: peak})
	}

	line.SetXAxis(xs).AddSeries("amplitude", data)
	return line
}

// Spectrogram charts the power of every bin in decibels as a heatmap.
func Spectrogram(s *acoustics.Spectrogram) *charts.HeatMap {
	frameStep := max(1, (s.Frames()+maxHeatmapFrames-1)/maxHeatmapFrames)
	binStep := max(1, (s.Bins()+maxHeatmapBins-1)/maxHeatmapBins)

	var xs, ys []string
	for j := 0; j < s.Frames(); j += frameStep {
		xs = append(xs, seconds(s.Times[j]))
	}
	for i := 0; i < s.Bins(); i += binStep {
		ys = append(ys, fmt.Sprintf("%.0f", s.Frequencies[i]))
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	var data []opts.HeatMapData
	for yi, i := 0, 0; i < s.Bins(); yi, i = yi+1, i+binStep {
		for xi, j := 0, 0; j < s.Frames(); xi, j = xi+1, j+frameStep {
			db := math.Max(acoustics.Decibel(s.Power[i][j]), dbFloor)
			lo, hi = math.Min(lo, db), math.Max(hi, db)
			data = append(data, opts.HeatMapData{Value: [3]interface{}{xi, yi, round(db)}})
		}
	}
	if lo > hi {
		lo, hi = dbFloor, 0
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Spectrogram", Subtitle: "Power (dB)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)", Type: "category", Data: xs}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Frequency (Hz)", Type: "category", Data: ys}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: []string{"#000004", "#7b2382", "#f1605d", "#fcfdbf"}},
		}),
	)
	hm.SetXAxis(xs).AddSeries("power", data)
	return hm
}

// Band charts the decibel series of one band, annotated with its RT60.
func Band(br acoustics.BandResult, times []float64) *charts.Line {
	subtitle := fmt.Sprintf("%.1f Hz: not measurable", br.Series.Matched)
	if rt := br.RT60(); rt != nil {
		subtitle = fmt.Sprintf("%.1f Hz: RT60 %.3f s", br.Series.Matched, *rt)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s band", br.Band), Subtitle: subtitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Power (dB)"}),
	)
	line.SetXAxis(timeLabels(times)).AddSeries(br.Band.String(), lineData(br.Series.Values))
	return line
}

// Overlay charts every band on shared axes.
func Overlay(res *acoustics.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "All bands"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Power (dB)"}),
	)
	line.SetXAxis(timeLabels(res.Spectrogram.Times))
	for _, b := range acoustics.Bands {
		br := res.Band(b)
		line.AddSeries(fmt.Sprintf("%s (%.0f Hz)", b, br.Series.Matched), lineData(br.Series.Values))
	}
	return line
}

// lineData converts values to series points, leaving gaps for non-finite levels.
func lineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			out[i] = opts.LineData{Value: gap}
			continue
		}
		out[i] = opts.LineData{Value: round(v)}
	}
	return out
}

func timeLabels(times []float64) []string {
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = seconds(t)
	}
	return out
}

func seconds(t float64) string { return fmt.Sprintf("%.3f", t) }

func round(v float64) float64 { return math.Round(v*100) / 100 }
