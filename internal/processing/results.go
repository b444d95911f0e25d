package processing

import (
	"errors"
	"math"
	"strings"

	"github.com/RMahshie/rt60/internal/acoustics"
	"github.com/RMahshie/rt60/pkg/models"
)

// NewResults converts an analysis into its stored form. IDs and timestamps
// are left to the caller.
func NewResults(res *acoustics.Result, sampleRate int, targetRT60 float64) *models.AnalysisResults {
	out := &models.AnalysisResults{
		DurationSeconds:     res.Duration,
		SampleRate:          sampleRate,
		ResonantFrequencyHz: res.ResonantFrequency,
		RT60Difference:      res.RT60Difference,
		TargetRT60:          targetRT60,
		Bands:               make([]models.BandResult, 0, len(res.Bands)),
	}

	for _, br := range res.Bands {
		band := models.BandResult{
			Band:      br.Band.String(),
			TargetHz:  br.Series.Target,
			MatchedHz: br.Series.Matched,
			RT60:      br.RT60(),
		}
		if peak := br.Decay.PeakValue; !math.IsInf(peak, 0) && !math.IsNaN(peak) {
			band.PeakDB = &peak
		}
		if br.Err != nil {
			band.Reason = reason(br.Err)
		}
		out.Bands = append(out.Bands, band)
	}

	return out
}

// reason strips the sentinel prefix so only the band-specific cause remains.
func reason(err error) string {
	msg := err.Error()
	if errors.Is(err, acoustics.ErrDegenerateBand) {
		msg = strings.TrimPrefix(msg, acoustics.ErrDegenerateBand.Error()+": ")
	}
	return msg
}
