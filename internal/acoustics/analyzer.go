package acoustics

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Band names one of the three analysis frequencies.
type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh
)

// Bands lists every band in presentation order.
var Bands = [...]Band{BandLow, BandMid, BandHigh}

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMid:
		return "mid"
	case BandHigh:
		return "high"
	default:
		return fmt.Sprintf("band(%d)", int(b))
	}
}

// BandConfig holds the target frequency in Hz of each band.
type BandConfig struct {
	Low  float64
	Mid  float64
	High float64
}

// DefaultBands returns the standard low/mid/high analysis frequencies.
func DefaultBands() BandConfig {
	return BandConfig{Low: 1000, Mid: 2500, High: 5000}
}

// Frequency returns the target frequency configured for b.
func (c BandConfig) Frequency(b Band) float64 {
	switch b {
	case BandLow:
		return c.Low
	case BandMid:
		return c.Mid
	default:
		return c.High
	}
}

// Validate checks that every band frequency is positive and finite.
func (c BandConfig) Validate() error {
	for _, b := range Bands {
		f := c.Frequency(b)
		if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %s band is %v Hz", ErrInvalidBand, b, f)
		}
	}
	return nil
}

// DefaultTargetRT60 is the reverberation time, in seconds, the RT60
// difference is measured against.
const DefaultTargetRT60 = 0.5

// BandResult is the decay measurement of one band. Err is non-nil, and wraps
// ErrDegenerateBand, when the decay window could not be resolved.
type BandResult struct {
	Band   Band
	Series BandSeries
	Decay  DecayResult
	Err    error
}

// Valid reports whether Decay.RT60 is a usable decay time.
func (r BandResult) Valid() bool { return r.Err == nil }

// RT60 returns the decay time, or nil when the band is degenerate.
func (r BandResult) RT60() *float64 {
	if !r.Valid() {
		return nil
	}
	v := r.Decay.RT60
	return &v
}

// Result is the complete analysis of one signal. The spectrogram and band
// series are kept for presentation.
type Result struct {
	Duration          float64
	ResonantFrequency float64
	Bands             [3]BandResult
	RT60Difference    *float64
	Spectrogram       *Spectrogram
}

// Band returns the result for b.
func (r *Result) Band(b Band) BandResult { return r.Bands[b] }

// Analyzer runs the full reverberation analysis of a signal.
type Analyzer struct {
	bands      BandConfig
	targetRT60 float64
	logger     zerolog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithBands sets the band frequencies.
func WithBands(c BandConfig) Option {
	return func(a *Analyzer) { a.bands = c }
}

// WithTargetRT60 sets the reference the RT60 difference is computed against.
func WithTargetRT60(seconds float64) Option {
	return func(a *Analyzer) { a.targetRT60 = seconds }
}

// WithLogger sets the logger used for per-band diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an analyzer using the default bands unless overridden.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		bands:      DefaultBands(),
		targetRT60: DefaultTargetRT60,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes the spectrogram of sig, the decay of every band and the
// resonant frequency. Errors that concern the whole signal are returned with
// a nil Result; degenerate bands are reported inside the Result.
func (a *Analyzer) Analyze(sig Signal) (*Result, error) {
	if err := a.bands.Validate(); err != nil {
		return nil, err
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	spec, err := NewSpectrogram(sig)
	if err != nil {
		return nil, fmt.Errorf("failed to build spectrogram: %w", err)
	}

	res := &Result{
		Duration:    sig.Duration(),
		Spectrogram: spec,
	}

	for _, b := range Bands {
		series := ExtractBand(spec, a.bands.Frequency(b))
		decay, err := EstimateDecay(series.Values, spec.Times)
		res.Bands[b] = BandResult{Band: b, Series: series, Decay: decay, Err: err}

		if err != nil {
			a.logger.Debug().Err(err).Str("band", b.String()).Float64("matched_hz", series.Matched).Msg("Band decay not resolvable")
			continue
		}
		a.logger.Debug().Str("band", b.String()).Float64("matched_hz", series.Matched).Float64("rt60", decay.RT60).Msg("Band decay measured")
	}

	res.ResonantFrequency = ResonantFrequency(spec)
	res.RT60Difference = a.difference(res.Bands)

	return res, nil
}

// difference returns mean(RT60) - target, or nil unless every band is valid.
func (a *Analyzer) difference(bands [3]BandResult) *float64 {
	var sum float64
	for _, br := range bands {
		if !br.Valid() {
			return nil
		}
		sum += br.Decay.RT60
	}
	d := sum/float64(len(bands)) - a.targetRT60
	return &d
}
