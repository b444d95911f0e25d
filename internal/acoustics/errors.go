package acoustics

import "errors"

// Errors returned by the analysis engine.
var (
	ErrEmptySignal       = errors.New("acoustics: signal has no samples")
	ErrInvalidSampleRate = errors.New("acoustics: sample rate must be positive")
	ErrNonFiniteSample   = errors.New("acoustics: signal contains NaN or infinite samples")
	ErrInvalidBand       = errors.New("acoustics: band frequency must be positive and finite")
	ErrDegenerateBand    = errors.New("acoustics: decay window not resolvable")
)
