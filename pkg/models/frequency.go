package models

import "time"

// BandConfig is the set of target frequencies an analysis measures
type BandConfig struct {
	ID         string    `json:"id" doc:"Band config ID"`
	AnalysisID string    `json:"analysis_id" doc:"Associated analysis ID"`
	LowHz      float64   `json:"low_hz" doc:"Low band target frequency in Hz"`
	MidHz      float64   `json:"mid_hz" doc:"Mid band target frequency in Hz"`
	HighHz     float64   `json:"high_hz" doc:"High band target frequency in Hz"`
	CreatedAt  time.Time `json:"created_at" doc:"When the config was stored"`
}

// BandResult is the decay measurement of one band. RT60 is null when the
// decay could not be resolved and Reason says why.
type BandResult struct {
	Band      string   `json:"band" enum:"low,mid,high" doc:"Band name"`
	TargetHz  float64  `json:"target_hz" doc:"Requested frequency in Hz"`
	MatchedHz float64  `json:"matched_hz" doc:"Frequency of the spectrogram bin used"`
	RT60      *float64 `json:"rt60" doc:"Reverberation time in seconds"`
	PeakDB    *float64 `json:"peak_db,omitempty" doc:"Peak level of the band in dB"`
	Reason    string   `json:"reason,omitempty" doc:"Why RT60 is missing"`
}
