package models

import (
	"time"
)

// Analysis lifecycle states
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CreateAnalysisRequest represents a request to create a new analysis
type CreateAnalysisRequest struct {
	Body struct {
		SessionID string `json:"session_id" minLength:"10" maxLength:"50" required:"true" doc:"Client session identifier"`
		FileSize  int64  `json:"file_size" minimum:"1000" maximum:"52428800" required:"true" doc:"Recording size in bytes"`
		MimeType  string `json:"mime_type" enum:"audio/wav,audio/x-wav,audio/wave,audio/vnd.wave,audio/aiff,audio/x-aiff,audio/mpeg,audio/mp3,audio/ogg,audio/vorbis" required:"true" doc:"Recording MIME type"`
	}
}

// CreateAnalysisResponseBody is the body of the create analysis response
type CreateAnalysisResponseBody struct {
	ID        string `json:"id" doc:"Analysis unique identifier"`
	UploadURL string `json:"upload_url" doc:"Pre-signed S3 URL for file upload"`
	ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// CreateAnalysisResponse represents the response from creating an analysis
type CreateAnalysisResponse struct {
	Body CreateAnalysisResponseBody
}

// SetBandsRequest overrides the band frequencies of one analysis
type SetBandsRequest struct {
	ID   string `path:"id" doc:"Analysis ID"`
	Body struct {
		LowHz  float64 `json:"low_hz" exclusiveMinimum:"0" maximum:"96000" required:"true" doc:"Low band target frequency in Hz"`
		MidHz  float64 `json:"mid_hz" exclusiveMinimum:"0" maximum:"96000" required:"true" doc:"Mid band target frequency in Hz"`
		HighHz float64 `json:"high_hz" exclusiveMinimum:"0" maximum:"96000" required:"true" doc:"High band target frequency in Hz"`
	}
}

// SetBandsResponse returns the stored band configuration
type SetBandsResponse struct {
	Body *BandConfig
}

// StartProcessingRequest represents a request to start processing an uploaded file
type StartProcessingRequest struct {
	ID string `path:"id" doc:"Analysis ID"`
}

// StartProcessingResponse represents the response from starting processing
type StartProcessingResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// GetAnalysisStatusRequest represents a request to get analysis status
type GetAnalysisStatusRequest struct {
	ID string `path:"id" doc:"Analysis ID"`
}

// GetAnalysisStatusResponseBody is the body of the status response
type GetAnalysisStatusResponseBody struct {
	ID        string  `json:"id" doc:"Analysis ID"`
	Status    string  `json:"status" enum:"pending,processing,completed,failed" doc:"Analysis status"`
	Progress  int     `json:"progress" minimum:"0" maximum:"100" doc:"Analysis progress percentage"`
	Message   string  `json:"message,omitempty" doc:"Human-readable status message"`
	ResultsID *string `json:"results_id,omitempty" doc:"Results ID when analysis completes"`
}

// GetAnalysisStatusResponse represents the current status of an analysis
type GetAnalysisStatusResponse struct {
	Body GetAnalysisStatusResponseBody
}

// GetAnalysisResultsRequest represents a request to get analysis results
type GetAnalysisResultsRequest struct {
	ID string `path:"id" doc:"Analysis ID"`
}

// GetAnalysisResultsResponse represents the complete analysis results
type GetAnalysisResultsResponse struct {
	Body *AnalysisResults
}

// AnalyzeRequest carries a recording for synchronous analysis. The
// Content-Type header selects the decoder.
type AnalyzeRequest struct {
	ContentType string  `header:"Content-Type" doc:"Recording MIME type"`
	LowHz       float64 `query:"low_hz" doc:"Low band target frequency in Hz"`
	MidHz       float64 `query:"mid_hz" doc:"Mid band target frequency in Hz"`
	HighHz      float64 `query:"high_hz" doc:"High band target frequency in Hz"`
	RawBody     []byte  `contentType:"application/octet-stream"`
}

// AnalyzeResponse returns the measurement without persisting it
type AnalyzeResponse struct {
	Body *AnalysisResults
}

// ListSessionAnalysesRequest lists the analyses created by one client session
type ListSessionAnalysesRequest struct {
	SessionID string `path:"session_id" minLength:"10" maxLength:"50" doc:"Client session identifier"`
}

// AnalysisSummary is the public view of an analysis in listings
type AnalysisSummary struct {
	ID          string     `json:"id" doc:"Analysis ID"`
	Status      string     `json:"status" enum:"pending,processing,completed,failed" doc:"Analysis status"`
	Progress    int        `json:"progress" doc:"Analysis progress percentage"`
	MimeType    string     `json:"mime_type" doc:"Recording MIME type"`
	CreatedAt   time.Time  `json:"created_at" doc:"Creation time"`
	CompletedAt *time.Time `json:"completed_at,omitempty" doc:"Completion time"`
}

// ListSessionAnalysesResponse returns the analyses of a session, newest first
type ListSessionAnalysesResponse struct {
	Body struct {
		Analyses []AnalysisSummary `json:"analyses" doc:"Analyses of the session"`
	}
}

// RecordingRequest addresses the recording of one analysis
type RecordingRequest struct {
	ID string `path:"id" doc:"Analysis ID"`
}

// RecordingURLResponse returns a pre-signed download URL for a recording
type RecordingURLResponse struct {
	Body struct {
		DownloadURL string `json:"download_url" doc:"Pre-signed S3 URL for downloading the recording"`
		ExpiresIn   int    `json:"expires_in" doc:"URL expiration time in seconds"`
	}
}

// Analysis represents the core analysis entity (for internal use)
type Analysis struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"session_id"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	MimeType    string     `json:"mime_type"`
	AudioS3Key  *string    `json:"audio_s3_key,omitempty"`
	ErrorMsg    *string    `json:"error_message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// AnalysisResults is the stored reverberation measurement of one recording
type AnalysisResults struct {
	ID                  string       `json:"id" doc:"Results ID"`
	AnalysisID          string       `json:"analysis_id,omitempty" doc:"Analysis ID"`
	DurationSeconds     float64      `json:"duration_seconds" doc:"Recording length in seconds"`
	SampleRate          int          `json:"sample_rate" doc:"Recording sample rate in Hz"`
	ResonantFrequencyHz float64      `json:"resonant_frequency_hz" doc:"Frequency of the loudest spectrogram bin"`
	Bands               []BandResult `json:"bands" doc:"Decay time per band"`
	RT60Difference      *float64     `json:"rt60_difference" doc:"Mean RT60 minus the target, null unless every band was measured"`
	TargetRT60          float64      `json:"target_rt60" doc:"Reference RT60 in seconds"`
	CreatedAt           time.Time    `json:"created_at" doc:"Analysis timestamp"`
}
