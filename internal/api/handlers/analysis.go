package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/rt60/internal/acoustics"
	"github.com/RMahshie/rt60/internal/audio"
	"github.com/RMahshie/rt60/internal/processing"
	"github.com/RMahshie/rt60/internal/repository"
	"github.com/RMahshie/rt60/internal/storage"
	"github.com/RMahshie/rt60/pkg/models"
)

// Upload limits in bytes
const (
	MinUploadSize = 1000
	MaxUploadSize = 50 * 1024 * 1024
)

// Pre-signed URL lifetimes, matching the storage service
const (
	uploadURLExpiry   = 15 * time.Minute
	downloadURLExpiry = 24 * time.Hour
)

// AnalysisHandler handles analysis-related HTTP requests
type AnalysisHandler struct {
	repo          repository.AnalysisRepository
	s3Service     storage.S3Service
	processingSvc processing.ProcessingService
	defaultBands  acoustics.BandConfig
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(repo repository.AnalysisRepository, s3Service storage.S3Service, processingSvc processing.ProcessingService, defaultBands acoustics.BandConfig) *AnalysisHandler {
	return &AnalysisHandler{
		repo:          repo,
		s3Service:     s3Service,
		processingSvc: processingSvc,
		defaultBands:  defaultBands,
	}
}

// CreateAnalysis creates a new analysis and returns an upload URL
func (h *AnalysisHandler) CreateAnalysis(ctx context.Context, req *models.CreateAnalysisRequest) (*models.CreateAnalysisResponse, error) {
	if req.Body.FileSize < MinUploadSize {
		return nil, huma.Error400BadRequest("Recording too short. Please ensure microphone is working.", nil)
	}
	if req.Body.FileSize > MaxUploadSize {
		return nil, huma.Error400BadRequest("Recording too large. Please try a shorter recording.", nil)
	}

	analysisID := uuid.New()
	audioKey := fmt.Sprintf("recordings/%s", analysisID)
	logger := log.With().Str("analysisID", analysisID.String()).Logger()

	uploadURL, err := h.s3Service.GenerateUploadURL(ctx, audioKey, req.Body.MimeType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedContentType) {
			return nil, huma.Error400BadRequest("Recording format not supported. Please try again.", err)
		}
		return nil, huma.Error400BadRequest("Failed to prepare upload. Please try again.", err)
	}

	now := time.Now()
	analysis := &models.Analysis{
		ID:         analysisID.String(),
		SessionID:  req.Body.SessionID,
		Status:     models.StatusPending,
		MimeType:   req.Body.MimeType,
		AudioS3Key: &audioKey,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.repo.Create(ctx, analysis); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create analysis", err)
	}

	logger.Info().
		Str("sessionID", req.Body.SessionID).
		Str("mimeType", req.Body.MimeType).
		Int64("fileSize", req.Body.FileSize).
		Msg("Analysis created, returning upload URL")

	return &models.CreateAnalysisResponse{
		Body: models.CreateAnalysisResponseBody{
			ID:        analysis.ID,
			UploadURL: uploadURL,
			ExpiresIn: int(uploadURLExpiry.Seconds()),
		},
	}, nil
}

// SetBands stores a band override for an analysis that has not started
func (h *AnalysisHandler) SetBands(ctx context.Context, req *models.SetBandsRequest) (*models.SetBandsResponse, error) {
	analysisID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid analysis ID", err)
	}

	bands := acoustics.BandConfig{Low: req.Body.LowHz, Mid: req.Body.MidHz, High: req.Body.HighHz}
	if err := bands.Validate(); err != nil {
		return nil, huma.Error400BadRequest("Invalid band frequencies", err)
	}

	analysis, err := h.repo.GetByID(ctx, analysisID)
	if err != nil {
		return nil, notFoundOr500("Analysis not found", err)
	}
	if analysis.Status != models.StatusPending {
		return nil, huma.Error409Conflict("Bands can only be changed before processing starts",
			fmt.Errorf("analysis status is %s", analysis.Status))
	}

	cfg := &models.BandConfig{
		ID:         uuid.New().String(),
		AnalysisID: analysis.ID,
		LowHz:      bands.Low,
		MidHz:      bands.Mid,
		HighHz:     bands.High,
		CreatedAt:  time.Now(),
	}
	if err := h.repo.CreateBandConfig(ctx, cfg); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save band configuration", err)
	}

	log.Info().Str("analysisID", analysis.ID).
		Float64("lowHz", cfg.LowHz).Float64("midHz", cfg.MidHz).Float64("highHz", cfg.HighHz).
		Msg("Band configuration stored")

	return &models.SetBandsResponse{Body: cfg}, nil
}

// StartProcessing starts processing an uploaded file
func (h *AnalysisHandler) StartProcessing(ctx context.Context, req *models.StartProcessingRequest) (*models.StartProcessingResponse, error) {
	analysisID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid analysis ID", err)
	}

	// Only one concurrent request can win the claim
	if err := h.repo.ClaimForProcessing(ctx, analysisID); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, huma.Error409Conflict("Analysis already processed", err)
		}
		return nil, notFoundOr500("Analysis not found", err)
	}

	log.Info().Str("analysisID", analysisID.String()).Msg("Starting background processing")
	go func() {
		if err := h.processingSvc.ProcessAnalysis(context.Background(), analysisID); err != nil {
			log.Error().Err(err).Str("analysisID", analysisID.String()).Msg("Processing failed")
			if err := h.repo.UpdateError(context.Background(), analysisID, "Processing failed. Please try again."); err != nil {
				log.Error().Err(err).Str("analysisID", analysisID.String()).Msg("Failed to record processing failure")
			}
		}
	}()

	resp := &models.StartProcessingResponse{}
	resp.Body.Message = "Processing started successfully"
	return resp, nil
}

// GetAnalysisStatus returns the current status of an analysis
func (h *AnalysisHandler) GetAnalysisStatus(ctx context.Context, req *models.GetAnalysisStatusRequest) (*models.GetAnalysisStatusResponse, error) {
	analysisID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid analysis ID", err)
	}

	analysis, err := h.repo.GetByID(ctx, analysisID)
	if err != nil {
		return nil, notFoundOr500("Analysis not found", err)
	}

	var resultsID *string
	if analysis.Status == models.StatusCompleted {
		if results, err := h.repo.GetResults(ctx, analysisID); err == nil {
			resultsID = &results.ID
		}
	}

	return &models.GetAnalysisStatusResponse{
		Body: models.GetAnalysisStatusResponseBody{
			ID:        analysis.ID,
			Status:    analysis.Status,
			Progress:  analysis.Progress,
			Message:   statusMessage(analysis),
			ResultsID: resultsID,
		},
	}, nil
}

// GetAnalysisResults returns the analysis results
func (h *AnalysisHandler) GetAnalysisResults(ctx context.Context, req *models.GetAnalysisResultsRequest) (*models.GetAnalysisResultsResponse, error) {
	analysisID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid analysis ID", err)
	}

	analysis, err := h.repo.GetByID(ctx, analysisID)
	if err != nil {
		return nil, notFoundOr500("Analysis not found", err)
	}
	if analysis.Status != models.StatusCompleted {
		return nil, huma.Error409Conflict("Analysis not yet completed",
			fmt.Errorf("analysis status is %s", analysis.Status))
	}

	results, err := h.repo.GetResults(ctx, analysisID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to get results", err)
	}

	return &models.GetAnalysisResultsResponse{Body: results}, nil
}

// ListSessionAnalyses returns every analysis of a client session
func (h *AnalysisHandler) ListSessionAnalyses(ctx context.Context, req *models.ListSessionAnalysesRequest) (*models.ListSessionAnalysesResponse, error) {
	analyses, err := h.repo.GetBySessionID(ctx, req.SessionID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list analyses", err)
	}

	resp := &models.ListSessionAnalysesResponse{}
	resp.Body.Analyses = make([]models.AnalysisSummary, 0, len(analyses))
	for _, a := range analyses {
		resp.Body.Analyses = append(resp.Body.Analyses, models.AnalysisSummary{
			ID:          a.ID,
			Status:      a.Status,
			Progress:    a.Progress,
			MimeType:    a.MimeType,
			CreatedAt:   a.CreatedAt,
			CompletedAt: a.CompletedAt,
		})
	}
	return resp, nil
}

// GetRecordingURL returns a download URL for the uploaded recording
func (h *AnalysisHandler) GetRecordingURL(ctx context.Context, req *models.RecordingRequest) (*models.RecordingURLResponse, error) {
	analysis, err := h.recordingOf(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	url, err := h.s3Service.GenerateDownloadURL(ctx, *analysis.AudioS3Key)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to prepare download", err)
	}

	resp := &models.RecordingURLResponse{}
	resp.Body.DownloadURL = url
	resp.Body.ExpiresIn = int(downloadURLExpiry.Seconds())
	return resp, nil
}

// DeleteRecording removes the uploaded recording. Stored results are kept.
func (h *AnalysisHandler) DeleteRecording(ctx context.Context, req *models.RecordingRequest) (*struct{}, error) {
	analysis, err := h.recordingOf(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if analysis.Status == models.StatusProcessing {
		return nil, huma.Error409Conflict("Recording is being processed",
			fmt.Errorf("analysis status is %s", analysis.Status))
	}

	if err := h.s3Service.DeleteFile(ctx, *analysis.AudioS3Key); err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete recording", err)
	}

	log.Info().Str("analysisID", analysis.ID).Str("key", *analysis.AudioS3Key).Msg("Recording deleted")
	return nil, nil
}

// recordingOf loads an analysis that has a recording key
func (h *AnalysisHandler) recordingOf(ctx context.Context, id string) (*models.Analysis, error) {
	analysisID, err := uuid.Parse(id)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid analysis ID", err)
	}

	analysis, err := h.repo.GetByID(ctx, analysisID)
	if err != nil {
		return nil, notFoundOr500("Analysis not found", err)
	}
	if analysis.AudioS3Key == nil || *analysis.AudioS3Key == "" {
		return nil, huma.Error404NotFound("No recording for this analysis")
	}
	return analysis, nil
}

// Analyze measures an uploaded recording synchronously without storing it
func (h *AnalysisHandler) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if len(req.RawBody) == 0 {
		return nil, huma.Error422UnprocessableEntity("Request body is empty. Upload the recording as the body.")
	}
	if len(req.RawBody) > MaxUploadSize {
		return nil, huma.Error400BadRequest("Recording too large. Please try a shorter recording.", nil)
	}

	bands := h.defaultBands
	if req.LowHz != 0 {
		bands.Low = req.LowHz
	}
	if req.MidHz != 0 {
		bands.Mid = req.MidHz
	}
	if req.HighHz != 0 {
		bands.High = req.HighHz
	}

	results, err := h.processingSvc.AnalyzeRecording(ctx, req.ContentType, req.RawBody, bands)
	if err != nil {
		msg := processing.FailureMessage(err)
		switch {
		case errors.Is(err, audio.ErrUnsupportedFormat):
			return nil, huma.Error415UnsupportedMediaType(msg, err)
		case errors.Is(err, acoustics.ErrInvalidBand):
			return nil, huma.Error400BadRequest(msg, err)
		case errors.Is(err, audio.ErrDecode), errors.Is(err, acoustics.ErrEmptySignal),
			errors.Is(err, acoustics.ErrNonFiniteSample), errors.Is(err, acoustics.ErrInvalidSampleRate):
			return nil, huma.Error422UnprocessableEntity(msg, err)
		default:
			return nil, huma.Error500InternalServerError(msg, err)
		}
	}

	log.Info().Str("contentType", req.ContentType).Int("bytes", len(req.RawBody)).
		Float64("resonantHz", results.ResonantFrequencyHz).Msg("Synchronous analysis completed")

	return &models.AnalyzeResponse{Body: results}, nil
}

func notFoundOr500(msg string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return huma.Error404NotFound(msg, err)
	}
	return huma.Error500InternalServerError("Failed to load analysis", err)
}

// statusMessage creates a human-readable status message
func statusMessage(a *models.Analysis) string {
	switch a.Status {
	case models.StatusPending:
		return "Waiting for the recording upload..."
	case models.StatusProcessing:
		switch {
		case a.Progress < 20:
			return "Starting analysis..."
		case a.Progress < 40:
			return "Downloading recording..."
		case a.Progress < 60:
			return "Decoding recording..."
		case a.Progress < 80:
			return "Measuring reverberation..."
		default:
			return "Saving results..."
		}
	case models.StatusCompleted:
		return "Analysis complete!"
	case models.StatusFailed:
		if a.ErrorMsg != nil && *a.ErrorMsg != "" {
			return *a.ErrorMsg
		}
		return "Analysis failed. Please try again."
	default:
		return "Unknown status"
	}
}
