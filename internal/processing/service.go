package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/rt60/internal/acoustics"
	"github.com/RMahshie/rt60/internal/audio"
	"github.com/RMahshie/rt60/internal/config"
	"github.com/RMahshie/rt60/internal/repository"
	"github.com/RMahshie/rt60/internal/storage"
	"github.com/RMahshie/rt60/pkg/models"
)

// User-facing failure messages stored on the analysis
const (
	MsgNoRecording       = "No recording was uploaded for this analysis"
	MsgDownloadFailed    = "Failed to download recording"
	MsgUnsupportedFormat = "Recording format is not supported"
	MsgDecodeFailed      = "Recording could not be decoded"
	MsgEmptyRecording    = "Recording contains no audio"
	MsgInvalidRecording  = "Recording contains invalid samples"
	MsgInvalidBands      = "Band configuration is invalid"
	MsgStoreFailed       = "Failed to store results"
)

type ProcessingService interface {
	ProcessAnalysis(ctx context.Context, analysisID uuid.UUID) error
	AnalyzeRecording(ctx context.Context, mimeType string, data []byte, bands acoustics.BandConfig) (*models.AnalysisResults, error)
}

type processingService struct {
	s3         storage.S3Service
	repository repository.AnalysisRepository
	decoders   *audio.Registry
	defaults   config.AnalysisConfig
}

func NewProcessingService(s3Service storage.S3Service, repo repository.AnalysisRepository, decoders *audio.Registry, defaults config.AnalysisConfig) ProcessingService {
	return &processingService{
		s3:         s3Service,
		repository: repo,
		decoders:   decoders,
		defaults:   defaults,
	}
}

// ProcessAnalysis runs the stored recording of an analysis through the
// reverberation analysis. Failures caused by the recording are recorded on
// the analysis and nil is returned; repository failures are returned.
func (s *processingService) ProcessAnalysis(ctx context.Context, analysisID uuid.UUID) error {
	logger := log.With().Str("analysisID", analysisID.String()).Logger()
	started := time.Now()

	// Step 1: Update to processing status
	if err := s.repository.UpdateStatus(ctx, analysisID, models.StatusProcessing, 10); err != nil {
		return err
	}

	// Step 2: Get analysis details
	analysis, err := s.repository.GetByID(ctx, analysisID)
	if err != nil {
		return err
	}
	if analysis.AudioS3Key == nil || *analysis.AudioS3Key == "" {
		return s.fail(ctx, analysisID, MsgNoRecording, errors.New("analysis has no audio key"))
	}

	// Step 3: Download from S3
	if err := s.repository.UpdateStatus(ctx, analysisID, models.StatusProcessing, 20); err != nil {
		return err
	}
	data, err := s.s3.DownloadFile(ctx, *analysis.AudioS3Key)
	if err != nil {
		return s.fail(ctx, analysisID, MsgDownloadFailed, err)
	}
	logger.Info().Int("bytes", len(data)).Msg("Recording downloaded")

	// Step 4: Decode by the uploaded MIME type
	if err := s.repository.UpdateStatus(ctx, analysisID, models.StatusProcessing, 40); err != nil {
		return err
	}
	sig, err := s.decode(analysis.MimeType, data)
	if err != nil {
		return s.fail(ctx, analysisID, FailureMessage(err), err)
	}

	// Step 5: Analyze with the analysis' own bands when it has them
	if err := s.repository.UpdateStatus(ctx, analysisID, models.StatusProcessing, 60); err != nil {
		return err
	}
	bands, err := s.bandsFor(ctx, analysisID)
	if err != nil {
		return err
	}
	res, err := s.newAnalyzer(bands).Analyze(sig)
	if err != nil {
		return s.fail(ctx, analysisID, FailureMessage(err), err)
	}

	// Step 6: Store results
	if err := s.repository.UpdateStatus(ctx, analysisID, models.StatusProcessing, 80); err != nil {
		return err
	}
	results := NewResults(res, sig.SampleRate, s.defaults.TargetRT60)
	results.ID = uuid.New().String()
	results.AnalysisID = analysis.ID
	results.CreatedAt = time.Now()
	if err := s.repository.StoreResults(ctx, results); err != nil {
		_ = s.fail(ctx, analysisID, MsgStoreFailed, err)
		return err
	}

	// Step 7: Mark complete
	if err := s.repository.UpdateStatus(ctx, analysisID, models.StatusCompleted, 100); err != nil {
		return err
	}

	logger.Info().
		Float64("duration", res.Duration).
		Float64("resonant_hz", res.ResonantFrequency).
		Dur("elapsed", time.Since(started)).
		Msg("Analysis completed")
	return nil
}

// AnalyzeRecording decodes and analyzes a recording without persisting it.
func (s *processingService) AnalyzeRecording(ctx context.Context, mimeType string, data []byte, bands acoustics.BandConfig) (*models.AnalysisResults, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sig, err := s.decode(mimeType, data)
	if err != nil {
		return nil, err
	}

	res, err := s.newAnalyzer(bands).Analyze(sig)
	if err != nil {
		return nil, err
	}

	results := NewResults(res, sig.SampleRate, s.defaults.TargetRT60)
	results.ID = uuid.New().String()
	results.CreatedAt = time.Now()
	return results, nil
}

func (s *processingService) decode(mimeType string, data []byte) (acoustics.Signal, error) {
	format, err := audio.FormatForMIME(mimeType)
	if err != nil {
		return acoustics.Signal{}, err
	}
	return s.decoders.Decode(format, bytes.NewReader(data))
}

func (s *processingService) newAnalyzer(bands acoustics.BandConfig) *acoustics.Analyzer {
	return acoustics.NewAnalyzer(
		acoustics.WithBands(bands),
		acoustics.WithTargetRT60(s.defaults.TargetRT60),
		acoustics.WithLogger(log.Logger),
	)
}

// bandsFor returns the band override stored for the analysis, or the defaults
func (s *processingService) bandsFor(ctx context.Context, analysisID uuid.UUID) (acoustics.BandConfig, error) {
	cfg, err := s.repository.GetBandConfig(ctx, analysisID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.defaults.Bands, nil
	}
	if err != nil {
		return acoustics.BandConfig{}, fmt.Errorf("failed to load band config: %w", err)
	}
	return acoustics.BandConfig{Low: cfg.LowHz, Mid: cfg.MidHz, High: cfg.HighHz}, nil
}

// fail records msg on the analysis. The cause is logged, not stored.
func (s *processingService) fail(ctx context.Context, analysisID uuid.UUID, msg string, cause error) error {
	log.Warn().Err(cause).Str("analysisID", analysisID.String()).Str("reason", msg).Msg("Analysis failed")
	if err := s.repository.UpdateError(ctx, analysisID, msg); err != nil {
		return fmt.Errorf("failed to record analysis error: %w", err)
	}
	return nil
}

// FailureMessage maps decode and analysis errors to the message shown to users.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, audio.ErrUnsupportedFormat):
		return MsgUnsupportedFormat
	case errors.Is(err, audio.ErrDecode):
		return MsgDecodeFailed
	case errors.Is(err, acoustics.ErrEmptySignal):
		return MsgEmptyRecording
	case errors.Is(err, acoustics.ErrNonFiniteSample), errors.Is(err, acoustics.ErrInvalidSampleRate):
		return MsgInvalidRecording
	case errors.Is(err, acoustics.ErrInvalidBand):
		return MsgInvalidBands
	default:
		return "Analysis failed. Please try again."
	}
}
