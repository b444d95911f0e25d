package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/RMahshie/rt60/pkg/models"
)

// ErrNotFound is returned when no row matches the lookup
var ErrNotFound = errors.New("repository: not found")

// ErrStatusConflict is returned when the analysis is not in a state that
// allows the requested transition
var ErrStatusConflict = errors.New("repository: analysis status conflict")

// AnalysisRepository defines the interface for analysis data operations
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *models.Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]*models.Analysis, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	ClaimForProcessing(ctx context.Context, id uuid.UUID) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	StoreResults(ctx context.Context, results *models.AnalysisResults) error
	GetResults(ctx context.Context, analysisID uuid.UUID) (*models.AnalysisResults, error)
	BandConfigRepository
}

// BandConfigRepository defines the interface for per-analysis band overrides
type BandConfigRepository interface {
	CreateBandConfig(ctx context.Context, cfg *models.BandConfig) error
	GetBandConfig(ctx context.Context, analysisID uuid.UUID) (*models.BandConfig, error)
}
