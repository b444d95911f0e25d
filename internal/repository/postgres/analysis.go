package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/RMahshie/rt60/internal/repository"
	"github.com/RMahshie/rt60/pkg/models"
)

// PostgresAnalysisRepository implements AnalysisRepository for PostgreSQL
type PostgresAnalysisRepository struct {
	db *sql.DB
}

// NewPostgresAnalysisRepository creates a new PostgreSQL analysis repository
func NewPostgresAnalysisRepository(db *sql.DB) repository.AnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

const analysisColumns = `id, session_id, status, progress, mime_type, audio_s3_key, error_message, created_at, updated_at, completed_at`

// Create inserts a new analysis record
func (r *PostgresAnalysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	query := `
		INSERT INTO analyses (id, session_id, status, progress, mime_type, audio_s3_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		analysis.ID,
		analysis.SessionID,
		analysis.Status,
		analysis.Progress,
		analysis.MimeType,
		analysis.AudioS3Key,
		analysis.CreatedAt,
		analysis.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// GetByID retrieves an analysis by ID
func (r *PostgresAnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE id = $1`

	analysis, err := scanAnalysis(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return analysis, nil
}

// GetBySessionID retrieves analyses by session ID, newest first
func (r *PostgresAnalysisRepository) GetBySessionID(ctx context.Context, sessionID string) ([]*models.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE session_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*models.Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}

	return analyses, rows.Err()
}

// UpdateStatus updates the status and progress of an analysis
func (r *PostgresAnalysisRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE analyses
		SET status = $1::varchar, progress = $2, updated_at = NOW(),
		    completed_at = CASE WHEN $1::varchar = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $3`

	return r.execOne(ctx, id, query, status, progress, id)
}

// ClaimForProcessing moves a pending or failed analysis to processing in a
// single statement, so only one caller can win. It returns ErrStatusConflict
// when the analysis is already processing or completed.
func (r *PostgresAnalysisRepository) ClaimForProcessing(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE analyses
		SET status = 'processing', progress = 0, error_message = NULL, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'failed')`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM analyses WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("analysis %s: %w", id, repository.ErrNotFound)
	}
	return fmt.Errorf("analysis %s: %w", id, repository.ErrStatusConflict)
}

// UpdateError marks an analysis as failed with a user-facing message
func (r *PostgresAnalysisRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE analyses
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	return r.execOne(ctx, id, query, errorMsg, id)
}

// StoreResults stores analysis results
func (r *PostgresAnalysisRepository) StoreResults(ctx context.Context, results *models.AnalysisResults) error {
	bands, err := json.Marshal(results.Bands)
	if err != nil {
		return fmt.Errorf("failed to marshal bands: %w", err)
	}

	query := `
		INSERT INTO analysis_results (id, analysis_id, duration_seconds, sample_rate, resonant_frequency_hz, bands, rt60_difference, target_rt60, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		results.ID,
		results.AnalysisID,
		results.DurationSeconds,
		results.SampleRate,
		results.ResonantFrequencyHz,
		string(bands),
		results.RT60Difference,
		results.TargetRT60,
		results.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert results: %w", err)
	}

	return nil
}

// GetResults retrieves analysis results
func (r *PostgresAnalysisRepository) GetResults(ctx context.Context, analysisID uuid.UUID) (*models.AnalysisResults, error) {
	query := `
		SELECT id, analysis_id, duration_seconds, sample_rate, resonant_frequency_hz, bands, rt60_difference, target_rt60, created_at
		FROM analysis_results
		WHERE analysis_id = $1`

	var results models.AnalysisResults
	var bands []byte
	var diff sql.NullFloat64

	err := r.db.QueryRowContext(ctx, query, analysisID).Scan(
		&results.ID,
		&results.AnalysisID,
		&results.DurationSeconds,
		&results.SampleRate,
		&results.ResonantFrequencyHz,
		&bands,
		&diff,
		&results.TargetRT60,
		&results.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("results for %s: %w", analysisID, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(bands, &results.Bands); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bands: %w", err)
	}
	if diff.Valid {
		results.RT60Difference = &diff.Float64
	}

	return &results, nil
}

// CreateBandConfig stores the band override of an analysis, replacing any earlier one
func (r *PostgresAnalysisRepository) CreateBandConfig(ctx context.Context, cfg *models.BandConfig) error {
	query := `
		INSERT INTO band_configs (id, analysis_id, low_hz, mid_hz, high_hz, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (analysis_id) DO UPDATE
		SET low_hz = EXCLUDED.low_hz, mid_hz = EXCLUDED.mid_hz, high_hz = EXCLUDED.high_hz`

	_, err := r.db.ExecContext(ctx, query,
		cfg.ID,
		cfg.AnalysisID,
		cfg.LowHz,
		cfg.MidHz,
		cfg.HighHz,
		cfg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store band config: %w", err)
	}

	return nil
}

// GetBandConfig retrieves the band override of an analysis
func (r *PostgresAnalysisRepository) GetBandConfig(ctx context.Context, analysisID uuid.UUID) (*models.BandConfig, error) {
	query := `
		SELECT id, analysis_id, low_hz, mid_hz, high_hz, created_at
		FROM band_configs
		WHERE analysis_id = $1`

	var cfg models.BandConfig
	err := r.db.QueryRowContext(ctx, query, analysisID).Scan(
		&cfg.ID,
		&cfg.AnalysisID,
		&cfg.LowHz,
		&cfg.MidHz,
		&cfg.HighHz,
		&cfg.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("band config for %s: %w", analysisID, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*models.Analysis, error) {
	var analysis models.Analysis
	var audioS3Key, errorMsg sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&analysis.ID,
		&analysis.SessionID,
		&analysis.Status,
		&analysis.Progress,
		&analysis.MimeType,
		&audioS3Key,
		&errorMsg,
		&analysis.CreatedAt,
		&analysis.UpdatedAt,
		&completedAt)
	if err != nil {
		return nil, err
	}

	if audioS3Key.Valid {
		analysis.AudioS3Key = &audioS3Key.String
	}
	if errorMsg.Valid {
		analysis.ErrorMsg = &errorMsg.String
	}
	if completedAt.Valid {
		analysis.CompletedAt = &completedAt.Time
	}

	return &analysis, nil
}

// execOne runs an update that must touch exactly one analysis
func (r *PostgresAnalysisRepository) execOne(ctx context.Context, id uuid.UUID, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("analysis %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
