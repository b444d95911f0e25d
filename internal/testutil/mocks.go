// Package testutil holds mocks and fixtures shared by package tests.
package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/RMahshie/rt60/pkg/models"
)

// MockAnalysisRepository implements repository.AnalysisRepository for testing
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockAnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Analysis)
	return a, args.Error(1)
}

func (m *MockAnalysisRepository) GetBySessionID(ctx context.Context, sessionID string) ([]*models.Analysis, error) {
	args := m.Called(ctx, sessionID)
	list, _ := args.Get(0).([]*models.Analysis)
	return list, args.Error(1)
}

func (m *MockAnalysisRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	args := m.Called(ctx, id, status, progress)
	return args.Error(0)
}

func (m *MockAnalysisRepository) ClaimForProcessing(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnalysisRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	args := m.Called(ctx, id, errorMsg)
	return args.Error(0)
}

func (m *MockAnalysisRepository) StoreResults(ctx context.Context, results *models.AnalysisResults) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockAnalysisRepository) GetResults(ctx context.Context, analysisID uuid.UUID) (*models.AnalysisResults, error) {
	args := m.Called(ctx, analysisID)
	r, _ := args.Get(0).(*models.AnalysisResults)
	return r, args.Error(1)
}

func (m *MockAnalysisRepository) CreateBandConfig(ctx context.Context, cfg *models.BandConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockAnalysisRepository) GetBandConfig(ctx context.Context, analysisID uuid.UUID) (*models.BandConfig, error) {
	args := m.Called(ctx, analysisID)
	c, _ := args.Get(0).(*models.BandConfig)
	return c, args.Error(1)
}

// MockS3Service implements storage.S3Service for testing
type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockS3Service) UploadFile(ctx context.Context, key string, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)
	return args.Error(0)
}

func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
