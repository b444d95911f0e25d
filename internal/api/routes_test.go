package api

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/RMahshie/rt60/internal/acoustics"
	"github.com/RMahshie/rt60/internal/audio"
	"github.com/RMahshie/rt60/internal/config"
	"github.com/RMahshie/rt60/internal/processing"
	"github.com/RMahshie/rt60/internal/repository"
	"github.com/RMahshie/rt60/internal/testutil"
	"github.com/RMahshie/rt60/pkg/models"
)

func newTestAPI(t *testing.T) (humatest.TestAPI, *testutil.MockAnalysisRepository, *testutil.MockS3Service) {
	t.Helper()

	_, api := humatest.New(t)
	repo := &testutil.MockAnalysisRepository{}
	s3 := &testutil.MockS3Service{}
	svc := processing.NewProcessingService(s3, repo, audio.DefaultRegistry(),
		config.AnalysisConfig{Bands: acoustics.DefaultBands(), TargetRT60: acoustics.DefaultTargetRT60})

	RegisterRoutes(api, s3, repo, svc, acoustics.DefaultBands())
	return api, repo, s3
}

func TestAnalyzeEndpoint(t *testing.T) {
	api, _, _ := newTestAPI(t)
	rate := 44100
	wavData := testutil.EncodeWAV(t, rate, testutil.DecayingTone(rate, 1000, 30, 2))

	resp := api.Post("/api/analyze", "Content-Type: audio/wav", bytes.NewReader(wavData))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"band":"low"`)
	assert.Contains(t, resp.Body.String(), `"rt60_difference"`)

	resp = api.Post("/api/analyze", "Content-Type: audio/wav", bytes.NewReader([]byte("not audio")))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = api.Post("/api/analyze", "Content-Type: audio/flac", bytes.NewReader(wavData))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.Code)

	eightBit := testutil.EncodePCM(t, 8000, 8, make([]int, 2000))
	resp = api.Post("/api/analyze", "Content-Type: audio/wav", bytes.NewReader(eightBit))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestStatusEndpoint(t *testing.T) {
	api, repo, _ := newTestAPI(t)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&models.Analysis{ID: id.String(), Status: models.StatusPending}, nil)
	missing := uuid.New()
	repo.On("GetByID", mock.Anything, missing).Return(nil, repository.ErrNotFound)

	resp := api.Get("/api/analyses/" + id.String() + "/status")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"pending"`)

	resp = api.Get("/api/analyses/" + missing.String() + "/status")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Get("/api/analyses/not-a-uuid/status")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateAnalysisValidation(t *testing.T) {
	api, _, _ := newTestAPI(t)

	resp := api.Post("/api/analyses", map[string]any{
		"session_id": "test-session-123",
		"file_size":  5000,
		"mime_type":  "audio/flac",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestSessionAnalysesEndpoint(t *testing.T) {
	api, repo, _ := newTestAPI(t)
	session := "test-session-123"
	repo.On("GetBySessionID", mock.Anything, session).Return([]*models.Analysis{
		{ID: uuid.NewString(), SessionID: session, Status: models.StatusCompleted, MimeType: "audio/wav"},
	}, nil)

	resp := api.Get("/api/sessions/" + session + "/analyses")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"completed"`)
	assert.NotContains(t, resp.Body.String(), "audio_s3_key")

	resp = api.Get("/api/sessions/short/analyses")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestDeleteRecordingEndpoint(t *testing.T) {
	api, repo, s3 := newTestAPI(t)
	id := uuid.New()
	key := "recordings/" + id.String()
	repo.On("GetByID", mock.Anything, id).Return(&models.Analysis{ID: id.String(), Status: models.StatusCompleted, AudioS3Key: &key}, nil)
	s3.On("DeleteFile", mock.Anything, key).Return(nil)

	resp := api.Delete("/api/analyses/" + id.String() + "/recording")
	assert.Equal(t, http.StatusNoContent, resp.Code)
	s3.AssertExpectations(t)
}
