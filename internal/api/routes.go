package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/RMahshie/rt60/internal/acoustics"
	"github.com/RMahshie/rt60/internal/api/handlers"
	"github.com/RMahshie/rt60/internal/processing"
	"github.com/RMahshie/rt60/internal/repository"
	"github.com/RMahshie/rt60/internal/storage"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, s3Service storage.S3Service, analysisRepo repository.AnalysisRepository, processingSvc processing.ProcessingService, defaultBands acoustics.BandConfig) {
	analysisHandler := handlers.NewAnalysisHandler(analysisRepo, s3Service, processingSvc, defaultBands)

	huma.Register(api, huma.Operation{
		OperationID: "createAnalysis",
		Method:      http.MethodPost,
		Path:        "/api/analyses",
		Summary:     "Create a new analysis",
		Description: "Creates a new analysis record and returns an upload URL for the recording",
		Tags:        []string{"Analysis"},
	}, analysisHandler.CreateAnalysis)

	huma.Register(api, huma.Operation{
		OperationID: "setAnalysisBands",
		Method:      http.MethodPost,
		Path:        "/api/analyses/{id}/bands",
		Summary:     "Override band frequencies",
		Description: "Sets the low, mid and high target frequencies measured for this analysis",
		Tags:        []string{"Analysis"},
	}, analysisHandler.SetBands)

	huma.Register(api, huma.Operation{
		OperationID:   "startProcessing",
		Method:        http.MethodPost,
		Path:          "/api/analyses/{id}/process",
		Summary:       "Start processing analysis",
		Description:   "Starts measuring the uploaded recording in the background",
		Tags:          []string{"Analysis"},
		DefaultStatus: http.StatusAccepted,
	}, analysisHandler.StartProcessing)

	huma.Register(api, huma.Operation{
		OperationID: "getAnalysisStatus",
		Method:      http.MethodGet,
		Path:        "/api/analyses/{id}/status",
		Summary:     "Get analysis status",
		Description: "Returns the current status and progress of an analysis",
		Tags:        []string{"Analysis"},
	}, analysisHandler.GetAnalysisStatus)

	huma.Register(api, huma.Operation{
		OperationID: "getAnalysisResults",
		Method:      http.MethodGet,
		Path:        "/api/analyses/{id}/results",
		Summary:     "Get analysis results",
		Description: "Returns the duration, resonant frequency and RT60 of every band",
		Tags:        []string{"Analysis"},
	}, analysisHandler.GetAnalysisResults)

	huma.Register(api, huma.Operation{
		OperationID: "getRecordingURL",
		Method:      http.MethodGet,
		Path:        "/api/analyses/{id}/recording",
		Summary:     "Get recording download URL",
		Description: "Returns a pre-signed URL for downloading the uploaded recording",
		Tags:        []string{"Analysis"},
	}, analysisHandler.GetRecordingURL)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteRecording",
		Method:        http.MethodDelete,
		Path:          "/api/analyses/{id}/recording",
		Summary:       "Delete recording",
		Description:   "Deletes the uploaded recording. Measured results are kept.",
		Tags:          []string{"Analysis"},
		DefaultStatus: http.StatusNoContent,
	}, analysisHandler.DeleteRecording)

	huma.Register(api, huma.Operation{
		OperationID: "listSessionAnalyses",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{session_id}/analyses",
		Summary:     "List session analyses",
		Description: "Returns the analyses created by a client session, newest first",
		Tags:        []string{"Analysis"},
	}, analysisHandler.ListSessionAnalyses)

	huma.Register(api, huma.Operation{
		OperationID:  "analyzeRecording",
		Method:       http.MethodPost,
		Path:         "/api/analyze",
		Summary:      "Analyze a recording",
		Description:  "Measures a recording sent as the request body without storing it. The Content-Type header selects the decoder.",
		Tags:         []string{"Analysis"},
		MaxBodyBytes: handlers.MaxUploadSize,
	}, analysisHandler.Analyze)
}
