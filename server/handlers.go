package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"musicmanager/cache"
	"musicmanager/config"
	"musicmanager/errs"
	"musicmanager/logger"
	"musicmanager/repository"
	"musicmanager/storage"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// APIHandler holds the dependencies of the REST API.
type APIHandler struct {
	projectRepo repository.ProjectRepository
	beatRepo    repository.BeatRepository
	media       *storage.MediaStore
	cache       *cache.CatalogCache
	cfg         *config.Config
	ready       func() bool
}

// NewAPIHandler creates the API handler. ready reports whether the
// store connection has been established; media and catalog cache may be
// nil when those backends are unavailable.
func NewAPIHandler(
	projectRepo repository.ProjectRepository,
	beatRepo repository.BeatRepository,
	media *storage.MediaStore,
	catalogCache *cache.CatalogCache,
	cfg *config.Config,
	ready func() bool,
) *APIHandler {
	return &APIHandler{
		projectRepo: projectRepo,
		beatRepo:    beatRepo,
		media:       media,
		cache:       catalogCache,
		cfg:         cfg,
		ready:       ready,
	}
}

// Router builds the /api route table. Static and UI serving are wired
// separately in Start.
func (h *APIHandler) Router() *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.Use(h.readinessMiddleware)

	api.HandleFunc("/projects", h.GetProjectsHandler).Methods(http.MethodGet)
	api.HandleFunc("/projects", h.CreateProjectHandler).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}", h.UpdateProjectHandler).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id}", h.DeleteProjectHandler).Methods(http.MethodDelete)

	api.HandleFunc("/projects/{projectId}/songs", h.AddSongHandler).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectId}/songs/{songId}", h.UpdateSongHandler).Methods(http.MethodPut)
	api.HandleFunc("/projects/{projectId}/songs/{songId}", h.DeleteSongHandler).Methods(http.MethodDelete)

	api.HandleFunc("/beats", h.GetBeatsHandler).Methods(http.MethodGet)
	api.HandleFunc("/beats", h.CreateBeatHandler).Methods(http.MethodPost)
	api.HandleFunc("/beats/{id}", h.UpdateBeatHandler).Methods(http.MethodPut)
	api.HandleFunc("/beats/{id}", h.DeleteBeatHandler).Methods(http.MethodDelete)

	api.HandleFunc("/media/upload", h.UploadMediaHandler).Methods(http.MethodPost)

	router.PathPrefix("/static/").HandlerFunc(h.StaticMediaHandler).Methods(http.MethodGet)

	return router
}

// readinessMiddleware rejects API requests with 503 until the store
// connection has been established.
func (h *APIHandler) readinessMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.ready != nil && !h.ready() {
			writeError(w, http.StatusServiceUnavailable, "Database not connected")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("failed to encode response", logger.ErrorField(err))
		}
	}
}

// writeRawJSON writes an already-serialized JSON payload.
func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		logger.Error("failed to write response", logger.ErrorField(err))
	}
}

// writeError writes an error payload in the shape the frontend expects.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// respondError maps a repository error onto a status code. Uncoded
// errors are logged and surface as a generic 500.
func respondError(w http.ResponseWriter, err error) {
	switch errs.CodeOf(err) {
	case errs.CodeValidation:
		writeError(w, http.StatusBadRequest, errs.MessageOf(err))
	case errs.CodeNotFound:
		writeError(w, http.StatusNotFound, errs.MessageOf(err))
	case errs.CodeUnavailable:
		writeError(w, http.StatusServiceUnavailable, errs.MessageOf(err))
	default:
		logger.Error("request failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// pathID parses a numeric path variable. A non-numeric id names a
// record that cannot exist, so callers treat the error as not-found.
func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[key], 10, 64)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// requestLogMiddleware tags each request with an id and logs its outcome.
func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.Info("request handled",
			logger.String("requestId", requestID),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", rec.status),
			logger.Duration("elapsed", time.Since(start)),
		)
	})
}

// corsMiddleware allows the frontend dev server to talk to the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
