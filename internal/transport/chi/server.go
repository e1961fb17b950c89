package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
	retrievaluc "github.com/kailas-cloud/docsearch/internal/usecase/retrieval"
	"github.com/kailas-cloud/docsearch/internal/version"
)

// Error response codes exposed to clients.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeEmbeddingProvider = "embedding_provider_error"
	codeIndexUnavailable  = "index_unavailable"
	codeInternalError     = "internal_error"
)

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Question string `json:"question"`
}

// SearchResponse carries the formatted text block back to the caller.
type SearchResponse struct {
	Question string `json:"question"`
	Result   string `json:"result"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the retrieval pipeline over HTTP.
type Server struct {
	search        *retrievaluc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *retrievaluc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuestion, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProvider),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusBadGateway, codeIndexUnavailable),
		storeErrorHandler,
	}
	return s
}

// Mount registers all routes on the given router.
func (s *Server) Mount(r chi.Router) {
	r.Post("/api/v1/search", s.SearchDocuments)
	r.Get("/health", s.HealthCheck)
	r.Get("/version", s.Version)
	r.Get("/metrics", s.Metrics)
}

// SearchDocuments handles POST /api/v1/search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Question is required")
		return
	}

	result, err := s.search.PerformSearch(r.Context(), req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Question: req.Question,
		Result:   result,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Version handles GET /version.
func (s *Server) Version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuestion,
		domain.ErrEmbeddingProviderError,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	var storeErr *db.Error
	if errors.As(err, &storeErr) {
		return "search index unavailable"
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// storeErrorHandler maps raw index store failures to 502. A transport
// outage must surface as an error, never as an empty search result.
func storeErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	var storeErr *db.Error
	if !errors.As(err, &storeErr) {
		return false
	}
	writeError(w, http.StatusBadGateway, codeIndexUnavailable, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
