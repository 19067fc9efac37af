// Package chi is the HTTP transport: routing, request decoding, error
// mapping and response encoding.
package chi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kino-labs/cinerank/internal/domain"
	"github.com/kino-labs/cinerank/internal/domain/rank"
	healthuc "github.com/kino-labs/cinerank/internal/usecase/health"
	libraryuc "github.com/kino-labs/cinerank/internal/usecase/library"
	recommenduc "github.com/kino-labs/cinerank/internal/usecase/recommend"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the use case services behind the HTTP API.
type Server struct {
	recommend     *recommenduc.Service
	library       *libraryuc.Service
	health        *healthuc.Service
	limits        rank.Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. limits carries the configured
// top-k bounds; the zero value uses the domain defaults.
func NewServer(
	recommend *recommenduc.Service,
	library *libraryuc.Service,
	health *healthuc.Service,
	limits rank.Limits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		library:   library,
		health:    health,
		limits:    limits,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrTitleNotFound, http.StatusNotFound, CodeTitleNotFound),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, CodeCatalogUnavailable),
	}
	return s
}

// Routes mounts every endpoint on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/recommend", s.Recommend)
		r.Get("/titles/{id}", s.TitleByID)
		r.Get("/filters", s.Filters)
		r.Get("/stats", s.Stats)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Recommend handles POST /api/v1/recommend.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	crit, err := criteriaFromDTO(req.Filters)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	rankReq, err := rank.NewRequest(req.Query, req.TopK, crit, s.limits)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	outcome, err := s.recommend.Recommend(r.Context(), &rankReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendResponse{
		OriginalQuery:   req.Query,
		EnhancedQuery:   outcome.EnhancedQuery,
		FiltersApplied:  criteriaToDTO(outcome.Applied),
		Recommendations: recommendationsToDTO(outcome.Results),
	})
}

// TitleByID handles GET /api/v1/titles/{id}.
func (s *Server) TitleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "title id must be an integer")
		return
	}

	t, err := s.library.Title(id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, titleToDTO(t))
}

// Filters handles GET /api/v1/filters.
func (s *Server) Filters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, filtersToDTO(s.library.FilterValues()))
}

// Stats handles GET /api/v1/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsToDTO(s.library.Stats()))
}

// HealthCheck handles GET /health. A degraded cache still serves
// traffic, so only a failed catalog turns the endpoint unhealthy.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.StatusFailed {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthToDTO(report))
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

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrInvalidRequest,
		domain.ErrTitleNotFound,
		domain.ErrCatalogUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
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

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
