package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/domain"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	"github.com/kailas-cloud/regexboard/internal/domain/mode"
	logpkg "github.com/kailas-cloud/regexboard/internal/logger"
	dashboarduc "github.com/kailas-cloud/regexboard/internal/usecase/dashboard"
	healthuc "github.com/kailas-cloud/regexboard/internal/usecase/health"
	patternuc "github.com/kailas-cloud/regexboard/internal/usecase/pattern"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the JSON API.
type Server struct {
	dashboard     *dashboarduc.Service
	patterns      *patternuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// ViewParams are the query parameters of GET /api/v1/view.
type ViewParams struct {
	Mode    *string
	Pattern *string
}

// NewServer creates an HTTP API server.
func NewServer(
	dashboard *dashboarduc.Service,
	patterns *patternuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		dashboard: dashboard,
		patterns:  patterns,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidPattern, http.StatusBadRequest,
			ErrorCodeValidationFailed, domain.InvalidPatternMessage),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodePatternNotFound, "pattern not found"),
		sentinelHandler(domain.ErrInvalidMode, http.StatusBadRequest,
			ErrorCodeInvalidMode, `mode must be "edit" or "approval"`),
	}
	return s
}

// Routes registers all endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/patterns", s.ListPatterns)
		r.Post("/patterns", s.CreatePattern)
		r.Put("/patterns/{id}", s.UpdatePattern)
		r.Delete("/patterns/{id}", s.DeletePattern)
		r.Get("/document", s.GetDocument)
		r.Post("/document/regenerate", s.RegenerateDocument)
		r.Get("/matches", s.ListMatches)
		r.Post("/matches/approve", s.ApproveMatch)
		r.Post("/matches/recompute", s.RecomputeMatches)
		r.Get("/view", s.GetView)
	})
}

// ListPatterns handles GET /api/v1/patterns.
func (s *Server) ListPatterns(w http.ResponseWriter, r *http.Request) {
	patterns, err := s.patterns.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PatternListResponse{Items: patternsToDTO(patterns)})
}

// CreatePattern handles POST /api/v1/patterns.
func (s *Server) CreatePattern(w http.ResponseWriter, r *http.Request) {
	var req PatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	st, err := s.dashboard.CreatePattern(r.Context(), req.Regex)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stateToDTO(st))
}

// UpdatePattern handles PUT /api/v1/patterns/{id}.
func (s *Server) UpdatePattern(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bindID(w, r)
	if !ok {
		return
	}
	var req PatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	st, err := s.dashboard.UpdatePattern(r.Context(), id, req.Regex)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stateToDTO(st))
}

// DeletePattern handles DELETE /api/v1/patterns/{id}. Unknown IDs succeed.
func (s *Server) DeletePattern(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bindID(w, r)
	if !ok {
		return
	}

	st, err := s.dashboard.DeletePattern(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stateToDTO(st))
}

// GetDocument handles GET /api/v1/document.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	st, err := s.dashboard.State(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToDTO(st.Document))
}

// RegenerateDocument handles POST /api/v1/document/regenerate.
func (s *Server) RegenerateDocument(w http.ResponseWriter, r *http.Request) {
	st, err := s.dashboard.RegenerateDocument(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stateToDTO(st))
}

// ListMatches handles GET /api/v1/matches?pattern=.
func (s *Server) ListMatches(w http.ResponseWriter, r *http.Request) {
	var patternID *string
	if err := runtime.BindQueryParameter("form", true, false, "pattern", r.URL.Query(), &patternID); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid query parameter pattern")
		return
	}

	st, err := s.dashboard.State(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	matches := st.Document.Matches()
	if patternID != nil && *patternID != "" {
		matches = match.ForPattern(matches, *patternID)
	}
	writeJSON(w, http.StatusOK, MatchListResponse{Items: matchesToDTO(matches)})
}

// ApproveMatch handles POST /api/v1/matches/approve.
func (s *Server) ApproveMatch(w http.ResponseWriter, r *http.Request) {
	var req ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.PatternID == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "pattern_id is required")
		return
	}

	matches, err := s.dashboard.Approve(r.Context(), match.Key{PatternID: req.PatternID, Text: req.MatchedText})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MatchListResponse{Items: matchesToDTO(matches)})
}

// RecomputeMatches handles POST /api/v1/matches/recompute.
func (s *Server) RecomputeMatches(w http.ResponseWriter, r *http.Request) {
	st, err := s.dashboard.Recompute(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stateToDTO(st))
}

// GetView handles GET /api/v1/view?mode=&pattern=.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	var params ViewParams
	if err := runtime.BindQueryParameter("form", true, false, "mode", r.URL.Query(), &params.Mode); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid query parameter mode")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "pattern", r.URL.Query(), &params.Pattern); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid query parameter pattern")
		return
	}

	m, err := mode.Parse(deref(params.Mode))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	v, err := s.dashboard.View(r.Context(), m, deref(params.Pattern))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToDTO(v))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) bindID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || id == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid path parameter id")
		return "", false
	}
	return id, true
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The client only ever sees msg, never the wrapped chain.
func sentinelHandler(sentinel error, status int, code ErrorCode, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	var verr *domain.PatternValidationError
	if errors.As(err, &verr) {
		log.Warn("pattern rejected", zap.String("detail", verr.Detail()))
	} else {
		log.Warn("domain error", zap.Error(err))
	}

	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
