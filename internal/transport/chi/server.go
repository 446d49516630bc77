package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/studentdir/internal/domain"
	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
	"github.com/kailas-cloud/studentdir/internal/logger"
	healthuc "github.com/kailas-cloud/studentdir/internal/usecase/health"
	searchuc "github.com/kailas-cloud/studentdir/internal/usecase/search"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeUnauthorized     = "unauthorized"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeNotLoaded        = "not_loaded"
	codeLoadFailed       = "load_failed"
	codeRateLimited      = "rate_limited"
	codeInternalError    = "internal_error"
)

// Directory is the loader surface the API drives.
type Directory interface {
	State() loadstate.State
	Retry(ctx context.Context) loadstate.State
}

// Searcher derives matches for the loaded directory.
type Searcher interface {
	Query(ctx context.Context, term string) (searchuc.Page, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the studentdir HTTP API.
type Server struct {
	directory     Directory
	search        Searcher
	health        *healthuc.Service
	reloads       *rate.Limiter
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	directory Directory,
	search Searcher,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		directory: directory,
		search:    search,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		notLoadedHandler,
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
	}
	return s
}

// WithReloadLimit caps POST /reload at perMinute requests with the given burst.
// perMinute <= 0 leaves reloads unlimited.
func (s *Server) WithReloadLimit(perMinute, burst int) *Server {
	if perMinute <= 0 {
		s.reloads = nil
		return s
	}
	if burst <= 0 {
		burst = 1
	}
	s.reloads = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
	return s
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stateToDTO(s.directory.State()))
}

// Reload handles POST /reload.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	if s.reloads != nil && !s.reloads.Allow() {
		s.handleDomainError(w, r, domain.ErrRateLimited)
		return
	}

	st := s.directory.Retry(r.Context())
	writeJSON(w, reloadStatus(st), stateToDTO(st))
}

func reloadStatus(st loadstate.State) int {
	switch st.Kind() {
	case loadstate.Loaded:
		return http.StatusOK
	case loadstate.Failed:
		return http.StatusBadGateway
	default:
		// The caller stopped waiting before the load settled.
		return http.StatusAccepted
	}
}

// ListStudents handles GET /students?q=term.
func (s *Server) ListStudents(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	page, err := s.search.Query(r.Context(), term)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]studentDTO, len(page.Matches))
	for i := range page.Matches {
		items[i] = matchToDTO(&page.Matches[i])
	}

	w.Header().Set("X-Directory-Revision", strconv.FormatUint(page.Revision, 10))
	writeJSON(w, http.StatusOK, searchResponse{
		Query:    term,
		Revision: page.Revision,
		Total:    len(items),
		Items:    items,
	})
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

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
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

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// notLoadedHandler maps a search before load: 502 with the failure message
// when the last load failed, 503 while idle or loading.
func notLoadedHandler(w http.ResponseWriter, err error) bool {
	var nle *searchuc.NotLoadedError
	if !errors.As(err, &nle) {
		return false
	}
	if nle.State.Kind() == loadstate.Failed {
		writeError(w, http.StatusBadGateway, codeLoadFailed, nle.State.Message())
		return true
	}
	w.Header().Set("Retry-After", "1")
	writeError(w, http.StatusServiceUnavailable, codeNotLoaded,
		domain.ErrNotLoaded.Error()+": "+nle.State.Kind().String())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
