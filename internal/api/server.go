package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focustache/focustache/internal/session"
)

// Server exposes the focus session engine and the task store over REST.
type Server struct {
	gdb            *gorm.DB
	engine         *session.Engine
	logger         *slog.Logger
	allowedDomains []string
}

// NewServer creates an API server. A nil logger selects the default slog
// logger.
func NewServer(gdb *gorm.DB, engine *session.Engine, logger *slog.Logger, allowedDomains []string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		gdb:            gdb,
		engine:         engine,
		logger:         logger,
		allowedDomains: allowedDomains,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/users", s.handleRegisterUser)

	mux.HandleFunc("GET /api/sessions/active", s.withUser(s.handleActiveSession))
	mux.HandleFunc("POST /api/sessions/start", s.withUser(s.handleStartSession))
	mux.HandleFunc("PUT /api/sessions/{id}/focus", s.withUser(s.handleEnableFocus))
	mux.HandleFunc("PUT /api/sessions/{id}/chronodoro", s.withUser(s.handleEnableChronodoro))
	mux.HandleFunc("PUT /api/sessions/{id}/timer", s.withUser(s.handleTimer))
	mux.HandleFunc("PUT /api/sessions/{id}/update", s.withUser(s.handleUpdateElapsed))
	mux.HandleFunc("PUT /api/sessions/{id}/stop", s.withUser(s.handleStopSession))
	mux.HandleFunc("GET /api/sessions/history", s.withUser(s.handleSessionHistory))
	mux.HandleFunc("GET /api/sessions/stats", s.withUser(s.handleSessionStats))

	mux.HandleFunc("POST /api/tasks", s.withUser(s.handleCreateTask))
	mux.HandleFunc("GET /api/tasks", s.withUser(s.handleListTasks))
	mux.HandleFunc("PUT /api/tasks/{id}/done", s.withUser(s.handleTaskDone))

	return s.logRequests(mux)
}

// userHandler is a handler that requires an authenticated user identity.
type userHandler func(w http.ResponseWriter, r *http.Request, userID string)

// withUser extracts and validates the X-User-ID header.
func (s *Server) withUser(h userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			writeErrorPayload(w, http.StatusUnauthorized, "unauthorized", "missing X-User-ID header")
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			writeErrorPayload(w, http.StatusUnauthorized, "unauthorized", "X-User-ID is not a valid uuid")
			return
		}
		h(w, r, id.String())
	}
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
