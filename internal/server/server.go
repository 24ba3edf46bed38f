package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/calder-r/veriscan/internal/app"
	"github.com/calder-r/veriscan/internal/auth"
	"github.com/calder-r/veriscan/internal/classifier"
	"github.com/calder-r/veriscan/internal/logging"
	"github.com/calder-r/veriscan/internal/model"
	"github.com/calder-r/veriscan/internal/session"

	_ "github.com/calder-r/veriscan/docs/swagger" // swagger spec registration
)

type contextKey string

const userEmailKey contextKey = "user-email"

// Server is the HTTP + WebSocket API surface for veriscan.
type Server struct {
	cfg      Config
	app      *app.Application
	router   chi.Router
	upgrader websocket.Upgrader
	logger   logging.Logger
}

// NewServer wraps an already-constructed Application.
func NewServer(cfg Config, application *app.Application) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	r := chi.NewRouter()
	s := &Server{
		cfg:    cfg,
		app:    application,
		router: r,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/auth/signup", s.optionsHandler("POST"))
	r.Options("/auth/login", s.optionsHandler("POST"))
	r.Options("/auth/logout", s.optionsHandler("POST"))
	r.Options("/platforms", s.optionsHandler("GET"))
	r.Options("/scan", s.optionsHandler("POST"))
	r.Options("/scan/session", s.optionsHandler("GET"))
	r.Options("/history", s.optionsHandler("GET"))
	r.Options("/history/chart", s.optionsHandler("GET"))
	r.Options("/history/changes", s.optionsHandler("GET"))

	// Public surface
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)
	r.Get("/platforms", s.handlePlatforms)
	r.Get("/health", s.handleHealth)
	r.Get("/swagger/*", httpSwagger.Handler())

	// Everything that touches a scan session or history needs a user.
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/scan", s.handleScan)
		r.Get("/scan/session", s.handleScanSession)
		r.Get("/history", s.handleHistory)
		r.Get("/history/chart", s.handleHistoryChart)
		r.Get("/history/changes", s.handleHistoryChanges)
		r.Get("/ws/scan", s.handleScanWS)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// authMiddleware resolves the bearer token (or, for websocket upgrades, the
// token query parameter) to a user email and stores it on the context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing session token")
			return
		}

		email, err := s.app.Auth().Verify(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired session token")
			return
		}

		ctx := context.WithValue(r.Context(), userEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func userEmail(r *http.Request) string {
	email, _ := r.Context().Value(userEmailKey).(string)
	return email
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}
	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

// Auth

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, err := s.app.Auth().Signup(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, auth.ErrEmailTaken) {
			status = http.StatusConflict
		}
		s.logger.Warn("signup rejected", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, status, err.Error())
		return
	}
	s.logger.Info("signup", logging.Field{Key: "email", Value: user.Email})
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	token, user, err := s.app.Auth().Login(r.Context(), body.Email, body.Password)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, auth.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		s.logger.Warn("login rejected", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if err := s.app.Auth().Logout(r.Context(), token); err != nil {
			s.logger.Warn("logout", logging.Field{Key: "error", Value: err.Error()})
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// Platforms

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Platforms())
}

// Health

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	indicator := "unreachable"
	if s.app.Classifier().Healthy(ctx) {
		indicator = "connected"
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Classifier: indicator})
}

// Scanning

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var body ScanAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	platform, err := model.ParsePlatform(body.Platform)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := s.app.SessionFor(userEmail(r))
	if err := sess.SelectPlatform(platform); err != nil {
		writeError(w, scanErrorStatus(err), err.Error())
		return
	}

	result, err := sess.Scan(r.Context(), body.ProfileURL)
	if err != nil {
		// The session has already phrased the failure for display.
		msg := sess.Snapshot().Error
		if msg == "" {
			msg = err.Error()
		}
		s.logger.Warn("scan failed", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, scanErrorStatus(err), msg)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func scanErrorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrEmptyIdentifier),
		errors.Is(err, session.ErrNoPlatform):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrScanInFlight):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, classifier.ErrUnreachable),
		errors.Is(err, classifier.ErrRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleScanSession(w http.ResponseWriter, r *http.Request) {
	sess := s.app.SessionFor(userEmail(r))
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// History

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.History().List())
}

func (s *Server) handleHistoryChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.History().ChartSeries())
}

func (s *Server) handleHistoryChanges(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "missing url query parameter")
		return
	}
	change, ok := s.app.History().BioChanges(url)
	if !ok {
		writeError(w, http.StatusNotFound, "no repeat scans with profile data for this url")
		return
	}
	writeJSON(w, http.StatusOK, change)
}

// WebSockets

// handleScanWS runs one scan over a websocket, streaming state transitions
// as they happen: scanning, then a result or an error.
func (s *Server) handleScanWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	var body ScanAPIRequest
	if err := conn.ReadJSON(&body); err != nil {
		_ = conn.WriteJSON(ErrorResponse{Error: "invalid scan request"})
		return
	}

	platform, err := model.ParsePlatform(body.Platform)
	if err != nil {
		_ = conn.WriteJSON(ErrorResponse{Error: err.Error()})
		return
	}

	sess := s.app.SessionFor(userEmail(r))

	// Discard events a previous scan left in the buffer.
	for {
		select {
		case <-sess.Events():
			continue
		default:
		}
		break
	}

	if err := sess.SelectPlatform(platform); err != nil {
		_ = conn.WriteJSON(ErrorResponse{Error: err.Error()})
		return
	}

	// Guard failures (empty identifier, scan already running) emit no
	// terminal event, so they are surfaced over a side channel.
	guardErr := make(chan error, 1)
	go func() {
		if _, err := sess.Scan(r.Context(), body.ProfileURL); err != nil &&
			(errors.Is(err, session.ErrEmptyIdentifier) || errors.Is(err, session.ErrScanInFlight)) {
			guardErr <- err
		}
	}()

	for {
		select {
		case err := <-guardErr:
			_ = conn.WriteJSON(ErrorResponse{Error: err.Error()})
			return
		case ev := <-sess.Events():
			// Drop the platform-selection echo; the client cares about the scan.
			if ev.Type == session.EventState && ev.State == session.StatePlatformSelected {
				continue
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
			if ev.Type == session.EventResult || ev.Type == session.EventError {
				return
			}
		}
	}
}
