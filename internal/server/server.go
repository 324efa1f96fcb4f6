// Package server exposes the calculator catalog over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/metrics"
	"github.com/iwvelando/finance-calculators/internal/registry"
	"github.com/iwvelando/finance-calculators/internal/service"
	"go.uber.org/zap"
)

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	svc     *service.Service
	cfg     config.ServerConfig
	logger  *zap.Logger
	metrics *metrics.Metrics
	limiter *clientLimiter
	version string
}

// New creates a server with all routes and middleware. m may be nil, in
// which case /metrics is not served.
func New(svc *service.Service, cfg config.ServerConfig, logger *zap.Logger, m *metrics.Metrics, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = "dev"
	}

	s := &Server{
		svc:     svc,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		limiter: newClientLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		version: version,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	origins := s.cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Use(s.limitBody)

			r.Get("/categories", s.handleCategories)
			r.Get("/calculators", s.handleList)
			r.Get("/calculators/{id}", s.handleDescribe)
			r.Get("/calculators/{id}/examples", s.handleExamples)
			r.Post("/calculators/{id}/calculate", s.handleCalculate)
			r.Post("/calculators/{id}/validate", s.handleValidate)
			r.Post("/calculators/{id}/validate/{field}", s.handleValidateField)
			r.Post("/batch", s.handleBatch)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()
	s.logger.Info("serving calculator API",
		zap.String("op", "server.Serve"),
		zap.String("address", ln.Addr().String()),
		zap.String("version", s.version),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down calculator API", zap.String("op", "server.Serve"))
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"version":     s.version,
		"calculators": s.svc.Registry().Len(),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Registry().Categories())
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	descs := s.svc.Registry().List()
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := descs[:0]
		for _, d := range descs {
			if strings.EqualFold(d.Category, category) {
				filtered = append(filtered, d)
			}
		}
		descs = filtered
	}
	s.writeJSON(w, http.StatusOK, descs)
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	calc, err := s.svc.Registry().Get(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, calc.Descriptor())
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	runs, err := s.svc.Examples(r.Context(), chi.URLParam(r, "id"))
	if runs == nil && err != nil {
		s.respondError(w, r, err)
		return
	}
	// Failed examples are reported per run.
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var inputs map[string]any
	if !s.decode(w, r, &inputs) {
		return
	}
	result, err := s.svc.Evaluate(r.Context(), chi.URLParam(r, "id"), inputs)
	if errors.Is(err, registry.ErrInvalidInputs) {
		s.writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var inputs map[string]any
	if !s.decode(w, r, &inputs) {
		return
	}
	res, err := s.svc.Validate(chi.URLParam(r, "id"), inputs)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

type fieldRequest struct {
	Value  any            `json:"value"`
	Inputs map[string]any `json:"inputs"`
}

func (s *Server) handleValidateField(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.svc.ValidateField(chi.URLParam(r, "id"), chi.URLParam(r, "field"), req.Value, req.Inputs)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

type batchRequest struct {
	Requests []service.Request `json:"requests"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decode(w, r, &req) {
		return
	}
	results, err := s.svc.EvaluateBatch(r.Context(), req.Requests)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// decode reads a JSON body into v, answering the request itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", maxBytesErr.Limit))
			return false
		}
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err))
		return false
	}
	return true
}

// respondError maps service and registry errors onto status codes.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, registry.ErrDecode), errors.Is(err, service.ErrBatchTooLarge):
		s.writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, registry.ErrCalculation):
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.writeError(w, r, http.StatusServiceUnavailable, "request cancelled")
	default:
		s.writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	level := zap.DebugLevel
	if status >= http.StatusInternalServerError {
		level = zap.ErrorLevel
	}
	s.logger.Log(level, "request failed",
		zap.String("op", "server.writeError"),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
