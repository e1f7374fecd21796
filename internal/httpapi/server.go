package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/logging"
	"github.com/geange/dfamin/internal/minimizer"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Minimizer is the service behind POST /minimize.
type Minimizer interface {
	Minimize(ctx context.Context, raw map[string]any) (*dfamin.Description, error)
}

// Options configure the HTTP layer. Zero values disable the corresponding limit.
type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	RatePerSecond  float64
	Burst          int
	Logger         *slog.Logger
}

// Server serves the minimization API.
type Server struct {
	Minimizer Minimizer
	opts      Options
	logger    *slog.Logger
}

// NewHandler creates a new HTTP handler for the minimizer.
func NewHandler(m Minimizer, opts Options) http.Handler {
	server := &Server{Minimizer: m, opts: opts, logger: opts.Logger}
	if server.logger == nil {
		server.logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(enableCORS(opts.AllowedOrigins))

	r.Get("/healthz", server.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		if opts.RatePerSecond > 0 {
			r.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RatePerSecond), max(opts.Burst, 1))))
		}
		r.Post("/minimize", server.Minimize)
	})
	return r
}

// Health handles the GET /healthz request.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Minimize handles the POST /minimize request.
func (s *Server) Minimize(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if s.opts.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	}

	var raw any
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid JSON: expected an object")
		return
	}

	out, err := s.Minimizer.Minimize(r.Context(), doc)
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("minimize failed", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, dfamin.ErrMalformedInput), errors.Is(err, dfamin.ErrPrecondition):
		return http.StatusBadRequest
	case errors.Is(err, minimizer.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, minimizer.ErrDeadline):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func enableCORS(origins []string) func(http.Handler) http.Handler {
	wildcard := slices.Contains(origins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case wildcard:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
