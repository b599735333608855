package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	appanalysis "github.com/bryanwahyu/didim-interview/internal/application/analysis"
	appevaluation "github.com/bryanwahyu/didim-interview/internal/application/evaluation"
	appuploads "github.com/bryanwahyu/didim-interview/internal/application/uploads"
	"github.com/bryanwahyu/didim-interview/internal/domain/ai"
	"github.com/bryanwahyu/didim-interview/internal/domain/analysis"
	"github.com/bryanwahyu/didim-interview/internal/domain/evaluation"
	"github.com/bryanwahyu/didim-interview/internal/domain/uploads"
	"github.com/bryanwahyu/didim-interview/internal/middleware"
)

const (
	defaultMaxUpload = 500 << 20
	maxJSONBody      = 16 << 20
)

var errBadJSON = errors.New("invalid JSON body")

// Options configures the HTTP surface around the services
type Options struct {
	AllowedOrigins []string
	APIKeys        map[string]string
	Limiter        *middleware.RateLimiter
	MaxUploadBytes int64
	Health         http.Handler
	Log            zerolog.Logger
}

type Router struct {
	uploads    *appuploads.Service
	analysis   *appanalysis.Service
	evaluation *appevaluation.Service
	maxUpload  int64
	log        zerolog.Logger
}

func NewRouter(up *appuploads.Service, an *appanalysis.Service, ev *appevaluation.Service, opts Options) http.Handler {
	r := &Router{uploads: up, analysis: an, evaluation: ev, maxUpload: opts.MaxUploadBytes, log: opts.Log}
	if r.maxUpload <= 0 {
		r.maxUpload = defaultMaxUpload
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.LoggingMiddleware(opts.Log))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.APIKeyAuth(opts.APIKeys))
	mux.Use(middleware.RateLimitMiddleware(opts.Limiter))

	health := opts.Health
	if health == nil {
		health = middleware.HealthHandler(middleware.Environment{}, nil)
	}
	mux.Method(http.MethodGet, "/health", health)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api/upload", func(rt chi.Router) {
		rt.Post("/presigned-url", r.wrap(r.handlePresignedURL))
		rt.Post("/direct", r.wrap(r.handleDirectUpload))
		rt.Get("/status/*", r.wrap(r.handleUploadStatus))
	})
	mux.Route("/api/analysis", func(rt chi.Router) {
		rt.Post("/start", r.wrap(r.handleStartAnalysis))
		rt.Get("/status/{jobType}/{jobId}", r.wrap(r.handleAnalysisStatus))
	})
	mux.Route("/api/evaluation", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleEvaluate))
		rt.Get("/demo", r.wrap(r.handleDemo))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// sentWriter remembers whether the handler already started the response
type sentWriter struct {
	http.ResponseWriter
	sent bool
}

func (sw *sentWriter) WriteHeader(code int) {
	sw.sent = true
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *sentWriter) Write(b []byte) (int, error) {
	sw.sent = true
	return sw.ResponseWriter.Write(b)
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		sw := &sentWriter{ResponseWriter: w}
		err := h(sw, req)
		if err == nil {
			return
		}
		if sw.sent {
			// header sudah terkirim, cukup log
			r.log.Error().Err(err).Str("path", req.URL.Path).Msg("response write failed")
			return
		}
		status := statusFor(err)
		ev := r.log.Warn()
		if status >= http.StatusInternalServerError {
			ev = r.log.Error()
		}
		ev.Err(err).Str("path", req.URL.Path).Int("status", status).Msg("request failed")
		_ = writeJSON(w, status, failure{Success: false, Error: err.Error()})
	}
}

func statusFor(err error) int {
	var verr *middleware.ValidationError
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, errBadJSON),
		errors.Is(err, uploads.ErrEmptyFile),
		errors.Is(err, uploads.ErrInvalidRequest),
		errors.Is(err, analysis.ErrMissingKey),
		errors.Is(err, evaluation.ErrInvalidRuleset):
		return http.StatusBadRequest
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ai.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// envelope is embedded in every success body
type envelope struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}

func ok() envelope { return envelope{Success: true, Timestamp: time.Now()} }

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, req *http.Request, dst any) error {
	body := http.MaxBytesReader(w, req.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return err
		}
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	return nil
}
