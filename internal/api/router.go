package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/fight-predictor/internal/logger"
	"github.com/yourusername/fight-predictor/internal/metrics"
)

// RouterConfig holds the HTTP surface options
type RouterConfig struct {
	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	MetricsEnabled     bool
	MetricsPath        string
	Logger             *logrus.Logger
}

// NewRouter mounts the API routes behind CORS, rate limiting and request logging
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger.NewAuditLogger(log)))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	if cfg.MetricsEnabled {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimitPerSecond > 0 {
			r.Use(rateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)))
		}
		r.Post("/predict", h.Predict)
		r.Get("/fighters", h.Fighters)
	})

	return r
}

// rateLimit answers 429 once the shared token bucket is empty
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(audit *logger.AuditLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			metrics.RecordHTTPRequest(route, status)
			audit.LogRequest(r.Method, r.URL.Path, status, time.Since(start), r.RemoteAddr, middleware.GetReqID(r.Context()))
		})
	}
}
