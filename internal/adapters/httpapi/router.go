package httpapi

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/lier-bua/gear-catalog-api/internal/platform/metrics"
)

type RouterOptions struct {
	// Logger enables per-request logging when non-nil.
	Logger *zap.Logger
	// Metrics records request metrics when non-nil.
	Metrics *metrics.Metrics
	// MetricsHandler is mounted at /metrics when non-nil.
	MetricsHandler http.Handler
	// CORSAllowedOrigins defaults to all origins when empty.
	CORSAllowedOrigins []string
}

// NewRouter constructs the API HTTP router with default options.
func NewRouter(s *Server) http.Handler {
	return NewRouterWithOptions(s, RouterOptions{})
}

func NewRouterWithOptions(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if opts.Logger != nil {
		r.Use(requestLogger(opts.Logger))
	}
	if opts.Metrics != nil {
		r.Use(instrument(opts.Metrics))
	}
	r.Use(middleware.Recoverer)

	origins := opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsOpts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	// A literal "*" cannot be paired with credentials, so echo the caller's Origin instead.
	if slices.Contains(origins, "*") {
		corsOpts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	} else {
		corsOpts.AllowedOrigins = origins
	}
	r.Use(cors.Handler(corsOpts))

	// Infra endpoints.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	r.Get("/", s.Root)
	r.Get("/test", s.Diagnostics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/equipment", s.ListEquipment)
		r.Post("/equipment", s.CreateEquipment)
		r.Post("/members", s.CreateMember)
		r.Post("/reservations", s.CreateReservation)
		r.Post("/reports", s.CreateReport)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
	return r
}
