package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/record-services/docs"
	"github.com/rogerio-castellano/record-services/internal/http/ban"
	"github.com/rogerio-castellano/record-services/internal/http/handlers"
	mw "github.com/rogerio-castellano/record-services/internal/http/middleware"
	rl "github.com/rogerio-castellano/record-services/internal/http/rate_limiter"
)

type RouterOptions struct {
	Logger *slog.Logger
	// Health is pinged by GET /healthz. Nil reports healthy.
	Health handlers.Pinger
	// TrustProxy lets X-Forwarded-For/X-Real-IP replace the peer address,
	// which is what rate limiting keys on.
	TrustProxy bool
	// Limiter, when set, rate limits the record routes. Bans is optional.
	Limiter *rl.Limiter
	Bans    *ban.Tracker
	Routes  []handlers.Routes
}

func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(mw.RequestID)
	r.Use(mw.AccessLog(logger))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		mw.WriteError(w, r, logger, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		mw.WriteError(w, r, logger, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", handlers.HealthHandler(opts.Health))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(mw.RateLimit(opts.Limiter, opts.Bans, logger))
		}
		for _, routes := range opts.Routes {
			routes.Register(r)
		}
	})

	return r
}
