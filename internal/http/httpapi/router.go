package httpapi

import (
	"net/http"
	"time"

	"brandforge/internal/http/handlers"
	"brandforge/internal/infra"
	mw "brandforge/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options configures the cross-cutting middleware.
type Options struct {
	AllowedOrigins  []string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	logger := infra.OrNop(app.Logger)

	r := chi.NewRouter()
	r.Use(
		mw.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		mw.Logger(*logger),
		mw.CORS(opts.AllowedOrigins),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(opts.RateLimitPerMin, time.Minute))
			r.Post("/brand/analyze", app.AnalyzeBrand)
			r.Post("/packages", app.CreatePackage)
			r.Post("/packages/stream", app.StreamPackage)
			r.Post("/packages/archive", app.ArchivePackage)
		})
	})

	return r
}
