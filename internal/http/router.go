package http

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"praxis-server/internal/http/handlers"
	"praxis-server/internal/infra"
	"praxis-server/internal/middleware"
)

// NewRouter wires the HTTP surface. The country lookup may be nil; locale
// detection then relies on headers alone.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.Locale("", lookup),
	)

	r.Get("/health", app.Health)

	r.Post("/upload-video", app.UploadVideo)
	r.Post("/upload-image", app.UploadImage)

	r.Get("/processing-status", app.ProcessingStatus)
	r.Get("/skills", app.Skills)
	r.Get("/jobs", app.Jobs)

	return r
}
