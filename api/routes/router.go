package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/videxhq/videx-backend/api/controllers"
	"github.com/videxhq/videx-backend/api/middleware"
	"github.com/videxhq/videx-backend/internal/catalog"
	"github.com/videxhq/videx-backend/internal/ingest"
	"github.com/videxhq/videx-backend/internal/stream"
	"github.com/videxhq/videx-backend/pkg/config"
	"github.com/videxhq/videx-backend/pkg/logger"
	"github.com/videxhq/videx-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storage controllers.StoragePinger,
	catalogService catalog.Service,
	ingestService ingest.Service,
	streamService stream.Service,
	mediaMetrics *metrics.MediaMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.Health(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storage))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/videos", controllers.VideoList(catalogService, logg))
		r.Post("/upload", controllers.Upload(ingestService, cfg.Media.MaxUploadBytes, logg))
		r.Get("/stream/{key}", controllers.Stream(streamService, mediaMetrics, logg))

		r.Route("/videos/{id}", func(r chi.Router) {
			r.Post("/like", controllers.VideoLike(catalogService, logg))
			r.Post("/view", controllers.VideoView(catalogService, logg))
			r.Delete("/", controllers.VideoDelete(catalogService, logg))
		})
	})

	return r
}
