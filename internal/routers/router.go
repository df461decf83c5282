package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Jaideep0802/CodePair/internal/api"
	"github.com/Jaideep0802/CodePair/internal/config"
	"github.com/Jaideep0802/CodePair/internal/metrics"
)

func New(log *zap.Logger, cfg *config.Config) http.Handler {
	h := api.NewHandlers(log, cfg)
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(metrics.Middleware("codepair"))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/languages", h.ListLanguages)
		r.Get("/webrtc/config", h.GetWebRTCConfig)
	})

	r.Get("/ws", h.SessionWS)

	return r
}
