// Package router wires the HTTP surface: the JSON API, the websocket
// endpoints, the media file server and the operational endpoints.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ctchan-dev/ctchan/internal/middleware"
	"github.com/ctchan-dev/ctchan/internal/setup"
)

func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	hub := deps.Hub
	adminOnly := deps.AuthMiddleware.AdminOnly()

	r.Get("/health", h.Health)
	r.Method("GET", "/metrics", promhttp.Handler())
	r.Handle("/media/*", http.StripPrefix("/media/",
		http.FileServer(http.Dir(deps.Images.Root()))))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/boards", h.ListBoards)
		r.Post("/upload", h.Upload)

		r.Route("/live", func(r chi.Router) {
			r.Get("/threads", hub.ServeThreads)
			r.Get("/threads/{thread}/replies", serveThreadReplies(hub))
		})

		r.Route("/threads/{thread}", func(r chi.Router) {
			r.Get("/", h.GetThread)
			r.Post("/", h.CreateReply)
			r.Get("/latest", h.LatestReplies)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.AdminLogin)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/overview", h.Overview)
				r.Get("/boards", h.ListAllBoards)
				r.Post("/threads/{thread}/sticky", h.SetThreadSticky)
				r.Post("/threads/{thread}/lock", h.SetThreadLocked)
				r.Delete("/threads/{thread}", h.DeleteThread)
				r.Post("/threads/{thread}/restore", h.RestoreThread)
				r.Delete("/replies/{reply}", h.DeleteReply)
				r.Post("/replies/{reply}/restore", h.RestoreReply)
			})
		})

		// the board wildcard goes last so the static prefixes above win
		r.Route("/{board}", func(r chi.Router) {
			r.Get("/", h.ListThreads)
			r.Post("/", h.CreateThread)
			r.Get("/catalog", h.Catalog)
		})
	})

	return r
}
