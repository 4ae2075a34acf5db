package http

import (
	"net/http"

	"github.com/MKhiriev/go-chat-vault/internal/app"
	"github.com/MKhiriev/go-chat-vault/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/", h.health)
	router.Get("/api/version", h.getServerVersion)
	router.Handle("/metrics", promhttp.Handler())

	// credential endpoints, limited per client address
	router.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Post("/api/users/register", h.register)
		r.Post("/api/users/login", h.login)
	})

	// verifies the bearer token itself
	router.Get("/api/users/me", h.me)

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Patch("/api/users/me", h.updateProfile)
		r.Get("/api/users", h.listUsers)
		r.Get("/api/users/", h.listUsers)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, app.MsgNotFound, http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
