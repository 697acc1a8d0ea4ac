package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/ping", h.ping)
		r.Post("/api/auth/login", h.login)
	})

	// replica routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.With(withGZip).Get("/api/states", h.states)
		r.Get("/api/files", h.download)
		r.With(h.contentHashing).Put("/api/files", h.upload)
		r.Delete("/api/files", h.remove)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
