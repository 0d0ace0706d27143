package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Get("/api/auth/check", h.check)
	})

	// routes guarded by the session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Post("/api/auth/change-password", h.changePassword)

		r.Get("/api/contacts", h.listContacts)
		r.Post("/api/contacts", h.createContact)
		r.Put("/api/contacts/{id}", h.updateContact)
		r.Delete("/api/contacts/{id}", h.deleteContact)

		r.Get("/api/trash", h.listTrash)
		r.Post("/api/trash/{id}/restore", h.restoreContact)
		r.Delete("/api/trash/{id}", h.purgeContact)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
