package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version", h.getServerVersion)

	// reads are open; a presented token must still be valid
	router.Group(func(r chi.Router) {
		r.Use(h.optionalAuth)
		r.Get("/api/blobs", h.listBlobs)
		r.Get("/api/blobs/*", h.getBlob)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Put("/api/blobs/*", h.putBlob)
		r.Delete("/api/blobs/*", h.deleteBlob)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
