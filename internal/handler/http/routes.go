package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getAppVersion)

		r.Post("/scans", h.handleScan)
		r.Post("/registrations", h.addRegistration)
		r.Get("/registrations/{id}", h.getRegistration)
		r.Get("/approvals/{uid}", h.getApproval)
		r.Post("/sync", h.triggerSync)

		if h.adminTokenKey != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(h.auth)
				r.Get("/datasets/{dataset}", h.getDataset)
				r.Post("/wipe", h.wipe)
			})
		}
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
