package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router:
//
//	GET  /api/version
//	POST /api/records/query   (bearer auth, rate limited)
//	POST /api/records/modify  (bearer auth, rate limited)
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.timeout > 0 {
		router.Use(middleware.Timeout(h.timeout))
	}

	router.Route("/api", func(api chi.Router) {
		api.Get("/version", h.getServerVersion)

		api.Route("/records", func(records chi.Router) {
			records.Use(h.auth, h.withRateLimit)
			records.Post("/query", h.queryRecords)
			records.Post("/modify", h.modifyRecords)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
