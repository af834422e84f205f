package main

import (
	"net/http"

	"github.com/MaharajTanim/apricity/internal/api"
	apiMiddleware "github.com/MaharajTanim/apricity/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	entryHandler := api.NewEntryHandler(app.entryService)
	queueHandler := api.NewQueueHandler(app.queue)

	r.Route("/api", func(r chi.Router) {
		r.Post("/entries", entryHandler.CreateEntry)
		r.Get("/entries/{id}", entryHandler.GetEntry)

		r.Get("/queue/stats", queueHandler.GetStats)
		r.Delete("/queue/pending", queueHandler.Clear)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
