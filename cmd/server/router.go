package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hrsys/candidate-api/internal/api"
	apiMiddleware "github.com/hrsys/candidate-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and
// middleware. Routes not registered here do not exist.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	candidateHandler := api.NewCandidateHandler(app.candidateService, app.logger)
	historyHandler := api.NewHistoryHandler(app.candidateService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/candidates", candidateHandler.Register)
		r.Get("/candidates/status", candidateHandler.StatusByEmail)

		// Admin endpoints
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.AdminOnly)
			r.Get("/candidates", candidateHandler.List)
			r.Get("/candidates/{id}", candidateHandler.Get)
			r.Patch("/candidates/{id}", candidateHandler.UpdateStatus)
			r.Get("/candidates/{id}/resume", candidateHandler.ResumeURL)
			r.Get("/status-history", historyHandler.List)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
