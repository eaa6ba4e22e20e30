package routes

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/NICOL-XPDK/weba-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, submissions *handlers.SubmissionHandler, health *handlers.HealthHandler, staticDir string) {
	// Feedback routes
	r.Post("/api/submit", submissions.Submit)
	r.Get("/api/submissions", submissions.List)

	// Health check
	r.Get("/api/health", health.Health)

	// Landing page
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(staticDir, "index.html"))
	})
}
