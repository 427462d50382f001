package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured.
// Authentication is applied only when an API key is set; local
// development runs open.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	// Static dashboard shell
	r.Get("/", h.Dashboard)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			if h.apiKey != "" {
				r.Use(AuthMiddleware(h.apiKey))
			}

			r.Get("/status", h.Status)
			r.Get("/search", h.Search)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.ListProjects)
				r.Post("/", h.CreateProject)
				r.Get("/{id}", h.GetProject)
				r.Patch("/{id}", h.UpdateProject)
				r.Delete("/{id}", h.ArchiveProject)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.ListTasks)
				r.Post("/", h.CreateTask)
				r.Get("/{id}", h.GetTask)
				r.Patch("/{id}", h.UpdateTask)
				r.Delete("/{id}", h.ArchiveTask)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", h.ListExpenses)
				r.Post("/", h.CreateExpense)
				r.Get("/{id}", h.GetExpense)
				r.Patch("/{id}", h.UpdateExpense)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", h.ListDocuments)
				r.Post("/", h.CreateDocument)
				r.Get("/{id}", h.GetDocument)
				r.Patch("/{id}", h.UpdateDocument)
			})

			r.Route("/photos", func(r chi.Router) {
				r.Get("/", h.ListPhotos)
				r.Post("/", h.CreatePhoto)
				r.Get("/{id}", h.GetPhoto)
				r.Patch("/{id}", h.UpdatePhoto)
			})

			r.Post("/media/{kind}", h.Upload)
			r.Get("/media/url", h.MediaURL)
		})
	})

	return r
}
