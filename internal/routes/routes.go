package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/telbook/telbook-backend/internal/handlers"
	"github.com/telbook/telbook-backend/internal/middleware"
	"github.com/telbook/telbook-backend/internal/services"
)

// SetupRoutes registers the full HTTP surface. Everything that mutates the
// directory sits behind the admin bearer-token gate.
func SetupRoutes(r *chi.Mux, auth *services.AuthService) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Telbook API","version":"1.0.0"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Public directory routes
	r.Get("/api/contacts", handlers.ListContacts)
	r.Get("/api/contacts/{id}", handlers.GetContact)
	r.Get("/api/tags", handlers.GetTags)
	r.Get("/api/languages", handlers.GetLanguages)

	// Public suggestion submission
	r.Post("/api/suggestions", handlers.SubmitSuggestion)

	// Auth
	r.Post("/api/auth/login", handlers.Login)

	// Admin routes (bearer token required)
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin(auth))

		admin.Get("/api/auth/me", handlers.Me)

		admin.Post("/api/admin/contacts", handlers.CreateContact)
		admin.Put("/api/admin/contacts/{id}", handlers.UpdateContact)
		admin.Delete("/api/admin/contacts/{id}", handlers.DeleteContact)
		admin.Patch("/api/admin/contacts/{id}/ert", handlers.ToggleERT)
		admin.Patch("/api/admin/contacts/{id}/expose", handlers.ToggleExpose)
		admin.Patch("/api/admin/contacts/{id}/third-party", handlers.ToggleThirdParty)

		admin.Get("/api/admin/suggestions", handlers.ListSuggestions)
	})
}
