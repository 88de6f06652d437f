// internal/app/features/alerts/routes.go
package alerts

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the alert endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/{id}/resolve", h.Resolve)
	return r
}
