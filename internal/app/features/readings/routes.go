// internal/app/features/readings/routes.go
package readings

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the readings endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Submit)
	return r
}
