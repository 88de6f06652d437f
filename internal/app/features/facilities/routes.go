// internal/app/features/facilities/routes.go
package facilities

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the facility endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
