// internal/app/features/refrigerators/routes.go
package refrigerators

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the refrigerator endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
