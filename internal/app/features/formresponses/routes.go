// internal/app/features/formresponses/routes.go
package formresponses

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the form response endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Submit)
	return r
}
