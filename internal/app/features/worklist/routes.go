// internal/app/features/worklist/routes.go
package worklist

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the worklist endpoint.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve) // mounted under /api/worklist
	return r
}
