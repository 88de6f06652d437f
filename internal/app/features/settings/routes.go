// internal/app/features/settings/routes.go
package settings

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the settings and reference
// data endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.GetNotifications)
		r.Put("/", h.PutNotifications)
		r.Post("/test-email", h.TestEmail)
		r.Post("/test-telegram", h.TestTelegram)
	})

	rd := h.RefData
	r.Route("/facility-types", func(r chi.Router) {
		r.Get("/", rd.ListFacilityTypes)
		r.Post("/", rd.CreateFacilityType)
		r.Delete("/{id}", rd.DeleteFacilityType)
	})
	r.Route("/refrigerator-types", func(r chi.Router) {
		r.Get("/", rd.ListRefrigeratorTypes)
		r.Post("/", rd.CreateRefrigeratorType)
		r.Put("/{id}", rd.UpdateRefrigeratorType)
		r.Delete("/{id}", rd.DeleteRefrigeratorType)
	})
	r.Route("/cooking-methods", func(r chi.Router) {
		r.Get("/", rd.ListCookingMethods)
		r.Post("/", rd.CreateCookingMethod)
		r.Put("/{id}", rd.UpdateCookingMethod)
		r.Delete("/{id}", rd.DeleteCookingMethod)
	})
	r.Route("/holidays", func(r chi.Router) {
		r.Get("/", rd.ListHolidays)
		r.Post("/", rd.CreateHoliday)
		r.Delete("/{id}", rd.DeleteHoliday)
	})
	r.Route("/facility-exceptions", func(r chi.Router) {
		r.Get("/", rd.ListExceptions)
		r.Post("/", rd.CreateException)
		r.Delete("/{id}", rd.DeleteException)
	})

	return r
}
