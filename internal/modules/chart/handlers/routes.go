package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chart routes on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/charts", func(r chi.Router) {
		r.Post("/compute", h.HandleCompute)
		r.Route("/profile/{id}", func(r chi.Router) {
			r.Get("/", h.HandleProfileChart)
			r.Get("/divisional/{n}", h.HandleProfileDivisional)
			r.Get("/dasha", h.HandleProfileDasha)
		})
	})
}
