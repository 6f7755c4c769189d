package handlers

import (
	"barter/internal/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Routes собирает роутер приложения
func (h *Handler) Routes(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(h.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	requireAuth := middleware.JWTAuth(h.Tokens, h.Revocations, h.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		r.Post("/auth/register", h.RegisterHandler)
		r.Post("/auth/login", h.LoginHandler)

		// объявления
		r.Get("/ads", h.GetAdsHandler)
		r.Get("/ads/{adId}", h.GetAdHandler)

		// API только для чтения для внешних потребителей
		r.Get("/v1/ads", h.PublicListAdsHandler)
		r.Get("/v1/ads/{adId}", h.PublicGetAdHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/auth/logout", h.LogoutHandler)

			r.Get("/ads/my", h.GetUserAdsHandler)
			r.Post("/ads/new", h.CreateAdHandler)
			r.Patch("/ads/{adId}/edit", h.EditAdHandler)
			r.Delete("/ads/{adId}", h.DeleteAdHandler)

			// предложения обмена
			r.Post("/ads/{adId}/proposals", h.CreateProposalHandler)
			r.Get("/proposals/my", h.GetUserProposalsHandler)
			r.Get("/proposals/{proposalId}", h.GetProposalHandler)
			r.Put("/proposals/{proposalId}/status", h.UpdateProposalStatusHandler)
		})
	})
	return r
}
