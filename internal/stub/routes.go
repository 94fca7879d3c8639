package stub

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/quickswap/quickswap-cli/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the stub API.
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger): logs each request
//  2. BearerAuth: token auth for everything outside /api/auth
func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.BearerAuth(h.Store.ResolveToken))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.Post("/forgot-password", h.ForgotPassword)
			r.Post("/check-otp", h.CheckOtp)
			r.Post("/resend-otp", h.ResendOtp)
			r.Post("/reset-password", h.ResetPassword)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.Posts)
			r.Post("/", h.CreatePost)
			r.Get("/search", h.SearchPosts)
			r.Get("/filter", h.FilterPosts)
			r.Delete("/{id}", h.DeletePost)
			r.Post("/{id}/save", h.SavePost)
			r.Delete("/{id}/save", h.UnsavePost)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", h.Me)
			r.Put("/me", h.UpdateMe)
			r.Get("/me/saved", h.SavedPosts)
			r.Get("/{id}", h.UserByID)
			r.Get("/{id}/ratings", h.UserRatings)
			r.Get("/{id}/rating-summary", h.RatingSummary)
			r.Post("/{id}/rate", h.RateUser)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/me", h.Notifications)
			r.Put("/me/{id}/read", h.MarkRead)
			r.Post("/send-to-user/{id}", h.SendNotification)
		})

		r.Post("/upload/image", h.UploadImage)
	})

	return r
}
