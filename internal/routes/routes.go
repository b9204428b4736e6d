package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/localboost/localboost-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Directory routes
	r.Get("/api/businesses", handlers.ListBusinesses)
	r.Get("/api/businesses/{id}", handlers.GetBusinessDetail)
	r.Post("/api/businesses/{id}/photo", handlers.UploadBusinessPhoto)
	r.Get("/api/categories", handlers.ListCategories)

	// CAPTCHA routes (solving one earns a single-use review token)
	r.Get("/api/captcha", handlers.GetCaptcha)
	r.Post("/api/captcha/verify", handlers.VerifyCaptcha)

	// Review routes
	r.Post("/api/reviews", handlers.CreateReview)

	// Favorite routes
	r.Get("/api/favorites", handlers.ListFavorites)
	r.Post("/api/favorites", handlers.AddFavorite)
	r.Delete("/api/favorites/{id}", handlers.RemoveFavorite)

	// Deal routes
	r.Get("/api/deals", handlers.ListDeals)

	// Report routes
	r.Post("/api/reports", handlers.GenerateReport)
	r.Get("/api/reports/recent", handlers.GetRecentReports)

	// Help center routes
	r.Get("/api/help/search", handlers.SearchHelp)

	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)
}
