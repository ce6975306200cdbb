package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/handlers"
	custommiddleware "github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/middleware"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/config"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System       *service.SystemService
	Pitch        *service.PitchService
	Investment   *service.InvestmentService
	Payment      *service.PaymentService
	Profile      *service.ProfileService
	Notification *service.NotificationService
	Category     *service.CategoryService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/pitch", func(r chi.Router) {
			pitchHandler := handlers.NewPitchHandler(svc.Pitch)
			r.Get("/", pitchHandler.Pitches)
			r.Post("/", pitchHandler.CreatePitch)

			// Moderation routes are internal-only.
			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)
				r.Post("/batch-review", pitchHandler.BatchReviewPitches)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", pitchHandler.GetPitch)
				r.Put("/", pitchHandler.UpdatePitch)
				r.Delete("/", pitchHandler.DeletePitch)
				r.Post("/round", pitchHandler.OpenRound)
				r.Post("/round/close", pitchHandler.CloseRound)

				r.Group(func(r chi.Router) {
					r.Use(custommiddleware.APIKeyMiddleware)
					r.Post("/review", pitchHandler.ReviewPitch)
				})
			})
		})

		r.Route("/investment", func(r chi.Router) {
			investmentHandler := handlers.NewInvestmentHandler(svc.Investment)
			paymentHandler := handlers.NewPaymentHandler(svc.Payment, cfg.Payment.WebhookSecret)
			r.Post("/", investmentHandler.CreateInvestment)
			r.Get("/investor/{userId}", investmentHandler.InvestmentsPerInvestor)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", investmentHandler.GetInvestment)
				r.Post("/review", investmentHandler.ReviewInvestment)
				r.Post("/checkout", paymentHandler.CreateCheckout)
			})
		})

		r.Route("/payment", func(r chi.Router) {
			paymentHandler := handlers.NewPaymentHandler(svc.Payment, cfg.Payment.WebhookSecret)
			r.Post("/webhook", paymentHandler.Webhook)
		})

		r.Route("/profile", func(r chi.Router) {
			profileHandler := handlers.NewProfileHandler(svc.Profile)
			r.Post("/", profileHandler.CreateProfile)
			r.Get("/user/{userId}", profileHandler.GetProfileByUser)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", profileHandler.GetProfile)
				r.Put("/", profileHandler.UpdateProfile)
			})
		})

		r.Route("/notification", func(r chi.Router) {
			notificationHandler := handlers.NewNotificationHandler(svc.Notification)
			r.Get("/user/{userId}", notificationHandler.Notifications)
			r.Put("/user/{userId}/read", notificationHandler.MarkAllRead)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/read", notificationHandler.MarkRead)
			})
		})

		r.Route("/category", func(r chi.Router) {
			categoryHandler := handlers.NewCategoryHandler(svc.Category)
			r.Get("/", categoryHandler.Categories)

			// Taxonomy mutations are internal-only.
			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)
				r.Post("/", categoryHandler.CreateCategory)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Put("/", categoryHandler.UpdateCategory)
					r.Delete("/", categoryHandler.DeleteCategory)
				})
			})
		})
	})

	return r
}
