package routes

import (
	"driveline/internal/auth"
	"driveline/internal/handlers"
	"driveline/internal/middleware"
	"driveline/internal/models"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	registrationHandler *handlers.RegistrationHandler,
	otpHandler *handlers.OTPHandler,
	authHandler *handlers.AuthHandler,
	tokenManager *auth.TokenManager,
) {
	authRateLimit := middleware.RateLimitByIP(middleware.DefaultAuthRateLimit())
	otpRateLimit := middleware.RateLimitByIP(middleware.DefaultOTPRateLimit())

	// Public routes - no authentication required
	router.With(authRateLimit).Post("/provider/register", registrationHandler.RegisterProvider)
	router.With(authRateLimit).Post("/user/register", registrationHandler.RegisterUser)
	router.With(authRateLimit).Post("/admin/auth", authHandler.AdminLogin)
	router.With(authRateLimit).Post("/provider/login", authHandler.ProviderLogin)

	router.With(otpRateLimit).Post("/otp/resend-email", otpHandler.ResendEmail)
	router.With(otpRateLimit).Post("/otp/resend-mobile", otpHandler.ResendMobile)
	router.With(otpRateLimit).Post("/validate-email-otp", otpHandler.ValidateEmailOTP)
	router.With(otpRateLimit).Post("/validate-mobile-otp", otpHandler.ValidateMobileOTP)

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokenManager))

		r.Get("/me", authHandler.Me)
		r.Post("/logout", authHandler.Logout)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleAdmin))
			r.Get("/admin/providers/pending", authHandler.PendingProviders)
		})
	})
}
