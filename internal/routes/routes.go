package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/pastevault/backend/internal/config"
	"github.com/pastevault/backend/internal/handlers"
	"github.com/pastevault/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// All user routes require the actor identity from the upstream auth token
	users := api.Group("/users", middleware.JWTProtected(cfg))

	users.Get("/:id/profile-edit", profileHandler.GetProfileForEdit)
	users.Put("/:id/profile", profileHandler.UpdateProfile)
	users.Put("/:id/password", profileHandler.ChangePassword)
	users.Get("/:id/preferences", profileHandler.GetNotificationPreferences)
	users.Put("/:id/notification-preferences", profileHandler.UpdateNotificationPreferences)
	users.Get("/:id/privacy-settings", profileHandler.GetPrivacySettings)
	users.Patch("/:id/privacy-settings", profileHandler.UpdatePrivacySettings)
}
