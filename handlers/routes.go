// handlers/routes.go
package handlers

import (
	"fantasy-draft/middleware"
	"fantasy-draft/services"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes mounts every route. Gateway auth is applied by the caller;
// /s/admin additionally requires a user carrying the admin role.
func SetupRoutes(app *fiber.App, draftService *services.DraftService, achievementService *services.AchievementService) {
	admin := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	setupEventRoutes(app, admin, draftService)
	setupDraftRoutes(app, admin, draftService)
	setupAchievementRoutes(app, admin, achievementService)
}
