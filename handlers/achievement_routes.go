// handlers/achievement_routes.go
package handlers

import (
	"fantasy-draft/middleware"
	"fantasy-draft/services"

	"github.com/gofiber/fiber/v2"
)

type awardRequest struct {
	UserID string `json:"user_id"`
	Code   string `json:"code"`
}

func setupAchievementRoutes(app *fiber.App, admin fiber.Router, achievementService *services.AchievementService) {
	app.Get("/user/achievements", middleware.UserContextMiddleware(), func(c *fiber.Ctx) error {
		list, err := achievementService.ListForUser(c.UserContext(), userID(c))
		if err != nil {
			return respondError(c, "failed to list achievements", err)
		}
		return c.JSON(fiber.Map{"achievements": list})
	})

	admin.Post("/achievements/award", func(c *fiber.Ctx) error {
		var req awardRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "cause": err.Error()})
		}
		granted, err := achievementService.Award(c.UserContext(), req.UserID, req.Code)
		if err != nil {
			return respondError(c, "failed to award achievement", err)
		}
		return c.JSON(fiber.Map{"newly_granted": granted})
	})
}
