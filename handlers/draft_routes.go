// handlers/draft_routes.go
package handlers

import (
	"fantasy-draft/services"

	"github.com/gofiber/fiber/v2"
)

func setupDraftRoutes(app *fiber.App, admin fiber.Router, draftService *services.DraftService) {
	app.Get("/events/:id/draft/turn", func(c *fiber.Ctx) error {
		turn, err := draftService.CurrentTurn(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, "failed to resolve current turn", err)
		}
		return c.JSON(turn)
	})

	app.Get("/events/:id/picks", func(c *fiber.Ctx) error {
		picks, err := draftService.ListPicks(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, "failed to list picks", err)
		}
		return c.JSON(fiber.Map{"picks": picks})
	})

	admin.Post("/events/:id/draft/start", func(c *fiber.Ctx) error {
		participants, err := draftService.StartDraft(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, "failed to start draft", err)
		}
		return c.JSON(fiber.Map{"participants": participants})
	})

	admin.Post("/events/:id/draft/run", func(c *fiber.Ctx) error {
		picks, err := draftService.RunDraft(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, "failed to run draft", err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"picks": picks})
	})

	admin.Post("/events/:id/draft/autopick", func(c *fiber.Ctx) error {
		res, err := draftService.AutoPick(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, "auto-pick failed", err)
		}
		return c.JSON(res)
	})
}
