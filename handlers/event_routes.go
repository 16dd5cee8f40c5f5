// handlers/event_routes.go
package handlers

import (
	"fantasy-draft/middleware"
	"fantasy-draft/services"

	"github.com/gofiber/fiber/v2"
)

type createEventRequest struct {
	Name string `json:"name"`
}

type joinEventRequest struct {
	DisplayName string `json:"display_name"`
}

type addAssetsRequest struct {
	Assets []services.AssetInput `json:"assets"`
}

func setupEventRoutes(app *fiber.App, admin fiber.Router, draftService *services.DraftService) {
	// 🔓 Gateway-only routes
	app.Get("/events/:id", func(c *fiber.Ctx) error {
		event, err := draftService.GetEvent(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, "failed to load event", err)
		}
		return c.JSON(event)
	})

	app.Get("/events/:id/participants", func(c *fiber.Ctx) error {
		participants, err := draftService.ListParticipants(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, "failed to list participants", err)
		}
		return c.JSON(fiber.Map{"participants": participants})
	})

	// 🔐 User routes
	app.Post("/events/:id/join", middleware.UserContextMiddleware(), func(c *fiber.Ctx) error {
		var req joinEventRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "cause": err.Error()})
			}
		}
		p, created, err := draftService.Join(c.UserContext(), c.Params("id"), userID(c), req.DisplayName)
		if err != nil {
			return respondError(c, "failed to join event", err)
		}
		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(p)
	})

	// 🛡️ Admin routes
	admin.Post("/events", func(c *fiber.Ctx) error {
		var req createEventRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "cause": err.Error()})
		}
		event, err := draftService.CreateEvent(c.UserContext(), req.Name)
		if err != nil {
			return respondError(c, "failed to create event", err)
		}
		return c.Status(fiber.StatusCreated).JSON(event)
	})

	admin.Post("/events/:id/assets", func(c *fiber.Ctx) error {
		var req addAssetsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "cause": err.Error()})
		}
		assets, err := draftService.AddAssets(c.UserContext(), c.Params("id"), req.Assets)
		if err != nil {
			return respondError(c, "failed to add assets", err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"assets": assets})
	})
}
