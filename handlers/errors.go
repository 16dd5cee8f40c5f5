// handlers/errors.go
package handlers

import (
	"errors"
	"log"

	"fantasy-draft/middleware"
	"fantasy-draft/services"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var poolErr *services.InvalidPoolError
	switch {
	case errors.Is(err, services.ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrEventNotFound), errors.Is(err, services.ErrUnknownAchievement):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNoParticipants),
		errors.Is(err, services.ErrEventClosed),
		errors.Is(err, services.ErrDraftNotStarted),
		errors.Is(err, services.ErrAlreadyDrafted),
		errors.As(err, &poolErr):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrAutoPickOffline):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("❌ [HTTP] %s %s: %s: %v", c.Method(), c.Path(), msg, err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
		"cause": err.Error(),
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalUserID).(string)
	return id
}
