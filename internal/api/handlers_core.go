package api

import "github.com/gofiber/fiber/v2"

// Health is an unauthenticated liveness probe.
func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
