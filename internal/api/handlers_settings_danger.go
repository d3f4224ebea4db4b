package api

import (
	"github.com/gofiber/fiber/v2"
)

// ClearAllData wipes every persisted slice for the owner. The account itself
// survives; the next load of any slice starts from defaults again.
func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	if err := handler.repos.Snapshots.DeleteAllForUser(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear data")
	}
	handler.gateway.Reset(user.ID)

	return c.JSON(fiber.Map{"ok": true})
}
