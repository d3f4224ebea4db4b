package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gravida/internal/models"
	"github.com/terraincognita07/gravida/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// parseDayParam reads a YYYY-MM-DD path segment as local midnight.
func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func (handler *Handler) today() time.Time {
	return services.DateAtLocation(handler.clock.Now(), handler.location)
}
