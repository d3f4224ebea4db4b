package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/gravida/internal/services"
)

// GetStats computes the analytics overview over the owner's logs: streaks,
// mood averages, most common mood and symptom, journal text metrics.
func (handler *Handler) GetStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	moods, err := handler.loadMoodLog(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load mood log")
	}
	symptoms, err := handler.loadSymptomLog(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load symptom log")
	}
	journal, err := handler.loadJournalLog(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load journal")
	}

	return c.JSON(services.BuildStatsOverview(moods, symptoms, journal, handler.today()))
}
