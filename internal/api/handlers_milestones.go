package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/gravida/internal/models"
	"github.com/terraincognita07/gravida/internal/services"
	"github.com/terraincognita07/gravida/internal/state"
)

type achieveRequest struct {
	Date   string      `json:"date"`
	Photos []string    `json:"photos"`
	Notes  string      `json:"notes"`
	Mood   models.Mood `json:"mood"`
}

type customMilestoneRequest struct {
	Title      string                     `json:"title"`
	Week       int                        `json:"week"`
	Importance models.MilestoneImportance `json:"importance"`
}

// ListMilestones returns the merged catalog together with achieved records
// and the overall progress percentage.
func (handler *Handler) ListMilestones(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	milestones, err := handler.loadFreshMilestones(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load milestones")
	}

	return c.JSON(fiber.Map{
		"definitions": services.AllDefinitions(milestones.Custom),
		"achieved":    services.AchievedMilestones(milestones),
		"progress":    services.MilestoneProgress(milestones),
	})
}

// UpcomingMilestones lists not-yet-achieved milestones ordered by week. The
// limit query parameter caps the list; absent or non-positive means all.
func (handler *Handler) UpcomingMilestones(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "limit must be an integer")
		}
		limit = parsed
	}

	milestones, err := handler.loadFreshMilestones(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load milestones")
	}

	return c.JSON(fiber.Map{"upcoming": services.UpcomingMilestones(milestones, limit)})
}

// AchievedMilestones lists achieved records ordered by achievement date.
func (handler *Handler) AchievedMilestones(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	milestones, err := handler.loadFreshMilestones(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load milestones")
	}

	return c.JSON(fiber.Map{
		"achieved": services.AchievedMilestones(milestones),
		"progress": services.MilestoneProgress(milestones),
	})
}

// AchieveMilestone records a manual achievement for a milestone id. An
// explicit date in the body is kept as given; otherwise today is used.
func (handler *Handler) AchieveMilestone(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	request := achieveRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if request.Mood != "" && !request.Mood.Valid() {
		return apiError(c, fiber.StatusBadRequest, "unknown mood value")
	}

	input := services.AchievementInput{
		Photos: request.Photos,
		Notes:  request.Notes,
		Mood:   request.Mood,
	}
	if request.Date != "" {
		date, err := time.ParseInLocation("2006-01-02", request.Date, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		}
		input.Date = &date
	}

	milestones, err := handler.loadMilestones(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load milestones")
	}

	milestones, celebration, err := services.AchieveMilestone(milestones, c.Params("id"), input, handler.today())
	if errors.Is(err, services.ErrUnknownMilestone) {
		return apiError(c, fiber.StatusNotFound, "unknown milestone")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to record achievement")
	}

	if err := handler.gateway.SaveSlice(user.ID, state.KeyMilestones, milestones); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save milestones")
	}
	if celebration != nil {
		handler.celebrate(*celebration)
	}

	return c.JSON(fiber.Map{
		"achieved": services.AchievedMilestones(milestones),
		"progress": services.MilestoneProgress(milestones),
	})
}

// UndoAchievement removes the achieved record for a milestone id. Auto
// milestones whose week criterion still holds come back on the next sweep, so
// the undo is only durable for manual ones.
func (handler *Handler) UndoAchievement(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	milestones, err := handler.loadMilestones(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load milestones")
	}

	milestones = services.UndoAchievement(milestones, c.Params("id"))

	if err := handler.gateway.SaveSlice(user.ID, state.KeyMilestones, milestones); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save milestones")
	}

	return c.JSON(fiber.Map{
		"achieved": services.AchievedMilestones(milestones),
		"progress": services.MilestoneProgress(milestones),
	})
}

// CreateCustomMilestone appends a user-defined milestone to the catalog.
// Custom milestones are always manual; the sweep never touches them.
func (handler *Handler) CreateCustomMilestone(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	request := customMilestoneRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	milestones, err := handler.loadMilestones(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load milestones")
	}

	milestones, definition, err := services.AddCustomMilestone(milestones, request.Title, request.Week, request.Importance)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := handler.gateway.SaveSlice(user.ID, state.KeyMilestones, milestones); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save milestones")
	}

	return c.Status(fiber.StatusCreated).JSON(definition)
}
