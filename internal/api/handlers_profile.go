package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/gravida/internal/models"
	"github.com/terraincognita07/gravida/internal/services"
	"github.com/terraincognita07/gravida/internal/state"
)

type dateRequest struct {
	Date string `json:"date"`
}

type timelineResponse struct {
	DueDate             *string `json:"due_date"`
	LastMenstrualPeriod *string `json:"last_menstrual_period"`
	CurrentWeek         int     `json:"current_week"`
	Trimester           int     `json:"trimester"`
	ProgressPercentage  float64 `json:"progress_percentage"`
	DaysRemaining       int     `json:"days_remaining"`
	IsFullTerm          bool    `json:"is_full_term"`
	IsOverdue           bool    `json:"is_overdue"`
}

func buildTimelineResponse(profile models.PregnancyProfile, today time.Time) timelineResponse {
	response := timelineResponse{
		CurrentWeek:        profile.CurrentWeek,
		Trimester:          profile.Trimester,
		ProgressPercentage: services.ProgressPercentage(profile.CurrentWeek),
	}
	if profile.DueDate != nil {
		raw := services.DayKey(*profile.DueDate)
		response.DueDate = &raw
		response.DaysRemaining = services.DaysRemaining(profile.DueDate, today)
		response.IsFullTerm = services.IsFullTerm(profile.CurrentWeek)
		response.IsOverdue = services.IsOverdue(profile.DueDate, today)
	}
	if profile.LastMenstrualPeriod != nil {
		raw := services.DayKey(*profile.LastMenstrualPeriod)
		response.LastMenstrualPeriod = &raw
	}
	return response
}

// GetTimeline reports the derived pregnancy timeline for the signed-in owner.
func (handler *Handler) GetTimeline(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	profile, err := handler.loadProfile(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	today := handler.today()
	profile = services.RecomputeProfile(profile, today)

	return c.JSON(buildTimelineResponse(profile, today))
}

// SetDueDate stores a new due date, back-fills the last menstrual period and
// reconciles milestone records against the shifted timeline.
func (handler *Handler) SetDueDate(c *fiber.Ctx) error {
	return handler.applyDateEdit(c, func(profile models.PregnancyProfile, date time.Time, today time.Time) models.PregnancyProfile {
		return services.SetDueDate(profile, date, today)
	})
}

// SetLastMenstrualPeriod stores the cycle start date and derives the due date
// from it before reconciling milestones.
func (handler *Handler) SetLastMenstrualPeriod(c *fiber.Ctx) error {
	return handler.applyDateEdit(c, func(profile models.PregnancyProfile, date time.Time, today time.Time) models.PregnancyProfile {
		return services.SetLastMenstrualPeriod(profile, date, today)
	})
}

func (handler *Handler) applyDateEdit(c *fiber.Ctx, apply func(models.PregnancyProfile, time.Time, time.Time) models.PregnancyProfile) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	request := dateRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	date, err := time.ParseInLocation("2006-01-02", request.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	}

	profile, err := handler.loadProfile(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	milestones, err := handler.loadMilestones(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load milestones")
	}

	today := handler.today()
	profile = apply(profile, date, today)
	milestones = handler.refreshMilestones(milestones, profile, today)

	if err := handler.gateway.SaveSlice(user.ID, state.KeyProfile, profile); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
	}
	if err := handler.gateway.SaveSlice(user.ID, state.KeyMilestones, milestones); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save milestones")
	}

	return c.JSON(buildTimelineResponse(profile, today))
}
