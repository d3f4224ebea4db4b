package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/gravida/internal/models"
	"github.com/terraincognita07/gravida/internal/services"
	"github.com/terraincognita07/gravida/internal/state"
)

const (
	logNameMoods    = "moods"
	logNameSymptoms = "symptoms"
	logNameJournal  = "journal"
)

type entryRequest struct {
	Mood     string   `json:"mood"`
	Note     string   `json:"note"`
	Symptoms []string `json:"symptoms"`
	Severity int      `json:"severity"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
}

// UpsertEntry writes a daily entry into the named log. Writing the same day
// twice mutates the existing entry instead of appending a second one.
func (handler *Handler) UpsertEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	}

	request := entryRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	now := handler.clock.Now()

	switch c.Params("log") {
	case logNameMoods:
		log, err := handler.loadMoodLog(user.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load mood log")
		}
		input := services.MoodEntryInput{Mood: models.Mood(request.Mood), Note: request.Note}
		log, err = services.UpsertMoodEntry(log, day, input, now)
		if err != nil {
			return entryValidationError(c, err)
		}
		if err := handler.gateway.SaveSlice(user.ID, state.KeyMoods, log); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to save mood log")
		}
		return c.JSON(log)

	case logNameSymptoms:
		log, err := handler.loadSymptomLog(user.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load symptom log")
		}
		kinds := make([]models.SymptomKind, 0, len(request.Symptoms))
		for _, raw := range request.Symptoms {
			kinds = append(kinds, models.SymptomKind(raw))
		}
		input := services.SymptomEntryInput{Symptoms: kinds, Severity: request.Severity, Note: request.Note}
		log, err = services.UpsertSymptomEntry(log, day, input, now)
		if err != nil {
			return entryValidationError(c, err)
		}
		if err := handler.gateway.SaveSlice(user.ID, state.KeySymptoms, log); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to save symptom log")
		}
		return c.JSON(log)

	case logNameJournal:
		log, err := handler.loadJournalLog(user.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load journal")
		}
		input := services.JournalEntryInput{Title: request.Title, Body: request.Body}
		log, err = services.UpsertJournalEntry(log, day, input, now)
		if err != nil {
			return entryValidationError(c, err)
		}
		if err := handler.gateway.SaveSlice(user.ID, state.KeyJournal, log); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to save journal")
		}
		return c.JSON(log)
	}

	return apiError(c, fiber.StatusNotFound, "unknown log")
}

// ListEntries returns the whole named log.
func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	switch c.Params("log") {
	case logNameMoods:
		log, err := handler.loadMoodLog(user.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load mood log")
		}
		return c.JSON(log)
	case logNameSymptoms:
		log, err := handler.loadSymptomLog(user.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load symptom log")
		}
		return c.JSON(log)
	case logNameJournal:
		log, err := handler.loadJournalLog(user.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load journal")
		}
		return c.JSON(log)
	}

	return apiError(c, fiber.StatusNotFound, "unknown log")
}

func entryValidationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidMood),
		errors.Is(err, services.ErrInvalidSymptomKind),
		errors.Is(err, services.ErrInvalidSeverity),
		errors.Is(err, services.ErrEmptyJournalBody):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to update entry")
	}
}
