package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/terraincognita07/gravida/internal/models"
)

var (
	ErrInvalidMilestoneTitle      = errors.New("invalid milestone title")
	ErrInvalidMilestoneWeek       = errors.New("invalid milestone week")
	ErrInvalidMilestoneImportance = errors.New("invalid milestone importance")
)

const maxMilestoneTitleLength = 120

// AllDefinitions returns the preset catalog followed by the user's custom
// entries, ordered by week then title.
func AllDefinitions(custom []models.MilestoneDefinition) []models.MilestoneDefinition {
	preset := models.DefaultMilestoneDefinitions()
	definitions := make([]models.MilestoneDefinition, 0, len(preset)+len(custom))
	definitions = append(definitions, preset...)
	definitions = append(definitions, custom...)

	sort.SliceStable(definitions, func(i, j int) bool {
		if definitions[i].Week == definitions[j].Week {
			return definitions[i].Title < definitions[j].Title
		}
		return definitions[i].Week < definitions[j].Week
	})
	return definitions
}

func FindDefinition(custom []models.MilestoneDefinition, id string) (models.MilestoneDefinition, bool) {
	for _, definition := range models.DefaultMilestoneDefinitions() {
		if definition.ID == id {
			return definition, true
		}
	}
	for _, definition := range custom {
		if definition.ID == id {
			return definition, true
		}
	}
	return models.MilestoneDefinition{}, false
}

// NewCustomDefinition validates the input and mints a custom catalog entry.
// Custom milestones always carry the custom category and are never
// auto-detected.
func NewCustomDefinition(title string, week int, importance models.MilestoneImportance) (models.MilestoneDefinition, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxMilestoneTitleLength {
		return models.MilestoneDefinition{}, ErrInvalidMilestoneTitle
	}
	if week < 1 || week > models.MaxWeek {
		return models.MilestoneDefinition{}, ErrInvalidMilestoneWeek
	}
	if importance == "" {
		importance = models.ImportanceMedium
	}
	if !importance.Valid() {
		return models.MilestoneDefinition{}, ErrInvalidMilestoneImportance
	}

	return models.MilestoneDefinition{
		ID:               uuid.NewString(),
		Title:            title,
		Week:             week,
		Trimester:        TrimesterForWeek(week),
		IsAutoDetectable: false,
		Importance:       importance,
		Category:         models.CategoryCustom,
	}, nil
}

// AddCustomMilestone appends a freshly minted definition to the state. The
// catalog permits no other mutation.
func AddCustomMilestone(state models.MilestoneState, title string, week int, importance models.MilestoneImportance) (models.MilestoneState, models.MilestoneDefinition, error) {
	definition, err := NewCustomDefinition(title, week, importance)
	if err != nil {
		return state, models.MilestoneDefinition{}, err
	}
	state.Custom = append(state.Custom, definition)
	return state, definition, nil
}
