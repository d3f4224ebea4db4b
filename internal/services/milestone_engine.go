package services

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/gravida/internal/models"
)

var ErrUnknownMilestone = errors.New("unknown milestone")

// Celebration is emitted whenever a milestone transitions to achieved. It is
// fire-and-forget: the engine never waits on whoever consumes it.
type Celebration struct {
	Definition models.MilestoneDefinition
	Record     models.AchievedMilestone
}

type AchievementInput struct {
	Date   *time.Time
	Photos []string
	Notes  string
	Mood   models.Mood
}

// EvaluateAutoAchievements runs the auto-detection sweep: every
// auto-detectable catalog entry whose week has been reached and which has no
// achieved record yet gets one, dated via DateForWeek. The sweep is safe to
// run on every state change: with unchanged inputs it is a no-op.
func EvaluateAutoAchievements(state models.MilestoneState, currentWeek int, dueDate *time.Time) (models.MilestoneState, []Celebration) {
	if dueDate == nil || dueDate.IsZero() {
		return state, nil
	}

	achievedByID := state.AchievedByMilestoneID()
	celebrations := make([]Celebration, 0)

	for _, definition := range AllDefinitions(state.Custom) {
		if !definition.IsAutoDetectable || definition.Week > currentWeek {
			continue
		}
		if _, exists := achievedByID[definition.ID]; exists {
			continue
		}

		record := models.AchievedMilestone{
			ID:          uuid.NewString(),
			MilestoneID: definition.ID,
			AchievedAt:  DateForWeek(definition.Week, *dueDate),
			Source:      models.AchievementSourceAuto,
		}
		state.Achieved = append(state.Achieved, record)
		achievedByID[definition.ID] = record
		celebrations = append(celebrations, Celebration{Definition: definition, Record: record})
	}

	return state, celebrations
}

// AchieveMilestone records an explicit user achievement. An explicit date is
// kept verbatim; without one the achievement is stamped with now. A repeat
// attempt for an already achieved milestone is absorbed as a no-op.
func AchieveMilestone(state models.MilestoneState, milestoneID string, input AchievementInput, now time.Time) (models.MilestoneState, *Celebration, error) {
	definition, found := FindDefinition(state.Custom, milestoneID)
	if !found {
		return state, nil, ErrUnknownMilestone
	}

	if _, exists := state.AchievedByMilestoneID()[milestoneID]; exists {
		return state, nil, nil
	}

	achievedAt := now
	if input.Date != nil && !input.Date.IsZero() {
		achievedAt = *input.Date
	}

	record := models.AchievedMilestone{
		ID:          uuid.NewString(),
		MilestoneID: milestoneID,
		AchievedAt:  achievedAt,
		Source:      models.AchievementSourceManual,
		Photos:      input.Photos,
		Notes:       input.Notes,
		Mood:        input.Mood,
	}
	state.Achieved = append(state.Achieved, record)
	return state, &Celebration{Definition: definition, Record: record}, nil
}

// UndoAchievement removes the achieved record for a milestone id. The catalog
// entry stays; an auto-detectable milestone whose week criterion still holds
// will be re-achieved by the next sweep.
func UndoAchievement(state models.MilestoneState, milestoneID string) models.MilestoneState {
	kept := make([]models.AchievedMilestone, 0, len(state.Achieved))
	for _, record := range state.Achieved {
		if record.MilestoneID != milestoneID {
			kept = append(kept, record)
		}
	}
	state.Achieved = kept
	return state
}

// MigrateAchievementDates corrects records that an earlier buggy sweep stamped
// with the wall-clock day instead of the week's historical date. The same-day
// heuristic only touches auto-sourced (or legacy, source-less) records of
// auto-detectable milestones; manual achievements are never rewritten. Runs
// once, after the due date is available, and is idempotent after that.
func MigrateAchievementDates(state models.MilestoneState, dueDate *time.Time, today time.Time) models.MilestoneState {
	if state.DateMigrationDone || dueDate == nil || dueDate.IsZero() {
		return state
	}

	for index, record := range state.Achieved {
		if record.Source == models.AchievementSourceManual {
			continue
		}
		definition, found := FindDefinition(state.Custom, record.MilestoneID)
		if !found || !definition.IsAutoDetectable {
			continue
		}
		if !SameDay(record.AchievedAt, today) {
			continue
		}
		state.Achieved[index].AchievedAt = DateForWeek(definition.Week, *dueDate)
		state.Achieved[index].Source = models.AchievementSourceAuto
	}

	state.DateMigrationDone = true
	return state
}

// MilestoneProgress is achieved over total, customs included, so the
// denominator grows over the profile's lifetime.
func MilestoneProgress(state models.MilestoneState) float64 {
	total := len(models.DefaultMilestoneDefinitions()) + len(state.Custom)
	if total == 0 {
		return 0
	}
	return float64(len(state.Achieved)) / float64(total) * 100
}

// UpcomingMilestones lists not-yet-achieved definitions ordered by week.
// A non-positive limit means no limit.
func UpcomingMilestones(state models.MilestoneState, limit int) []models.MilestoneDefinition {
	achievedByID := state.AchievedByMilestoneID()
	upcoming := make([]models.MilestoneDefinition, 0)
	for _, definition := range AllDefinitions(state.Custom) {
		if _, exists := achievedByID[definition.ID]; exists {
			continue
		}
		upcoming = append(upcoming, definition)
		if limit > 0 && len(upcoming) == limit {
			break
		}
	}
	return upcoming
}

// AchievedMilestones returns achieved records ordered by achievement date,
// oldest first.
func AchievedMilestones(state models.MilestoneState) []models.AchievedMilestone {
	achieved := make([]models.AchievedMilestone, 0, len(state.Achieved))
	achieved = append(achieved, state.Achieved...)
	sort.SliceStable(achieved, func(i, j int) bool {
		return achieved[i].AchievedAt.Before(achieved[j].AchievedAt)
	})
	return achieved
}
