package api

import (
	"time"

	"github.com/terraincognita07/gravida/internal/models"
	"github.com/terraincognita07/gravida/internal/services"
	"github.com/terraincognita07/gravida/internal/state"
	"github.com/terraincognita07/gravida/pkg/logger"
)

func (handler *Handler) loadProfile(userID uint) (models.PregnancyProfile, error) {
	profile := models.PregnancyProfile{}
	err := handler.gateway.LoadSlice(userID, state.KeyProfile, &profile)
	return profile, err
}

func (handler *Handler) loadMilestones(userID uint) (models.MilestoneState, error) {
	milestones := models.MilestoneState{}
	err := handler.gateway.LoadSlice(userID, state.KeyMilestones, &milestones)
	return milestones, err
}

func (handler *Handler) loadMoodLog(userID uint) (models.MoodLog, error) {
	log := models.MoodLog{}
	err := handler.gateway.LoadSlice(userID, state.KeyMoods, &log)
	return log, err
}

func (handler *Handler) loadSymptomLog(userID uint) (models.SymptomLog, error) {
	log := models.SymptomLog{}
	err := handler.gateway.LoadSlice(userID, state.KeySymptoms, &log)
	return log, err
}

func (handler *Handler) loadJournalLog(userID uint) (models.JournalLog, error) {
	log := models.JournalLog{}
	err := handler.gateway.LoadSlice(userID, state.KeyJournal, &log)
	return log, err
}

// refreshMilestones runs the engine's settled-state pipeline: the one-shot
// date migration, then the idempotent auto-detection sweep. Celebrations are
// handed to the listener without waiting.
func (handler *Handler) refreshMilestones(milestones models.MilestoneState, profile models.PregnancyProfile, today time.Time) models.MilestoneState {
	milestones = services.MigrateAchievementDates(milestones, profile.DueDate, today)
	milestones, celebrations := services.EvaluateAutoAchievements(milestones, profile.CurrentWeek, profile.DueDate)
	handler.emitCelebrations(celebrations)
	return milestones
}

// loadFreshMilestones loads the milestone slice and settles it against the
// week the clock says it is now, so a process restarted weeks later does not
// serve a stale achieved set until the next midnight tick or date edit. The
// write only happens when the migration or sweep actually changed something.
func (handler *Handler) loadFreshMilestones(userID uint) (models.MilestoneState, error) {
	milestones, err := handler.loadMilestones(userID)
	if err != nil {
		return milestones, err
	}
	profile, err := handler.loadProfile(userID)
	if err != nil {
		return milestones, err
	}

	today := handler.today()
	profile = services.RecomputeProfile(profile, today)

	achievedBefore := len(milestones.Achieved)
	migratedBefore := milestones.DateMigrationDone
	milestones = handler.refreshMilestones(milestones, profile, today)
	if len(milestones.Achieved) == achievedBefore && milestones.DateMigrationDone == migratedBefore {
		return milestones, nil
	}

	if err := handler.gateway.SaveSlice(userID, state.KeyMilestones, milestones); err != nil {
		return milestones, err
	}
	return milestones, nil
}

func (handler *Handler) emitCelebrations(celebrations []services.Celebration) {
	for _, celebration := range celebrations {
		handler.celebrate(celebration)
	}
}

// OnNewDay re-derives the owner's week at the daily tick and lets the sweep
// pick up newly reached auto milestones.
func (handler *Handler) OnNewDay(today time.Time) {
	user, err := handler.repos.Users.FindOwner()
	if err != nil {
		return
	}

	profile, err := handler.loadProfile(user.ID)
	if err != nil {
		logger.Log.WithField("error", err.Error()).Warn("daily refresh: load profile failed")
		return
	}
	milestones, err := handler.loadMilestones(user.ID)
	if err != nil {
		logger.Log.WithField("error", err.Error()).Warn("daily refresh: load milestones failed")
		return
	}

	profile = services.RecomputeProfile(profile, today)
	milestones = handler.refreshMilestones(milestones, profile, today)

	if err := handler.gateway.SaveSlice(user.ID, state.KeyProfile, profile); err != nil {
		logger.Log.WithField("error", err.Error()).Warn("daily refresh: save profile failed")
	}
	if err := handler.gateway.SaveSlice(user.ID, state.KeyMilestones, milestones); err != nil {
		logger.Log.WithField("error", err.Error()).Warn("daily refresh: save milestones failed")
	}
}
