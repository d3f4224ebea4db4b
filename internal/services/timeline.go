package services

import (
	"time"

	"github.com/terraincognita07/gravida/internal/models"
)

// Timeline calculators. All of them are total: missing or out-of-range inputs
// clamp to a sensible value instead of failing, so callers never have to guard
// a date edit.

// CurrentWeek converts a due date and a reference day into the pregnancy week,
// clamped to [0, MaxWeek]. A missing due date yields week 0.
func CurrentWeek(dueDate *time.Time, today time.Time) int {
	if dueDate == nil || dueDate.IsZero() {
		return 0
	}

	startDate := PregnancyStart(*dueDate)
	days := DaysBetween(startDate, today)
	if days < 0 {
		return 0
	}

	week := days / 7
	if week > models.MaxWeek {
		return models.MaxWeek
	}
	return week
}

// PregnancyStart is the first day of the pregnancy: due date minus the fixed
// 280-day term.
func PregnancyStart(dueDate time.Time) time.Time {
	return dueDate.AddDate(0, 0, -models.GestationDays)
}

// DueDateFromLMP applies Naegele's rule: last menstrual period plus 280 days.
func DueDateFromLMP(lmp time.Time) time.Time {
	return lmp.AddDate(0, 0, models.GestationDays)
}

func LMPFromDueDate(dueDate time.Time) time.Time {
	return dueDate.AddDate(0, 0, -models.GestationDays)
}

// TrimesterForWeek treats week 12 as the last week of the first trimester and
// week 27 as the last week of the second.
func TrimesterForWeek(week int) int {
	switch {
	case week <= 12:
		return 1
	case week <= 27:
		return 2
	default:
		return 3
	}
}

func ProgressPercentage(week int) float64 {
	progress := float64(week) / float64(models.MaxWeek) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

func DaysRemaining(dueDate *time.Time, today time.Time) int {
	if dueDate == nil || dueDate.IsZero() {
		return 0
	}
	return DaysBetween(today, *dueDate)
}

func IsOverdue(dueDate *time.Time, today time.Time) bool {
	if dueDate == nil || dueDate.IsZero() {
		return false
	}
	return DaysRemaining(dueDate, today) < 0
}

func IsFullTerm(week int) bool {
	return week >= models.FullTermWeek
}

// DateForWeek is the day a given pregnancy week historically began. Auto
// achievement dates come from here, never from the wall clock.
func DateForWeek(week int, dueDate time.Time) time.Time {
	return PregnancyStart(dueDate).AddDate(0, 0, week*7)
}

// RecomputeProfile derives week and trimester together from the profile's due
// date. The two fields are never updated independently.
func RecomputeProfile(profile models.PregnancyProfile, today time.Time) models.PregnancyProfile {
	profile.CurrentWeek = CurrentWeek(profile.DueDate, today)
	profile.Trimester = TrimesterForWeek(profile.CurrentWeek)
	return profile
}

// SetDueDate updates the due date, back-fills the matching LMP and recomputes
// the derived fields.
func SetDueDate(profile models.PregnancyProfile, dueDate time.Time, today time.Time) models.PregnancyProfile {
	due := dueDate
	lmp := LMPFromDueDate(due)
	profile.DueDate = &due
	profile.LastMenstrualPeriod = &lmp
	return RecomputeProfile(profile, today)
}

// SetLastMenstrualPeriod updates the LMP, derives the due date from it and
// recomputes the derived fields.
func SetLastMenstrualPeriod(profile models.PregnancyProfile, lmp time.Time, today time.Time) models.PregnancyProfile {
	period := lmp
	due := DueDateFromLMP(period)
	profile.LastMenstrualPeriod = &period
	profile.DueDate = &due
	return RecomputeProfile(profile, today)
}
