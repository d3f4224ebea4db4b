package models

import "time"

const (
	// GestationDays is the fixed pregnancy term used for every date
	// conversion (Naegele's rule).
	GestationDays = 280

	MaxWeek      = 40
	FullTermWeek = 37
)

type PregnancyProfile struct {
	DueDate             *time.Time `json:"due_date,omitempty"`
	LastMenstrualPeriod *time.Time `json:"last_menstrual_period,omitempty"`
	CurrentWeek         int        `json:"current_week"`
	Trimester           int        `json:"trimester"`
}

func (profile PregnancyProfile) HasDueDate() bool {
	return profile.DueDate != nil && !profile.DueDate.IsZero()
}
