package models

import "time"

type MilestoneImportance string

const (
	ImportanceLow    MilestoneImportance = "low"
	ImportanceMedium MilestoneImportance = "medium"
	ImportanceHigh   MilestoneImportance = "high"
)

func (importance MilestoneImportance) Valid() bool {
	switch importance {
	case ImportanceLow, ImportanceMedium, ImportanceHigh:
		return true
	default:
		return false
	}
}

type MilestoneCategory string

const (
	CategoryMedical     MilestoneCategory = "medical"
	CategoryDevelopment MilestoneCategory = "development"
	CategoryPreparation MilestoneCategory = "preparation"
	CategoryPersonal    MilestoneCategory = "personal"
	CategoryCustom      MilestoneCategory = "custom"
)

type MilestoneDefinition struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Week             int                 `json:"week"`
	Trimester        int                 `json:"trimester"`
	IsAutoDetectable bool                `json:"is_auto_detectable"`
	Importance       MilestoneImportance `json:"importance"`
	Category         MilestoneCategory   `json:"category"`
}

type AchievementSource string

const (
	AchievementSourceAuto   AchievementSource = "auto"
	AchievementSourceManual AchievementSource = "manual"
)

type AchievedMilestone struct {
	ID          string            `json:"id"`
	MilestoneID string            `json:"milestone_id"`
	AchievedAt  time.Time         `json:"achieved_at"`
	Source      AchievementSource `json:"source"`
	Photos      []string          `json:"photos,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Mood        Mood              `json:"mood,omitempty"`
}

// MilestoneState is the persisted milestone slice: the append-only custom
// catalog plus the achieved set, keyed by milestone id.
type MilestoneState struct {
	Custom            []MilestoneDefinition `json:"custom"`
	Achieved          []AchievedMilestone   `json:"achieved"`
	DateMigrationDone bool                  `json:"date_migration_done"`
}

func (state MilestoneState) AchievedByMilestoneID() map[string]AchievedMilestone {
	byID := make(map[string]AchievedMilestone, len(state.Achieved))
	for _, record := range state.Achieved {
		byID[record.MilestoneID] = record
	}
	return byID
}

// DefaultMilestoneDefinitions is the immutable preset catalog. Auto-detectable
// entries are purely week-gated; the rest require an explicit user action.
func DefaultMilestoneDefinitions() []MilestoneDefinition {
	return []MilestoneDefinition{
		{ID: "positive-test", Title: "Positive pregnancy test", Week: 4, Trimester: 1, IsAutoDetectable: false, Importance: ImportanceHigh, Category: CategoryPersonal},
		{ID: "heartbeat-begins", Title: "Baby's heart starts beating", Week: 6, Trimester: 1, IsAutoDetectable: true, Importance: ImportanceHigh, Category: CategoryDevelopment},
		{ID: "first-prenatal-visit", Title: "First prenatal visit", Week: 8, Trimester: 1, IsAutoDetectable: false, Importance: ImportanceHigh, Category: CategoryMedical},
		{ID: "heard-heartbeat", Title: "Heard the heartbeat", Week: 10, Trimester: 1, IsAutoDetectable: false, Importance: ImportanceHigh, Category: CategoryMedical},
		{ID: "first-ultrasound", Title: "First ultrasound photo", Week: 12, Trimester: 1, IsAutoDetectable: false, Importance: ImportanceHigh, Category: CategoryMedical},
		{ID: "second-trimester", Title: "Welcome to the second trimester", Week: 13, Trimester: 2, IsAutoDetectable: true, Importance: ImportanceMedium, Category: CategoryDevelopment},
		{ID: "gender-reveal-possible", Title: "Baby's sex can be determined", Week: 16, Trimester: 2, IsAutoDetectable: true, Importance: ImportanceMedium, Category: CategoryDevelopment},
		{ID: "anatomy-scan", Title: "Anatomy scan", Week: 20, Trimester: 2, IsAutoDetectable: false, Importance: ImportanceHigh, Category: CategoryMedical},
		{ID: "halfway-there", Title: "Halfway there", Week: 20, Trimester: 2, IsAutoDetectable: true, Importance: ImportanceMedium, Category: CategoryDevelopment},
		{ID: "first-kick", Title: "Felt the first kick", Week: 20, Trimester: 2, IsAutoDetectable: false, Importance: ImportanceHigh, Category: CategoryPersonal},
		{ID: "viability-week", Title: "Viability milestone", Week: 24, Trimester: 2, IsAutoDetectable: true, Importance: ImportanceHigh, Category: CategoryDevelopment},
		{ID: "glucose-screening", Title: "Glucose screening", Week: 26, Trimester: 2, IsAutoDetectable: false, Importance: ImportanceMedium, Category: CategoryMedical},
		{ID: "third-trimester", Title: "Welcome to the third trimester", Week: 28, Trimester: 3, IsAutoDetectable: true, Importance: ImportanceMedium, Category: CategoryDevelopment},
		{ID: "baby-shower", Title: "Baby shower", Week: 30, Trimester: 3, IsAutoDetectable: false, Importance: ImportanceLow, Category: CategoryPersonal},
		{ID: "nursery-ready", Title: "Nursery is ready", Week: 32, Trimester: 3, IsAutoDetectable: false, Importance: ImportanceMedium, Category: CategoryPreparation},
		{ID: "hospital-bag", Title: "Hospital bag packed", Week: 35, Trimester: 3, IsAutoDetectable: false, Importance: ImportanceMedium, Category: CategoryPreparation},
		{ID: "full-term", Title: "Full term", Week: 37, Trimester: 3, IsAutoDetectable: true, Importance: ImportanceHigh, Category: CategoryDevelopment},
		{ID: "due-date", Title: "Due date", Week: 40, Trimester: 3, IsAutoDetectable: true, Importance: ImportanceHigh, Category: CategoryDevelopment},
	}
}
