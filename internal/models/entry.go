package models

import "time"

type Mood string

const (
	MoodExcellent Mood = "excellent"
	MoodGood      Mood = "good"
	MoodOkay      Mood = "okay"
	MoodLow       Mood = "low"
	MoodDifficult Mood = "difficult"
)

func (mood Mood) Valid() bool {
	_, ok := moodScores[mood]
	return ok
}

// Score maps a mood onto the fixed five-point scale used by averages.
func (mood Mood) Score() int {
	return moodScores[mood]
}

var moodScores = map[Mood]int{
	MoodExcellent: 5,
	MoodGood:      4,
	MoodOkay:      3,
	MoodLow:       2,
	MoodDifficult: 1,
}

type SymptomKind string

const (
	SymptomNausea     SymptomKind = "nausea"
	SymptomFatigue    SymptomKind = "fatigue"
	SymptomHeartburn  SymptomKind = "heartburn"
	SymptomBackPain   SymptomKind = "back_pain"
	SymptomSwelling   SymptomKind = "swelling"
	SymptomInsomnia   SymptomKind = "insomnia"
	SymptomCravings   SymptomKind = "cravings"
	SymptomHeadache   SymptomKind = "headache"
	SymptomDizziness  SymptomKind = "dizziness"
	SymptomTenderness SymptomKind = "tenderness"
)

func (kind SymptomKind) Valid() bool {
	switch kind {
	case SymptomNausea, SymptomFatigue, SymptomHeartburn, SymptomBackPain,
		SymptomSwelling, SymptomInsomnia, SymptomCravings, SymptomHeadache,
		SymptomDizziness, SymptomTenderness:
		return true
	default:
		return false
	}
}

type MoodEntry struct {
	Date      time.Time `json:"date"`
	Mood      Mood      `json:"mood"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SymptomEntry struct {
	Date      time.Time     `json:"date"`
	Symptoms  []SymptomKind `json:"symptoms"`
	Severity  int           `json:"severity"`
	Note      string        `json:"note,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type JournalEntry struct {
	Date      time.Time `json:"date"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// The three persisted entry slices. Each log upserts by calendar day.
type MoodLog struct {
	Entries []MoodEntry `json:"entries"`
}

type SymptomLog struct {
	Entries []SymptomEntry `json:"entries"`
}

type JournalLog struct {
	Entries []JournalEntry `json:"entries"`
}
