package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/gravida/internal/models"
)

var (
	ErrInvalidMood        = errors.New("invalid mood value")
	ErrInvalidSymptomKind = errors.New("invalid symptom kind")
	ErrInvalidSeverity    = errors.New("invalid symptom severity")
	ErrEmptyJournalBody   = errors.New("journal body must not be empty")
)

type MoodEntryInput struct {
	Mood models.Mood
	Note string
}

type SymptomEntryInput struct {
	Symptoms []models.SymptomKind
	Severity int
	Note     string
}

type JournalEntryInput struct {
	Title string
	Body  string
}

// UpsertMoodEntry writes the mood for a calendar day. A second write for the
// same day mutates the existing record; the log never holds two entries for
// one day.
func UpsertMoodEntry(log models.MoodLog, day time.Time, input MoodEntryInput, now time.Time) (models.MoodLog, error) {
	if !input.Mood.Valid() {
		return log, ErrInvalidMood
	}

	for index, entry := range log.Entries {
		if SameDay(entry.Date, day) {
			log.Entries[index].Mood = input.Mood
			log.Entries[index].Note = input.Note
			log.Entries[index].UpdatedAt = now
			return log, nil
		}
	}

	log.Entries = append(log.Entries, models.MoodEntry{
		Date:      day,
		Mood:      input.Mood,
		Note:      input.Note,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return log, nil
}

func UpsertSymptomEntry(log models.SymptomLog, day time.Time, input SymptomEntryInput, now time.Time) (models.SymptomLog, error) {
	for _, kind := range input.Symptoms {
		if !kind.Valid() {
			return log, ErrInvalidSymptomKind
		}
	}
	if input.Severity < 0 || input.Severity > 5 {
		return log, ErrInvalidSeverity
	}

	symptoms := dedupeSymptoms(input.Symptoms)

	for index, entry := range log.Entries {
		if SameDay(entry.Date, day) {
			log.Entries[index].Symptoms = symptoms
			log.Entries[index].Severity = input.Severity
			log.Entries[index].Note = input.Note
			log.Entries[index].UpdatedAt = now
			return log, nil
		}
	}

	log.Entries = append(log.Entries, models.SymptomEntry{
		Date:      day,
		Symptoms:  symptoms,
		Severity:  input.Severity,
		Note:      input.Note,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return log, nil
}

func UpsertJournalEntry(log models.JournalLog, day time.Time, input JournalEntryInput, now time.Time) (models.JournalLog, error) {
	if strings.TrimSpace(input.Body) == "" {
		return log, ErrEmptyJournalBody
	}

	for index, entry := range log.Entries {
		if SameDay(entry.Date, day) {
			log.Entries[index].Title = input.Title
			log.Entries[index].Body = input.Body
			log.Entries[index].UpdatedAt = now
			return log, nil
		}
	}

	log.Entries = append(log.Entries, models.JournalEntry{
		Date:      day,
		Title:     input.Title,
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return log, nil
}

func dedupeSymptoms(kinds []models.SymptomKind) []models.SymptomKind {
	seen := make(map[models.SymptomKind]struct{}, len(kinds))
	unique := make([]models.SymptomKind, 0, len(kinds))
	for _, kind := range kinds {
		if _, exists := seen[kind]; exists {
			continue
		}
		seen[kind] = struct{}{}
		unique = append(unique, kind)
	}
	return unique
}
