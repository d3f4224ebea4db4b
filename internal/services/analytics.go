package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/terraincognita07/gravida/internal/models"
)

// CurrentStreak walks backward day-by-day from today and counts consecutive
// days with an entry, stopping at the first missing day.
func CurrentStreak(entryDates []time.Time, today time.Time) int {
	if len(entryDates) == 0 {
		return 0
	}

	byDay := make(map[string]bool, len(entryDates))
	for _, date := range entryDates {
		byDay[DayKey(date)] = true
	}

	streak := 0
	for day := today; byDay[DayKey(day)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func MoodEntryDates(entries []models.MoodEntry) []time.Time {
	dates := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		dates = append(dates, entry.Date)
	}
	return dates
}

func JournalEntryDates(entries []models.JournalEntry) []time.Time {
	dates := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		dates = append(dates, entry.Date)
	}
	return dates
}

// ISOWeekKey buckets a date by ISO year and week, e.g. "2025-W33".
func ISOWeekKey(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// WeeklyMoodAverages maps mood entries onto the fixed five-point scale and
// averages them per ISO week bucket.
func WeeklyMoodAverages(entries []models.MoodEntry) map[string]float64 {
	return moodAveragesByBucket(entries, ISOWeekKey)
}

func MonthlyMoodAverages(entries []models.MoodEntry) map[string]float64 {
	return moodAveragesByBucket(entries, MonthKey)
}

func moodAveragesByBucket(entries []models.MoodEntry, bucketKey func(time.Time) string) map[string]float64 {
	totals := make(map[string]int)
	counts := make(map[string]int)
	for _, entry := range entries {
		if !entry.Mood.Valid() {
			continue
		}
		key := bucketKey(entry.Date)
		totals[key] += entry.Mood.Score()
		counts[key]++
	}

	averages := make(map[string]float64, len(totals))
	for key, total := range totals {
		averages[key] = float64(total) / float64(counts[key])
	}
	return averages
}

// AverageMoodSince averages mood scores for entries on or after the cutoff
// day. Rolling 7- and 30-day windows are cutoff filters over the same data.
func AverageMoodSince(entries []models.MoodEntry, cutoff time.Time) float64 {
	total := 0
	count := 0
	cutoffKey := DayKey(cutoff)
	for _, entry := range entries {
		if !entry.Mood.Valid() || DayKey(entry.Date) < cutoffKey {
			continue
		}
		total += entry.Mood.Score()
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// MostCommonMood is the frequency argmax over mood entries. Ties resolve to
// the mood seen first in entry order; the tie-break is implementation-defined,
// not a guarantee.
func MostCommonMood(entries []models.MoodEntry) (models.Mood, bool) {
	counts := make(map[models.Mood]int)
	order := make([]models.Mood, 0)
	for _, entry := range entries {
		if !entry.Mood.Valid() {
			continue
		}
		if counts[entry.Mood] == 0 {
			order = append(order, entry.Mood)
		}
		counts[entry.Mood]++
	}

	best := models.Mood("")
	bestCount := 0
	for _, mood := range order {
		if counts[mood] > bestCount {
			best = mood
			bestCount = counts[mood]
		}
	}
	return best, bestCount > 0
}

// MostCommonSymptom is the frequency argmax over all symptoms logged across
// entries, with the same first-occurrence tie order as MostCommonMood.
func MostCommonSymptom(entries []models.SymptomEntry) (models.SymptomKind, bool) {
	counts := make(map[models.SymptomKind]int)
	order := make([]models.SymptomKind, 0)
	for _, entry := range entries {
		for _, kind := range entry.Symptoms {
			if !kind.Valid() {
				continue
			}
			if counts[kind] == 0 {
				order = append(order, kind)
			}
			counts[kind]++
		}
	}

	best := models.SymptomKind("")
	bestCount := 0
	for _, kind := range order {
		if counts[kind] > bestCount {
			best = kind
			bestCount = counts[kind]
		}
	}
	return best, bestCount > 0
}

var markupTagPattern = regexp.MustCompile(`<[^>]*>`)

// WordCount strips markup and counts whitespace-separated tokens.
func WordCount(text string) int {
	stripped := markupTagPattern.ReplaceAllString(text, " ")
	return len(strings.Fields(stripped))
}

// ReadingTimeMinutes assumes 200 words per minute, rounded up.
func ReadingTimeMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + 199) / 200
}

type StatsOverview struct {
	MoodStreak        int                `json:"mood_streak"`
	JournalStreak     int                `json:"journal_streak"`
	MoodAverage7Days  float64            `json:"mood_average_7_days"`
	MoodAverage30Days float64            `json:"mood_average_30_days"`
	WeeklyMoodAverage map[string]float64 `json:"weekly_mood_average"`
	MostCommonMood    models.Mood        `json:"most_common_mood,omitempty"`
	MostCommonSymptom models.SymptomKind `json:"most_common_symptom,omitempty"`
	TotalMoodEntries  int                `json:"total_mood_entries"`
	TotalSymptomDays  int                `json:"total_symptom_days"`
	TotalJournalWords int                `json:"total_journal_words"`
	ReadingTimeTotal  int                `json:"reading_time_minutes"`
}

// BuildStatsOverview derives every statistic the dashboard shows from the
// three entry logs.
func BuildStatsOverview(moods models.MoodLog, symptoms models.SymptomLog, journal models.JournalLog, today time.Time) StatsOverview {
	overview := StatsOverview{
		MoodStreak:        CurrentStreak(MoodEntryDates(moods.Entries), today),
		JournalStreak:     CurrentStreak(JournalEntryDates(journal.Entries), today),
		MoodAverage7Days:  AverageMoodSince(moods.Entries, today.AddDate(0, 0, -6)),
		MoodAverage30Days: AverageMoodSince(moods.Entries, today.AddDate(0, 0, -29)),
		WeeklyMoodAverage: WeeklyMoodAverages(moods.Entries),
		TotalMoodEntries:  len(moods.Entries),
		TotalSymptomDays:  len(symptoms.Entries),
	}

	if mood, ok := MostCommonMood(moods.Entries); ok {
		overview.MostCommonMood = mood
	}
	if kind, ok := MostCommonSymptom(symptoms.Entries); ok {
		overview.MostCommonSymptom = kind
	}

	for _, entry := range journal.Entries {
		overview.TotalJournalWords += WordCount(entry.Body)
	}
	overview.ReadingTimeTotal = ReadingTimeMinutes(overview.TotalJournalWords)

	return overview
}
