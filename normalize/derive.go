package normalize

import (
	"time"

	"github.com/mindtrack/mindtrack/models"
)

// dateLayouts are the timestamp formats the backend has been observed to
// emit for progress history entries.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// canonicalDate rewrites a timestamp string to RFC 3339 in UTC. Unparseable
// values are returned unchanged; a bad date is not worth losing the entry
// over.
func canonicalDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return s
}

// AnnotateHabit fills in the flattened streak fields from the nested streak
// record when present and defaults the rest. IsCompletedToday is passed
// through untouched: the server owns "today". Annotating an already-annotated
// habit is a no-op.
func AnnotateHabit(h models.Habit) models.Habit {
	if h.Streak != nil {
		h.CurrentStreak = h.Streak.Current
		h.LongestStreak = h.Streak.Longest
	}
	if h.CurrentStreak < 0 {
		h.CurrentStreak = 0
	}
	if h.LongestStreak < 0 {
		h.LongestStreak = 0
	}
	return h
}

// AnnotateHabits applies AnnotateHabit element-wise, returning a new slice.
func AnnotateHabits(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, len(habits))
	for i, h := range habits {
		out[i] = AnnotateHabit(h)
	}
	return out
}

// AnnotateMood passes a mood entry through unchanged. Mood score mapping is a
// presentation concern and nothing is fabricated beyond what the server sent.
func AnnotateMood(m models.Mood) models.Mood {
	return m
}

// AnnotateMoods applies AnnotateMood element-wise, returning a new slice.
func AnnotateMoods(moods []models.Mood) []models.Mood {
	out := make([]models.Mood, len(moods))
	copy(out, moods)
	return out
}

// AnnotateGoal derives CurrentValue from the latest progress entry when the
// server omitted it, computes ProgressPercentage with a division-by-zero
// guard, clamps it to [0, 100] and canonicalizes progress entry dates.
// Annotating an already-annotated goal is a no-op.
func AnnotateGoal(g models.Goal) models.Goal {
	if len(g.Progress) > 0 {
		progress := make([]models.ProgressEntry, len(g.Progress))
		for i, p := range g.Progress {
			p.Date = canonicalDate(p.Date)
			progress[i] = p
		}
		g.Progress = progress
	}

	if g.CurrentValue == nil {
		var current float64
		if len(g.Progress) > 0 {
			current = g.Progress[len(g.Progress)-1].Value
		}
		g.CurrentValue = &current
	}

	if g.ProgressPercentage == nil {
		var pct float64
		if g.TargetValue > 0 {
			pct = *g.CurrentValue / g.TargetValue * 100
		}
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		g.ProgressPercentage = &pct
	}

	return g
}

// AnnotateGoals applies AnnotateGoal element-wise, returning a new slice.
func AnnotateGoals(goals []models.Goal) []models.Goal {
	out := make([]models.Goal, len(goals))
	for i, g := range goals {
		out[i] = AnnotateGoal(g)
	}
	return out
}
