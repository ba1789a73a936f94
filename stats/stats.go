// Package stats reduces normalized, annotated collections into the scalar
// statistics the dashboard, analytics and social views render. Every function
// is deterministic and side-effect-free so results can be memoized per
// collection contents.
package stats

import (
	"math"

	"github.com/mindtrack/mindtrack/models"
)

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// CalculateHabitStats reduces a habit collection. An empty collection yields
// all zeroes, never a division error.
func CalculateHabitStats(habits []models.Habit) models.HabitStats {
	s := models.HabitStats{TotalHabits: len(habits)}
	for _, h := range habits {
		if h.IsCompletedToday {
			s.CompletedToday++
		}
		s.TotalStreak += h.CurrentStreak
		if h.LongestStreak > s.LongestStreak {
			s.LongestStreak = h.LongestStreak
		}
	}
	if s.TotalHabits > 0 {
		s.CompletionRate = int(math.Round(float64(s.CompletedToday) / float64(s.TotalHabits) * 100))
		s.AverageStreak = int(math.Round(float64(s.TotalStreak) / float64(s.TotalHabits)))
	}
	return s
}

// CalculateMoodStats reduces a mood collection. Averages are rounded to one
// decimal place and are 0 for an empty collection.
func CalculateMoodStats(moods []models.Mood) models.MoodStats {
	s := models.MoodStats{TotalEntries: len(moods)}
	if s.TotalEntries == 0 {
		return s
	}
	var mood, energy, stress float64
	for _, m := range moods {
		mood += m.MoodScore
		energy += m.Energy
		stress += m.Stress
	}
	n := float64(s.TotalEntries)
	s.AverageMood = round1(mood / n)
	s.AverageEnergy = round1(energy / n)
	s.AverageStress = round1(stress / n)
	return s
}

// CalculateGoalStats reduces a goal collection. AverageProgress is over all
// goals, using the annotated progress percentage.
func CalculateGoalStats(goals []models.Goal) models.GoalStats {
	s := models.GoalStats{TotalGoals: len(goals)}
	var progress float64
	for _, g := range goals {
		switch g.Status {
		case "active":
			s.ActiveGoals++
		case "completed":
			s.CompletedGoals++
		}
		progress += g.Percent()
	}
	if s.TotalGoals > 0 {
		s.AverageProgress = int(math.Round(progress / float64(s.TotalGoals)))
	}
	return s
}
