package server

import (
	"net/http"
	"sort"

	"github.com/mindtrack/mindtrack/models"
	"github.com/mindtrack/mindtrack/normalize"
	"github.com/mindtrack/mindtrack/stats"
)

// snapshot copies a user's collections with derived fields filled in, so the
// reducers below see the same annotated shapes the client works with.
func (s *Server) snapshot(record *userRecord) ([]models.Habit, []models.Mood, []models.Goal) {
	s.mu.Lock()
	habits := append([]models.Habit(nil), record.habits...)
	moods := append([]models.Mood(nil), record.moods...)
	goals := make([]models.Goal, len(record.goals))
	for i, g := range record.goals {
		s.recalcGoal(&g)
		goals[i] = g
	}
	s.mu.Unlock()
	return normalize.AnnotateHabits(habits), normalize.AnnotateMoods(moods), normalize.AnnotateGoals(goals)
}

func (s *Server) handleDashboardAnalytics(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	habits, moods, goals := s.snapshot(record)
	analytics := models.DashboardAnalytics{
		Habits: stats.CalculateHabitStats(habits),
		Moods:  stats.CalculateMoodStats(moods),
		Goals:  stats.CalculateGoalStats(goals),
	}
	writeWrapped(w, http.StatusOK, analytics)
}

func (s *Server) handleSocialStats(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	habits, moods, goals := s.snapshot(record)

	habitStats := stats.CalculateHabitStats(habits)
	goalStats := stats.CalculateGoalStats(goals)

	var totalCompletions int
	days := make(map[string]bool)
	for _, h := range habits {
		totalCompletions += len(h.Completions)
		for _, c := range h.Completions {
			if len(c.Date) >= 10 {
				days[c.Date[:10]] = true
			}
		}
	}
	for _, m := range moods {
		if len(m.Date) >= 10 {
			days[m.Date[:10]] = true
		}
	}

	var currentStreak int
	for _, h := range habits {
		if h.CurrentStreak > currentStreak {
			currentStreak = h.CurrentStreak
		}
	}

	social := models.SocialStats{
		TotalHabits:          habitStats.TotalHabits,
		CompletedToday:       habitStats.CompletedToday,
		CurrentStreak:        currentStreak,
		TotalHabitsCompleted: totalCompletions,
		TotalGoals:           goalStats.TotalGoals,
		CompletedGoals:       goalStats.CompletedGoals,
		TotalDaysTracked:     len(days),
	}
	writeBare(w, http.StatusOK, social)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	entries := make([]models.LeaderboardEntry, 0, len(s.users))
	for _, record := range s.users {
		var score int
		for _, h := range record.habits {
			score += len(h.Completions)
		}
		entries = append(entries, models.LeaderboardEntry{User: record.user, Score: score})
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].User.Name < entries[j].User.Name
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	writeBare(w, http.StatusOK, models.Leaderboard{Leaderboard: entries})
}

// motivations is the scripted message pool; the pick rotates daily.
var motivations = []string{
	"Small steps every day add up to big change.",
	"Your streak is proof you can keep a promise to yourself.",
	"Progress, not perfection.",
	"The best time to start was yesterday. The second best is now.",
	"Consistency beats intensity.",
}

func (s *Server) handleMotivation(w http.ResponseWriter, r *http.Request) {
	message := motivations[s.now().YearDay()%len(motivations)]
	writeBare(w, http.StatusOK, models.Motivation{Message: message})
}
