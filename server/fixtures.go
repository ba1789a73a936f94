package server

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindtrack/mindtrack/models"
)

// DemoEmail and DemoPassword are the seeded demo account credentials.
const (
	DemoEmail    = "demo@mindtrack.io"
	DemoPassword = "mindtrack1"
)

// seed populates the demo account and a couple of leaderboard neighbors.
func (s *Server) seed() {
	now := s.now()
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).UTC().Format(time.RFC3339)
	}

	demo := s.addUser("Demo User", DemoEmail, DemoPassword)
	demo.habits = []models.Habit{
		{
			ID: uuid.NewString(), Name: "Morning run", Category: "fitness",
			Frequency: "daily", TargetValue: 1, Unit: "times", Icon: "🏃", Color: "#22c55e",
			IsActive: true, Streak: &models.Streak{Current: 4, Longest: 11},
			Completions: []models.Completion{
				{Date: day(-4)}, {Date: day(-3)}, {Date: day(-2)}, {Date: day(-1)},
			},
		},
		{
			ID: uuid.NewString(), Name: "Read 20 pages", Category: "learning",
			Frequency: "daily", TargetValue: 20, Unit: "pages", Icon: "📚", Color: "#3b82f6",
			IsActive: true, Streak: &models.Streak{Current: 9, Longest: 9},
		},
		{
			ID: uuid.NewString(), Name: "Meditate", Category: "mindfulness",
			Frequency: "daily", TargetValue: 10, Unit: "minutes", Icon: "🧘", Color: "#a855f7",
			IsActive: true, Streak: &models.Streak{Current: 0, Longest: 5},
		},
	}
	demo.moods = []models.Mood{
		{ID: uuid.NewString(), Date: day(-2), Mood: "neutral", MoodScore: 3, Energy: 5, Stress: 6,
			Sleep: &models.Sleep{Hours: 6.5, Quality: "fair"}},
		{ID: uuid.NewString(), Date: day(-1), Mood: "happy", MoodScore: 4, Energy: 7, Stress: 4,
			Sleep: &models.Sleep{Hours: 8, Quality: "good"}, Activities: []string{"exercise", "reading"}},
	}
	demo.goals = []models.Goal{
		{
			ID: uuid.NewString(), Title: "Run 100 km", Category: "fitness", Type: "target",
			TargetValue: 100, Unit: "km", Status: "active", Priority: "high",
			Deadline: now.AddDate(0, 2, 0).Format("2006-01-02"),
			Progress: []models.ProgressEntry{
				{Date: day(-20), Value: 12},
				{Date: day(-10), Value: 31},
				{Date: day(-2), Value: 44, Notes: "long run"},
			},
		},
		{
			ID: uuid.NewString(), Title: "Finish two books", Category: "learning", Type: "target",
			TargetValue: 2, Unit: "books", Status: "completed", Priority: "medium",
			Progress: []models.ProgressEntry{
				{Date: day(-30), Value: 1},
				{Date: day(-5), Value: 2},
			},
		},
	}

	// Leaderboard neighbors with fixed completion histories.
	ada := s.addUser("Ada", "ada@mindtrack.io", "wellness42")
	ada.habits = []models.Habit{{
		ID: uuid.NewString(), Name: "Journal", Category: "mindfulness", Frequency: "daily",
		TargetValue: 1, IsActive: true, Streak: &models.Streak{Current: 21, Longest: 21},
		Completions: seedCompletions(now, 21),
	}}
	sam := s.addUser("Sam", "sam@mindtrack.io", "wellness42")
	sam.habits = []models.Habit{{
		ID: uuid.NewString(), Name: "Stretch", Category: "fitness", Frequency: "daily",
		TargetValue: 1, IsActive: true, Streak: &models.Streak{Current: 3, Longest: 14},
		Completions: seedCompletions(now, 8),
	}}
}

// seedCompletions builds n daily completions ending yesterday.
func seedCompletions(now time.Time, n int) []models.Completion {
	completions := make([]models.Completion, n)
	for i := 0; i < n; i++ {
		completions[i] = models.Completion{
			Date: now.AddDate(0, 0, i-n).UTC().Format(time.RFC3339),
		}
	}
	return completions
}

// addUser registers a fixture account. Password hashing uses MinCost; these
// are seeded fixtures, not real credentials.
func (s *Server) addUser(name, email, password string) *userRecord {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	record := &userRecord{
		user:         models.User{ID: uuid.NewString(), Name: name, Email: email},
		passwordHash: hash,
		createdAt:    s.now(),
	}
	s.users[record.user.ID] = record
	s.byEmail[email] = record.user.ID
	return record
}
