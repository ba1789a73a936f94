package models

// Streak is the nested streak record some habit endpoints return instead of
// the flattened currentStreak/longestStreak fields.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Completion represents a single recorded completion of a habit.
type Completion struct {
	Date  string  `json:"date"`
	Value float64 `json:"value,omitempty"`
	Notes string  `json:"notes,omitempty"`
}

// Habit is a tracked habit. The server is authoritative for IsCompletedToday;
// the flattened streak fields are filled in by the normalize package when only
// the nested Streak record is present.
type Habit struct {
	ID               string       `json:"_id"`
	Name             string       `json:"name"`
	Description      string       `json:"description,omitempty"`
	Category         string       `json:"category"`
	Frequency        string       `json:"frequency"` // daily, weekly or monthly
	TargetValue      float64      `json:"targetValue"`
	Unit             string       `json:"unit,omitempty"`
	Color            string       `json:"color,omitempty"`
	Icon             string       `json:"icon,omitempty"`
	IsActive         bool         `json:"isActive"`
	Streak           *Streak      `json:"streak,omitempty"`
	Completions      []Completion `json:"completions,omitempty"`
	IsCompletedToday bool         `json:"isCompletedToday"`
	CurrentStreak    int          `json:"currentStreak"`
	LongestStreak    int          `json:"longestStreak"`
}

// Sleep is the optional sleep record attached to a mood entry.
type Sleep struct {
	Hours   float64 `json:"hours"`
	Quality string  `json:"quality,omitempty"`
}

// Mood is a single mood entry. Mood holds one of the five ordinal labels
// (very-happy, happy, neutral, sad, very-sad); MoodScore is the server-side
// 1-5 mapping of that label and is never recomputed by the client.
type Mood struct {
	ID         string   `json:"_id"`
	Date       string   `json:"date"`
	Mood       string   `json:"mood"`
	MoodScore  float64  `json:"moodScore,omitempty"`
	Energy     float64  `json:"energy"`
	Stress     float64  `json:"stress"`
	Sleep      *Sleep   `json:"sleep,omitempty"`
	Activities []string `json:"activities,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// ProgressEntry is one point in a goal's progress history.
type ProgressEntry struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Notes string  `json:"notes,omitempty"`
}

// Goal is a tracked goal. CurrentValue and ProgressPercentage are pointers
// because several endpoints omit them and the normalize package derives them
// from the progress history; after annotation both are always non-nil.
type Goal struct {
	ID                 string          `json:"_id"`
	Title              string          `json:"title"`
	Description        string          `json:"description,omitempty"`
	Category           string          `json:"category"`
	Type               string          `json:"type"`
	TargetValue        float64         `json:"targetValue"`
	CurrentValue       *float64        `json:"currentValue,omitempty"`
	Unit               string          `json:"unit,omitempty"`
	Deadline           string          `json:"deadline,omitempty"`
	Status             string          `json:"status"` // active, paused, completed or cancelled
	Priority           string          `json:"priority,omitempty"`
	IsPublic           bool            `json:"isPublic,omitempty"`
	Progress           []ProgressEntry `json:"progress"`
	ProgressPercentage *float64        `json:"progressPercentage,omitempty"`
	DaysRemaining      *int            `json:"daysRemaining,omitempty"`
}

// Current returns the goal's current value, defaulting to 0 before annotation.
func (g Goal) Current() float64 {
	if g.CurrentValue == nil {
		return 0
	}
	return *g.CurrentValue
}

// Percent returns the goal's progress percentage, defaulting to 0 before
// annotation.
func (g Goal) Percent() float64 {
	if g.ProgressPercentage == nil {
		return 0
	}
	return *g.ProgressPercentage
}

// User is the authenticated account record returned by the auth endpoints.
type User struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Points int    `json:"points,omitempty"`
}

// HabitStats is the dashboard-level reduction of a habit collection.
type HabitStats struct {
	TotalHabits    int `json:"totalHabits"`
	CompletedToday int `json:"completedToday"`
	CompletionRate int `json:"completionRate"`
	AverageStreak  int `json:"averageStreak"`
	LongestStreak  int `json:"longestStreak"`
	TotalStreak    int `json:"totalStreak"`
}

// MoodStats is the dashboard-level reduction of a mood collection. Averages
// are rounded to one decimal place.
type MoodStats struct {
	TotalEntries  int     `json:"totalEntries"`
	AverageMood   float64 `json:"averageMood"`
	AverageEnergy float64 `json:"averageEnergy"`
	AverageStress float64 `json:"averageStress"`
}

// GoalStats is the dashboard-level reduction of a goal collection.
type GoalStats struct {
	TotalGoals      int `json:"totalGoals"`
	ActiveGoals     int `json:"activeGoals"`
	CompletedGoals  int `json:"completedGoals"`
	AverageProgress int `json:"averageProgress"`
}

// DashboardAnalytics is the combined analytics payload the dashboard view
// renders from.
type DashboardAnalytics struct {
	Habits HabitStats `json:"habits"`
	Moods  MoodStats  `json:"moods"`
	Goals  GoalStats  `json:"goals"`
}

// SocialStats is the per-user statistics payload shown on the social page.
type SocialStats struct {
	TotalHabits          int `json:"totalHabits"`
	CompletedToday       int `json:"completedToday"`
	CurrentStreak        int `json:"currentStreak"`
	TotalHabitsCompleted int `json:"totalHabitsCompleted"`
	TotalGoals           int `json:"totalGoals"`
	CompletedGoals       int `json:"completedGoals"`
	TotalDaysTracked     int `json:"totalDaysTracked"`
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank  int  `json:"rank"`
	User  User `json:"user"`
	Score int  `json:"score"`
}

// Leaderboard is the leaderboard payload.
type Leaderboard struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// Motivation is the daily motivational message payload.
type Motivation struct {
	Message string `json:"message"`
}
