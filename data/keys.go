// Package data ties the REST client, the envelope normalizer, the derived
// field annotators and the query cache into the single data service every
// view reads through.
package data

// Canonical collection names. Every view reads through these keys so that
// invalidating a name reaches every surface showing data derived from it.
const (
	KeyHabits             = "habits"
	KeyTodayHabits        = "todayHabits"
	KeyMoods              = "moods"
	KeyRecentMoods        = "recentMoods"
	KeyGoals              = "goals"
	KeyActiveGoals        = "activeGoals"
	KeyDashboardAnalytics = "dashboardAnalytics"
	KeySocialStats        = "socialStats"
	KeyLeaderboard        = "leaderboard"
	KeyMotivation         = "motivation"
)
