package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindtrack/mindtrack/models"
)

func TestCalculateHabitStatsEmpty(t *testing.T) {
	s := CalculateHabitStats(nil)
	assert.Equal(t, models.HabitStats{}, s)
}

func TestCalculateHabitStats(t *testing.T) {
	habits := []models.Habit{
		{Name: "Meditate", IsCompletedToday: true, CurrentStreak: 4, LongestStreak: 10},
		{Name: "Run", IsCompletedToday: false, CurrentStreak: 2, LongestStreak: 6},
		{Name: "Read", IsCompletedToday: true, CurrentStreak: 0, LongestStreak: 3},
	}
	s := CalculateHabitStats(habits)
	assert.Equal(t, 3, s.TotalHabits)
	assert.Equal(t, 2, s.CompletedToday)
	assert.Equal(t, 67, s.CompletionRate)
	assert.Equal(t, 6, s.TotalStreak)
	assert.Equal(t, 2, s.AverageStreak)
	assert.Equal(t, 10, s.LongestStreak)
}

func TestCalculateHabitStatsCompletionRateRounds(t *testing.T) {
	habits := []models.Habit{
		{IsCompletedToday: true},
		{}, {}, {}, {}, {},
	}
	// 1 of 6 is 16.67%, rounded to 17.
	assert.Equal(t, 17, CalculateHabitStats(habits).CompletionRate)
}

func TestCalculateMoodStatsEmpty(t *testing.T) {
	assert.Equal(t, models.MoodStats{}, CalculateMoodStats(nil))
}

func TestCalculateMoodStats(t *testing.T) {
	moods := []models.Mood{
		{MoodScore: 5, Energy: 4, Stress: 1},
		{MoodScore: 3, Energy: 3, Stress: 2},
		{MoodScore: 4, Energy: 2, Stress: 4},
	}
	s := CalculateMoodStats(moods)
	assert.Equal(t, 3, s.TotalEntries)
	assert.Equal(t, 4.0, s.AverageMood)
	assert.Equal(t, 3.0, s.AverageEnergy)
	assert.Equal(t, 2.3, s.AverageStress)
}

func TestCalculateGoalStatsEmpty(t *testing.T) {
	assert.Equal(t, models.GoalStats{}, CalculateGoalStats(nil))
}

func TestCalculateGoalStats(t *testing.T) {
	pct := func(v float64) *float64 { return &v }
	goals := []models.Goal{
		{Status: "active", ProgressPercentage: pct(40)},
		{Status: "active", ProgressPercentage: pct(10)},
		{Status: "completed", ProgressPercentage: pct(100)},
		{Status: "abandoned", ProgressPercentage: pct(0)},
	}
	s := CalculateGoalStats(goals)
	assert.Equal(t, 4, s.TotalGoals)
	assert.Equal(t, 2, s.ActiveGoals)
	assert.Equal(t, 1, s.CompletedGoals)
	assert.Equal(t, 38, s.AverageProgress)
}

func TestMemoMatchesDirectCalculation(t *testing.T) {
	memo, err := NewMemo(8)
	require.NoError(t, err)

	habits := []models.Habit{
		{Name: "Meditate", IsCompletedToday: true, CurrentStreak: 3, LongestStreak: 5},
		{Name: "Run", CurrentStreak: 1, LongestStreak: 4},
	}
	want := CalculateHabitStats(habits)
	assert.Equal(t, want, memo.HabitStats(habits))
	// Second call comes from the memo and must be identical.
	assert.Equal(t, want, memo.HabitStats(habits))

	moods := []models.Mood{{MoodScore: 4, Energy: 3, Stress: 2}}
	assert.Equal(t, CalculateMoodStats(moods), memo.MoodStats(moods))

	goals := []models.Goal{{Status: "active", TargetValue: 10}}
	assert.Equal(t, CalculateGoalStats(goals), memo.GoalStats(goals))
}

func TestMemoKeysByContents(t *testing.T) {
	memo, err := NewMemo(8)
	require.NoError(t, err)

	habits := []models.Habit{{Name: "Run", CurrentStreak: 1}}
	first := memo.HabitStats(habits)
	assert.Equal(t, 1, first.TotalHabits)

	// A structurally different collection must not hit the earlier entry,
	// even though it reuses the same backing slice.
	habits[0].IsCompletedToday = true
	second := memo.HabitStats(habits)
	assert.Equal(t, 1, second.CompletedToday)

	// Equal contents in a distinct allocation hit the memo.
	clone := []models.Habit{{Name: "Run", CurrentStreak: 1, IsCompletedToday: true}}
	assert.Equal(t, second, memo.HabitStats(clone))
}

func TestMemoKindsDoNotCollide(t *testing.T) {
	memo, err := NewMemo(8)
	require.NoError(t, err)

	// Empty collections of different kinds share the hash of "no contents"
	// but must stay separate reductions.
	habitStats := memo.HabitStats(nil)
	moodStats := memo.MoodStats(nil)
	goalStats := memo.GoalStats(nil)
	assert.Equal(t, models.HabitStats{}, habitStats)
	assert.Equal(t, models.MoodStats{}, moodStats)
	assert.Equal(t, models.GoalStats{}, goalStats)
}

func TestNewMemoRejectsNonPositiveSize(t *testing.T) {
	_, err := NewMemo(0)
	assert.Error(t, err)
}
