package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindtrack/mindtrack/models"
)

func TestAnnotateHabitFlattensStreak(t *testing.T) {
	habit := AnnotateHabit(models.Habit{
		Name:   "Meditate",
		Streak: &models.Streak{Current: 4, Longest: 9},
	})
	assert.Equal(t, 4, habit.CurrentStreak)
	assert.Equal(t, 9, habit.LongestStreak)
}

func TestAnnotateHabitWithoutStreakRecord(t *testing.T) {
	habit := AnnotateHabit(models.Habit{Name: "Read", CurrentStreak: 3, LongestStreak: 5})
	assert.Equal(t, 3, habit.CurrentStreak)
	assert.Equal(t, 5, habit.LongestStreak)

	habit = AnnotateHabit(models.Habit{Name: "Read"})
	assert.Equal(t, 0, habit.CurrentStreak)
	assert.Equal(t, 0, habit.LongestStreak)
}

func TestAnnotateHabitClampsNegativeStreaks(t *testing.T) {
	habit := AnnotateHabit(models.Habit{
		Streak: &models.Streak{Current: -1, Longest: -2},
	})
	assert.Equal(t, 0, habit.CurrentStreak)
	assert.Equal(t, 0, habit.LongestStreak)
}

func TestAnnotateHabitKeepsCompletedToday(t *testing.T) {
	habit := AnnotateHabit(models.Habit{IsCompletedToday: true})
	assert.True(t, habit.IsCompletedToday)
}

func TestAnnotateHabitIdempotent(t *testing.T) {
	habit := AnnotateHabit(models.Habit{
		Streak: &models.Streak{Current: 2, Longest: 6},
	})
	assert.Equal(t, habit, AnnotateHabit(habit))
}

func TestAnnotateGoalDerivesCurrentValueFromProgress(t *testing.T) {
	goal := AnnotateGoal(models.Goal{
		TargetValue: 100,
		Progress: []models.ProgressEntry{
			{Date: "2026-08-01", Value: 10},
			{Date: "2026-08-10", Value: 25},
			{Date: "2026-08-20", Value: 40},
		},
	})
	require.NotNil(t, goal.CurrentValue)
	assert.Equal(t, 40.0, *goal.CurrentValue)
	require.NotNil(t, goal.ProgressPercentage)
	assert.Equal(t, 40.0, *goal.ProgressPercentage)
}

func TestAnnotateGoalWithoutProgress(t *testing.T) {
	goal := AnnotateGoal(models.Goal{TargetValue: 50})
	require.NotNil(t, goal.CurrentValue)
	assert.Equal(t, 0.0, *goal.CurrentValue)
	require.NotNil(t, goal.ProgressPercentage)
	assert.Equal(t, 0.0, *goal.ProgressPercentage)
}

func TestAnnotateGoalRespectsServerValues(t *testing.T) {
	current := 12.0
	pct := 24.0
	goal := AnnotateGoal(models.Goal{
		TargetValue:        50,
		CurrentValue:       &current,
		ProgressPercentage: &pct,
		Progress:           []models.ProgressEntry{{Date: "2026-08-01", Value: 99}},
	})
	assert.Equal(t, 12.0, *goal.CurrentValue)
	assert.Equal(t, 24.0, *goal.ProgressPercentage)
}

func TestAnnotateGoalZeroTarget(t *testing.T) {
	goal := AnnotateGoal(models.Goal{
		TargetValue: 0,
		Progress:    []models.ProgressEntry{{Value: 30}},
	})
	assert.Equal(t, 0.0, *goal.ProgressPercentage)
}

func TestAnnotateGoalClampsPercentage(t *testing.T) {
	goal := AnnotateGoal(models.Goal{
		TargetValue: 10,
		Progress:    []models.ProgressEntry{{Value: 25}},
	})
	assert.Equal(t, 100.0, *goal.ProgressPercentage)
}

func TestAnnotateGoalCanonicalizesProgressDates(t *testing.T) {
	goal := AnnotateGoal(models.Goal{
		TargetValue: 10,
		Progress: []models.ProgressEntry{
			{Date: "2026-08-01", Value: 1},
			{Date: "2026-08-02T10:30:00Z", Value: 2},
			{Date: "2026-08-03 08:00:00", Value: 3},
			{Date: "not a date", Value: 4},
		},
	})
	assert.Equal(t, "2026-08-01T00:00:00Z", goal.Progress[0].Date)
	assert.Equal(t, "2026-08-02T10:30:00Z", goal.Progress[1].Date)
	assert.Equal(t, "2026-08-03T08:00:00Z", goal.Progress[2].Date)
	assert.Equal(t, "not a date", goal.Progress[3].Date)
}

func TestAnnotateGoalIdempotent(t *testing.T) {
	goal := AnnotateGoal(models.Goal{
		TargetValue: 100,
		Progress:    []models.ProgressEntry{{Date: "2026-08-01", Value: 40}},
	})
	assert.Equal(t, goal, AnnotateGoal(goal))
}

func TestAnnotateCollectionsReturnNewSlices(t *testing.T) {
	habits := []models.Habit{{Streak: &models.Streak{Current: 1}}}
	annotated := AnnotateHabits(habits)
	assert.Equal(t, 1, annotated[0].CurrentStreak)
	assert.Equal(t, 0, habits[0].CurrentStreak)

	moods := []models.Mood{{Mood: "happy"}}
	assert.Equal(t, moods, AnnotateMoods(moods))

	goals := []models.Goal{{TargetValue: 10}}
	annotatedGoals := AnnotateGoals(goals)
	assert.NotNil(t, annotatedGoals[0].CurrentValue)
	assert.Nil(t, goals[0].CurrentValue)
}
