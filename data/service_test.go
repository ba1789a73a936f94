package data

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindtrack/mindtrack/cache"
	"github.com/mindtrack/mindtrack/client"
	"github.com/mindtrack/mindtrack/models"
)

// stubBackend is a counting fake API that answers each endpoint with the
// envelope shape the real backend uses for it.
type stubBackend struct {
	habits []models.Habit
	moods  []models.Mood
	goals  []models.Goal
	calls  map[string]int
}

func newStubBackend() *stubBackend {
	return &stubBackend{calls: make(map[string]int)}
}

func (b *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/habits", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			b.calls["habits"]++
			// Habit lists come back double wrapped.
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{"data": b.habits},
			})
		case http.MethodPost:
			b.calls["createHabit"]++
			var input models.HabitInput
			json.NewDecoder(r.Body).Decode(&input)
			habit := models.Habit{
				ID:     "h-new",
				Name:   input.Name,
				Streak: &models.Streak{},
			}
			b.habits = append(b.habits, habit)
			json.NewEncoder(w).Encode(map[string]interface{}{"data": habit})
		}
	})
	mux.HandleFunc("/habits/h1/complete", func(w http.ResponseWriter, r *http.Request) {
		b.calls["complete"]++
		b.habits[0].IsCompletedToday = true
		b.habits[0].Streak.Current++
		json.NewEncoder(w).Encode(map[string]interface{}{"data": b.habits[0]})
	})
	mux.HandleFunc("/moods", func(w http.ResponseWriter, r *http.Request) {
		b.calls["moods"]++
		json.NewEncoder(w).Encode(map[string]interface{}{"data": b.moods})
	})
	mux.HandleFunc("/goals", func(w http.ResponseWriter, r *http.Request) {
		b.calls["goals"]++
		// Goal lists come back bare.
		json.NewEncoder(w).Encode(b.goals)
	})
	mux.HandleFunc("/analytics/dashboard", func(w http.ResponseWriter, r *http.Request) {
		b.calls["analytics"]++
		completed := 0
		for _, h := range b.habits {
			if h.IsCompletedToday {
				completed++
			}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": models.DashboardAnalytics{
				Habits: models.HabitStats{TotalHabits: len(b.habits), CompletedToday: completed},
			},
		})
	})
	return mux
}

func newTestService(t *testing.T) (*Service, *stubBackend) {
	t.Helper()
	backend := newStubBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewService(client.New(srv.URL, nil)), backend
}

func TestHabitsReadThroughAndNormalization(t *testing.T) {
	svc, backend := newTestService(t)
	backend.habits = []models.Habit{
		{ID: "h1", Name: "Meditate", Streak: &models.Streak{Current: 3, Longest: 7}},
		{ID: "h2", Name: "Run", Streak: &models.Streak{Current: 1, Longest: 4}},
	}
	ctx := context.Background()

	habits, err := svc.Habits(ctx, nil)
	require.NoError(t, err)
	require.Len(t, habits, 2)
	// Double-wrapped body was normalized and streaks were flattened.
	assert.Equal(t, 3, habits[0].CurrentStreak)
	assert.Equal(t, 7, habits[0].LongestStreak)

	// Second read is served from cache.
	_, err = svc.Habits(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.calls["habits"])
	assert.Equal(t, cache.StatusFresh, svc.Cache().Status(KeyHabits, nil))
}

func TestHabitMutationInvalidatesDependents(t *testing.T) {
	svc, backend := newTestService(t)
	backend.habits = []models.Habit{{ID: "h1", Name: "Meditate", Streak: &models.Streak{}}}
	ctx := context.Background()

	// Warm every collection that habit mutations fan out to, plus moods,
	// which they must not touch.
	_, err := svc.Habits(ctx, nil)
	require.NoError(t, err)
	_, err = svc.DashboardAnalytics(ctx, nil)
	require.NoError(t, err)
	_, err = svc.Moods(ctx, nil)
	require.NoError(t, err)

	habit, err := svc.CompleteHabit(ctx, "h1", models.CompletionInput{})
	require.NoError(t, err)
	assert.True(t, habit.IsCompletedToday)
	assert.Equal(t, 1, habit.CurrentStreak)

	assert.Equal(t, cache.StatusStale, svc.Cache().Status(KeyHabits, nil))
	assert.Equal(t, cache.StatusStale, svc.Cache().Status(KeyDashboardAnalytics, nil))
	assert.Equal(t, cache.StatusFresh, svc.Cache().Status(KeyMoods, nil))

	// The next analytics read refetches and sees the completion.
	analytics, err := svc.DashboardAnalytics(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, analytics.Habits.CompletedToday)
	assert.Equal(t, 2, backend.calls["analytics"])
	assert.Equal(t, 1, backend.calls["moods"])
}

func TestCreateHabitRefetchesList(t *testing.T) {
	svc, backend := newTestService(t)
	backend.habits = []models.Habit{{ID: "h1", Name: "Meditate", Streak: &models.Streak{}}}
	ctx := context.Background()

	habits, err := svc.Habits(ctx, nil)
	require.NoError(t, err)
	require.Len(t, habits, 1)

	created, err := svc.CreateHabit(ctx, models.HabitInput{Name: "Journal"})
	require.NoError(t, err)
	assert.Equal(t, "Journal", created.Name)

	habits, err = svc.Habits(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, habits, 2)
	assert.Equal(t, 2, backend.calls["habits"])
}

func TestRecentMoodsUsesLimitParam(t *testing.T) {
	svc, backend := newTestService(t)
	backend.moods = []models.Mood{{ID: "m1", Mood: "happy", MoodScore: 4}}
	ctx := context.Background()

	moods, err := svc.RecentMoods(ctx)
	require.NoError(t, err)
	require.Len(t, moods, 1)

	// recentMoods and moods are distinct identities.
	_, err = svc.Moods(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.calls["moods"])
	assert.Equal(t, cache.StatusFresh, svc.Cache().Status(KeyRecentMoods, map[string]string{"limit": "7"}))
}

func TestGoalsNormalizesBareEnvelopeAndAnnotates(t *testing.T) {
	svc, backend := newTestService(t)
	backend.goals = []models.Goal{
		{
			ID:          "g1",
			Title:       "Run 100 km",
			Status:      "active",
			TargetValue: 100,
			Progress: []models.ProgressEntry{
				{Date: "2026-08-01", Value: 10},
				{Date: "2026-08-15", Value: 25},
				{Date: "2026-08-29", Value: 40},
			},
		},
	}

	goals, err := svc.Goals(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 40.0, goals[0].Current())
	assert.Equal(t, 40.0, goals[0].Percent())
}

func TestGoalStatusChangeInvalidatesGoalViews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": models.Goal{ID: "g1", Status: "completed", TargetValue: 10},
			})
			return
		}
		json.NewEncoder(w).Encode([]models.Goal{{ID: "g1", Status: "active", TargetValue: 10}})
	}))
	t.Cleanup(srv.Close)
	svc := NewService(client.New(srv.URL, nil))
	ctx := context.Background()

	// Warm the goal views, then flip the status.
	_, err := svc.ActiveGoals(ctx)
	require.NoError(t, err)
	_, err = svc.Goals(ctx, nil)
	require.NoError(t, err)

	goal, err := svc.UpdateGoal(ctx, "g1", models.GoalInput{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", goal.Status)

	assert.Equal(t, cache.StatusStale, svc.Cache().Status(KeyGoals, nil))
	assert.Equal(t, cache.StatusStale, svc.Cache().Status(KeyActiveGoals, map[string]string{"status": "active"}))
}

func TestNotifyMutationFanOut(t *testing.T) {
	svc, backend := newTestService(t)
	backend.habits = []models.Habit{{ID: "h1", Streak: &models.Streak{}}}
	ctx := context.Background()

	warm := func() {
		svc.Habits(ctx, nil)
		svc.Moods(ctx, nil)
		svc.Goals(ctx, nil)
		svc.DashboardAnalytics(ctx, nil)
	}
	status := func(key string) cache.Status {
		return svc.Cache().Status(key, nil)
	}

	warm()
	svc.NotifyMutation(MutationMoodCreate)
	assert.Equal(t, cache.StatusStale, status(KeyMoods))
	assert.Equal(t, cache.StatusStale, status(KeyDashboardAnalytics))
	assert.Equal(t, cache.StatusFresh, status(KeyHabits))
	assert.Equal(t, cache.StatusFresh, status(KeyGoals))

	warm()
	svc.NotifyMutation(MutationGoalProgress)
	assert.Equal(t, cache.StatusStale, status(KeyGoals))
	assert.Equal(t, cache.StatusStale, status(KeyDashboardAnalytics))
	assert.Equal(t, cache.StatusFresh, status(KeyMoods))
}

func TestSignOutResetsCache(t *testing.T) {
	svc, backend := newTestService(t)
	backend.habits = []models.Habit{{ID: "h1", Streak: &models.Streak{}}}
	ctx := context.Background()

	_, err := svc.Habits(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, svc.API().Tokens().SetToken("tok"))

	require.NoError(t, svc.SignOut())

	token, _ := svc.API().Tokens().Token()
	assert.Empty(t, token)
	assert.Equal(t, cache.StatusMissing, svc.Cache().Status(KeyHabits, nil))
}

func TestStatsDelegation(t *testing.T) {
	svc, _ := newTestService(t)
	habits := []models.Habit{
		{IsCompletedToday: true, CurrentStreak: 2},
		{CurrentStreak: 4},
	}
	s := svc.HabitStats(habits)
	assert.Equal(t, 2, s.TotalHabits)
	assert.Equal(t, 1, s.CompletedToday)
	assert.Equal(t, 50, s.CompletionRate)
}
