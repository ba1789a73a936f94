package data

import (
	"context"
	"encoding/json"

	"github.com/mindtrack/mindtrack/cache"
	"github.com/mindtrack/mindtrack/client"
	"github.com/mindtrack/mindtrack/models"
	"github.com/mindtrack/mindtrack/normalize"
	"github.com/mindtrack/mindtrack/stats"
)

// memoSize bounds the stats memo; a handful of collections per session is
// typical, so a small LRU is plenty.
const memoSize = 64

// Service is the one data access point for every view. Reads go through the
// query cache; mutations go to the API and then invalidate dependent
// collections via NotifyMutation.
type Service struct {
	api   *client.Client
	cache *cache.Cache
	memo  *stats.Memo
}

// NewService creates a service over an API client with a fresh cache.
func NewService(api *client.Client) *Service {
	memo, err := stats.NewMemo(memoSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic("failed to initialize stats memo: " + err.Error())
	}
	return &Service{api: api, cache: cache.New(), memo: memo}
}

// Cache exposes the underlying query cache for status inspection.
func (s *Service) Cache() *cache.Cache {
	return s.cache
}

// API exposes the underlying REST client.
func (s *Service) API() *client.Client {
	return s.api
}

// Reset clears the whole cache. Called on sign-out.
func (s *Service) Reset() {
	s.cache.Reset()
}

// rawFetcher adapts an endpoint call returning a raw body into a cache
// fetcher that normalizes, decodes and annotates a habit collection.
func (s *Service) habitFetcher(fetch func(ctx context.Context) (json.RawMessage, error)) cache.Fetcher {
	return func(ctx context.Context) (interface{}, error) {
		raw, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		var habits []models.Habit
		// Decode failures leave an empty collection; a malformed payload is
		// recovered, not surfaced.
		json.Unmarshal(normalize.Normalize(raw, normalize.Collection), &habits)
		return normalize.AnnotateHabits(habits), nil
	}
}

func (s *Service) moodFetcher(fetch func(ctx context.Context) (json.RawMessage, error)) cache.Fetcher {
	return func(ctx context.Context) (interface{}, error) {
		raw, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		var moods []models.Mood
		json.Unmarshal(normalize.Normalize(raw, normalize.Collection), &moods)
		return normalize.AnnotateMoods(moods), nil
	}
}

func (s *Service) goalFetcher(fetch func(ctx context.Context) (json.RawMessage, error)) cache.Fetcher {
	return func(ctx context.Context) (interface{}, error) {
		raw, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		var goals []models.Goal
		json.Unmarshal(normalize.Normalize(raw, normalize.Collection), &goals)
		return normalize.AnnotateGoals(goals), nil
	}
}

// Habits returns the habit collection, cached under KeyHabits.
func (s *Service) Habits(ctx context.Context, params map[string]string) ([]models.Habit, error) {
	v, err := s.cache.Read(ctx, KeyHabits, params, s.habitFetcher(func(ctx context.Context) (json.RawMessage, error) {
		return s.api.Habits(ctx, params)
	}))
	if err != nil {
		return nil, err
	}
	habits, _ := v.([]models.Habit)
	return habits, nil
}

// TodayHabits returns today's habits, cached under KeyTodayHabits.
func (s *Service) TodayHabits(ctx context.Context) ([]models.Habit, error) {
	v, err := s.cache.Read(ctx, KeyTodayHabits, nil, s.habitFetcher(s.api.TodayHabits))
	if err != nil {
		return nil, err
	}
	habits, _ := v.([]models.Habit)
	return habits, nil
}

// Moods returns the mood collection, cached under KeyMoods.
func (s *Service) Moods(ctx context.Context, params map[string]string) ([]models.Mood, error) {
	v, err := s.cache.Read(ctx, KeyMoods, params, s.moodFetcher(func(ctx context.Context) (json.RawMessage, error) {
		return s.api.Moods(ctx, params)
	}))
	if err != nil {
		return nil, err
	}
	moods, _ := v.([]models.Mood)
	return moods, nil
}

// RecentMoods returns the last week of mood entries, cached under
// KeyRecentMoods.
func (s *Service) RecentMoods(ctx context.Context) ([]models.Mood, error) {
	params := map[string]string{"limit": "7"}
	v, err := s.cache.Read(ctx, KeyRecentMoods, params, s.moodFetcher(func(ctx context.Context) (json.RawMessage, error) {
		return s.api.Moods(ctx, params)
	}))
	if err != nil {
		return nil, err
	}
	moods, _ := v.([]models.Mood)
	return moods, nil
}

// Goals returns the goal collection, cached under KeyGoals.
func (s *Service) Goals(ctx context.Context, params map[string]string) ([]models.Goal, error) {
	v, err := s.cache.Read(ctx, KeyGoals, params, s.goalFetcher(func(ctx context.Context) (json.RawMessage, error) {
		return s.api.Goals(ctx, params)
	}))
	if err != nil {
		return nil, err
	}
	goals, _ := v.([]models.Goal)
	return goals, nil
}

// ActiveGoals returns goals with status active, cached under KeyActiveGoals.
func (s *Service) ActiveGoals(ctx context.Context) ([]models.Goal, error) {
	params := map[string]string{"status": "active"}
	v, err := s.cache.Read(ctx, KeyActiveGoals, params, s.goalFetcher(func(ctx context.Context) (json.RawMessage, error) {
		return s.api.Goals(ctx, params)
	}))
	if err != nil {
		return nil, err
	}
	goals, _ := v.([]models.Goal)
	return goals, nil
}

// DashboardAnalytics returns the combined analytics payload, cached under
// KeyDashboardAnalytics.
func (s *Service) DashboardAnalytics(ctx context.Context, params map[string]string) (models.DashboardAnalytics, error) {
	v, err := s.cache.Read(ctx, KeyDashboardAnalytics, params, func(ctx context.Context) (interface{}, error) {
		raw, err := s.api.DashboardAnalytics(ctx, params)
		if err != nil {
			return nil, err
		}
		var analytics models.DashboardAnalytics
		json.Unmarshal(normalize.Normalize(raw, normalize.Single), &analytics)
		return analytics, nil
	})
	if err != nil {
		return models.DashboardAnalytics{}, err
	}
	analytics, _ := v.(models.DashboardAnalytics)
	return analytics, nil
}

// SocialStats returns the per-user social statistics, cached under
// KeySocialStats.
func (s *Service) SocialStats(ctx context.Context) (models.SocialStats, error) {
	v, err := s.cache.Read(ctx, KeySocialStats, nil, func(ctx context.Context) (interface{}, error) {
		raw, err := s.api.SocialStats(ctx)
		if err != nil {
			return nil, err
		}
		var social models.SocialStats
		json.Unmarshal(normalize.Normalize(raw, normalize.Single), &social)
		return social, nil
	})
	if err != nil {
		return models.SocialStats{}, err
	}
	social, _ := v.(models.SocialStats)
	return social, nil
}

// Leaderboard returns the ranked leaderboard, cached under KeyLeaderboard.
func (s *Service) Leaderboard(ctx context.Context, params map[string]string) (models.Leaderboard, error) {
	v, err := s.cache.Read(ctx, KeyLeaderboard, params, func(ctx context.Context) (interface{}, error) {
		raw, err := s.api.Leaderboard(ctx, params)
		if err != nil {
			return nil, err
		}
		var board models.Leaderboard
		json.Unmarshal(normalize.Normalize(raw, normalize.Single), &board)
		return board, nil
	})
	if err != nil {
		return models.Leaderboard{}, err
	}
	board, _ := v.(models.Leaderboard)
	return board, nil
}

// Motivation returns the daily motivational message, cached under
// KeyMotivation.
func (s *Service) Motivation(ctx context.Context) (models.Motivation, error) {
	v, err := s.cache.Read(ctx, KeyMotivation, nil, func(ctx context.Context) (interface{}, error) {
		raw, err := s.api.Motivation(ctx)
		if err != nil {
			return nil, err
		}
		var motivation models.Motivation
		json.Unmarshal(normalize.Normalize(raw, normalize.Single), &motivation)
		return motivation, nil
	})
	if err != nil {
		return models.Motivation{}, err
	}
	motivation, _ := v.(models.Motivation)
	return motivation, nil
}

// HabitStats reduces a habit collection, memoized by contents.
func (s *Service) HabitStats(habits []models.Habit) models.HabitStats {
	return s.memo.HabitStats(habits)
}

// MoodStats reduces a mood collection, memoized by contents.
func (s *Service) MoodStats(moods []models.Mood) models.MoodStats {
	return s.memo.MoodStats(moods)
}

// GoalStats reduces a goal collection, memoized by contents.
func (s *Service) GoalStats(goals []models.Goal) models.GoalStats {
	return s.memo.GoalStats(goals)
}
