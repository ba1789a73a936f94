package data

import (
	"context"
	"encoding/json"

	"github.com/mindtrack/mindtrack/models"
	"github.com/mindtrack/mindtrack/normalize"
)

// decodeHabit unwraps and annotates a single-habit response body.
func decodeHabit(raw json.RawMessage) models.Habit {
	var habit models.Habit
	json.Unmarshal(normalize.Normalize(raw, normalize.Single), &habit)
	return normalize.AnnotateHabit(habit)
}

func decodeMood(raw json.RawMessage) models.Mood {
	var mood models.Mood
	json.Unmarshal(normalize.Normalize(raw, normalize.Single), &mood)
	return normalize.AnnotateMood(mood)
}

func decodeGoal(raw json.RawMessage) models.Goal {
	var goal models.Goal
	json.Unmarshal(normalize.Normalize(raw, normalize.Single), &goal)
	return normalize.AnnotateGoal(goal)
}

// CreateHabit creates a habit and invalidates its dependent collections.
func (s *Service) CreateHabit(ctx context.Context, input models.HabitInput) (models.Habit, error) {
	raw, err := s.api.CreateHabit(ctx, input)
	if err != nil {
		return models.Habit{}, err
	}
	s.NotifyMutation(MutationHabitCreate)
	return decodeHabit(raw), nil
}

// UpdateHabit updates a habit and invalidates its dependent collections.
func (s *Service) UpdateHabit(ctx context.Context, id string, input models.HabitInput) (models.Habit, error) {
	raw, err := s.api.UpdateHabit(ctx, id, input)
	if err != nil {
		return models.Habit{}, err
	}
	s.NotifyMutation(MutationHabitUpdate)
	return decodeHabit(raw), nil
}

// DeleteHabit deletes a habit and invalidates its dependent collections.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	if err := s.api.DeleteHabit(ctx, id); err != nil {
		return err
	}
	s.NotifyMutation(MutationHabitDelete)
	return nil
}

// CompleteHabit records today's completion and invalidates dependent
// collections.
func (s *Service) CompleteHabit(ctx context.Context, id string, input models.CompletionInput) (models.Habit, error) {
	raw, err := s.api.CompleteHabit(ctx, id, input)
	if err != nil {
		return models.Habit{}, err
	}
	s.NotifyMutation(MutationHabitComplete)
	return decodeHabit(raw), nil
}

// UncompleteHabit removes today's completion and invalidates dependent
// collections.
func (s *Service) UncompleteHabit(ctx context.Context, id string) error {
	if err := s.api.RemoveCompletion(ctx, id); err != nil {
		return err
	}
	s.NotifyMutation(MutationHabitUncomplete)
	return nil
}

// CreateMood records a mood entry and invalidates dependent collections.
func (s *Service) CreateMood(ctx context.Context, input models.MoodInput) (models.Mood, error) {
	raw, err := s.api.CreateMood(ctx, input)
	if err != nil {
		return models.Mood{}, err
	}
	s.NotifyMutation(MutationMoodCreate)
	return decodeMood(raw), nil
}

// UpdateMood updates a mood entry and invalidates dependent collections.
func (s *Service) UpdateMood(ctx context.Context, id string, input models.MoodInput) (models.Mood, error) {
	raw, err := s.api.UpdateMood(ctx, id, input)
	if err != nil {
		return models.Mood{}, err
	}
	s.NotifyMutation(MutationMoodUpdate)
	return decodeMood(raw), nil
}

// DeleteMood deletes a mood entry and invalidates dependent collections.
func (s *Service) DeleteMood(ctx context.Context, id string) error {
	if err := s.api.DeleteMood(ctx, id); err != nil {
		return err
	}
	s.NotifyMutation(MutationMoodDelete)
	return nil
}

// CreateGoal creates a goal and invalidates dependent collections.
func (s *Service) CreateGoal(ctx context.Context, input models.GoalInput) (models.Goal, error) {
	raw, err := s.api.CreateGoal(ctx, input)
	if err != nil {
		return models.Goal{}, err
	}
	s.NotifyMutation(MutationGoalCreate)
	return decodeGoal(raw), nil
}

// UpdateGoal updates a goal and invalidates dependent collections. A status
// change counts as its own mutation kind, though the fan-out is the same.
func (s *Service) UpdateGoal(ctx context.Context, id string, input models.GoalInput) (models.Goal, error) {
	raw, err := s.api.UpdateGoal(ctx, id, input)
	if err != nil {
		return models.Goal{}, err
	}
	if input.Status != "" {
		s.NotifyMutation(MutationGoalStatus)
	} else {
		s.NotifyMutation(MutationGoalUpdate)
	}
	return decodeGoal(raw), nil
}

// DeleteGoal deletes a goal and invalidates dependent collections.
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	if err := s.api.DeleteGoal(ctx, id); err != nil {
		return err
	}
	s.NotifyMutation(MutationGoalDelete)
	return nil
}

// UpdateGoalProgress appends a progress entry and invalidates dependent
// collections.
func (s *Service) UpdateGoalProgress(ctx context.Context, id string, input models.ProgressInput) (models.Goal, error) {
	raw, err := s.api.UpdateGoalProgress(ctx, id, input)
	if err != nil {
		return models.Goal{}, err
	}
	s.NotifyMutation(MutationGoalProgress)
	return decodeGoal(raw), nil
}

// SignOut clears the session token and drops the whole cache.
func (s *Service) SignOut() error {
	if err := s.api.SignOut(); err != nil {
		return err
	}
	s.Reset()
	return nil
}
