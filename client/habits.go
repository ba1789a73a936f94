package client

import (
	"context"
	"encoding/json"

	"github.com/mindtrack/mindtrack/models"
)

// Habits fetches the habit collection. The body arrives in whatever envelope
// the endpoint favors; callers normalize it.
func (c *Client) Habits(ctx context.Context, params map[string]string) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/habits", params, nil)
}

// TodayHabits fetches the habits scheduled for today.
func (c *Client) TodayHabits(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/habits/dashboard/today", nil, nil)
}

// Habit fetches one habit by id.
func (c *Client) Habit(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/habits/"+id, nil, nil)
}

// CreateHabit creates a habit.
func (c *Client) CreateHabit(ctx context.Context, input models.HabitInput) (json.RawMessage, error) {
	return c.do(ctx, "POST", "/habits", nil, input)
}

// UpdateHabit updates a habit.
func (c *Client) UpdateHabit(ctx context.Context, id string, input models.HabitInput) (json.RawMessage, error) {
	return c.do(ctx, "PUT", "/habits/"+id, nil, input)
}

// DeleteHabit deletes a habit.
func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	_, err := c.do(ctx, "DELETE", "/habits/"+id, nil, nil)
	return err
}

// CompleteHabit records a completion for today.
func (c *Client) CompleteHabit(ctx context.Context, id string, input models.CompletionInput) (json.RawMessage, error) {
	return c.do(ctx, "POST", "/habits/"+id+"/complete", nil, input)
}

// RemoveCompletion removes today's completion.
func (c *Client) RemoveCompletion(ctx context.Context, id string) error {
	_, err := c.do(ctx, "DELETE", "/habits/"+id+"/complete", nil, nil)
	return err
}
