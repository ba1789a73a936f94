package client

import (
	"context"
	"encoding/json"

	"github.com/mindtrack/mindtrack/models"
)

// Goals fetches the goal collection.
func (c *Client) Goals(ctx context.Context, params map[string]string) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/goals", params, nil)
}

// Goal fetches one goal by id.
func (c *Client) Goal(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/goals/"+id, nil, nil)
}

// CreateGoal creates a goal.
func (c *Client) CreateGoal(ctx context.Context, input models.GoalInput) (json.RawMessage, error) {
	return c.do(ctx, "POST", "/goals", nil, input)
}

// UpdateGoal updates a goal; a Status field in the input drives
// status changes.
func (c *Client) UpdateGoal(ctx context.Context, id string, input models.GoalInput) (json.RawMessage, error) {
	return c.do(ctx, "PUT", "/goals/"+id, nil, input)
}

// DeleteGoal deletes a goal.
func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	_, err := c.do(ctx, "DELETE", "/goals/"+id, nil, nil)
	return err
}

// UpdateGoalProgress appends a progress entry.
func (c *Client) UpdateGoalProgress(ctx context.Context, id string, input models.ProgressInput) (json.RawMessage, error) {
	return c.do(ctx, "POST", "/goals/"+id+"/progress", nil, input)
}
