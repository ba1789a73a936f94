package client

import (
	"context"
	"encoding/json"

	"github.com/mindtrack/mindtrack/models"
)

// Moods fetches the mood collection.
func (c *Client) Moods(ctx context.Context, params map[string]string) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/moods", params, nil)
}

// Mood fetches one mood entry by id.
func (c *Client) Mood(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/moods/"+id, nil, nil)
}

// CreateMood records a mood entry.
func (c *Client) CreateMood(ctx context.Context, input models.MoodInput) (json.RawMessage, error) {
	return c.do(ctx, "POST", "/moods", nil, input)
}

// UpdateMood updates a mood entry.
func (c *Client) UpdateMood(ctx context.Context, id string, input models.MoodInput) (json.RawMessage, error) {
	return c.do(ctx, "PUT", "/moods/"+id, nil, input)
}

// DeleteMood deletes a mood entry.
func (c *Client) DeleteMood(ctx context.Context, id string) error {
	_, err := c.do(ctx, "DELETE", "/moods/"+id, nil, nil)
	return err
}
