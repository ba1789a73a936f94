package client

import (
	"context"
	"encoding/json"
)

// DashboardAnalytics fetches the combined dashboard analytics payload.
func (c *Client) DashboardAnalytics(ctx context.Context, params map[string]string) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/analytics/dashboard", params, nil)
}

// Leaderboard fetches the ranked leaderboard.
func (c *Client) Leaderboard(ctx context.Context, params map[string]string) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/social/leaderboard", params, nil)
}

// SocialStats fetches the per-user social statistics.
func (c *Client) SocialStats(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/social/stats", nil, nil)
}

// Motivation fetches the daily motivational message.
func (c *Client) Motivation(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/ai/motivation", nil, nil)
}
