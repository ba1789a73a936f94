package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/form3tech-oss/jwt-go"

	"github.com/mindtrack/mindtrack/models"
)

// AuthResult is the payload returned by login and register.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login signs in with email and password and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	raw, err := c.do(ctx, "POST", "/auth/login", nil, body)
	if err != nil {
		return nil, err
	}
	return c.storeAuthResult(raw)
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	raw, err := c.do(ctx, "POST", "/auth/register", nil, body)
	if err != nil {
		return nil, err
	}
	return c.storeAuthResult(raw)
}

func (c *Client) storeAuthResult(raw json.RawMessage) (*AuthResult, error) {
	var result AuthResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}
	if result.Token == "" {
		return nil, errors.New("auth response did not contain a token")
	}
	if err := c.tokens.SetToken(result.Token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &result, nil
}

// CurrentUser fetches the authenticated account.
func (c *Client) CurrentUser(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "GET", "/auth/me", nil, nil)
}

// UpdateProfile updates account fields.
func (c *Client) UpdateProfile(ctx context.Context, updates map[string]interface{}) (json.RawMessage, error) {
	return c.do(ctx, "PUT", "/auth/profile", nil, updates)
}

// ChangePassword changes the account password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	_, err := c.do(ctx, "POST", "/auth/change-password", nil, body)
	return err
}

// SignOut discards the stored token. The API is stateless, so no server call
// is needed.
func (c *Client) SignOut() error {
	return c.tokens.Clear()
}

// IsAuthenticated reports whether a token is stored and not visibly expired.
// The token's signature is the server's concern; only the exp claim is read
// here, to skip a doomed round trip.
func (c *Client) IsAuthenticated() (bool, error) {
	token, err := c.tokens.Token()
	if err != nil || token == "" {
		return false, err
	}

	parser := jwt.Parser{SkipClaimsValidation: true}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Not a JWT at all: drop it.
		c.tokens.Clear()
		return false, nil
	}
	if !claims.VerifyExpiresAt(nowUnix(), false) {
		c.tokens.Clear()
		return false, nil
	}
	return true, nil
}
