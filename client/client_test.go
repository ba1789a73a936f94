package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindtrack/mindtrack/models"
)

func TestDoSendsBearerTokenAndQueryParams(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	require.NoError(t, c.Tokens().SetToken("tok-123"))

	raw, err := c.Habits(context.Background(), map[string]string{"status": "active", "limit": "5"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(raw))
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "limit=5&status=active", gotQuery)
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Habits(context.Background(), nil)
	require.NoError(t, err)
}

func TestDoSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"habit already completed today"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).CompleteHabit(context.Background(), "h1", models.CompletionInput{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "habit already completed today", apiErr.Error())
}

func TestDoErrorWithoutMessageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Habits(context.Background(), nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed with status 500", apiErr.Error())
}

func TestUnauthorizedClearsStoredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"not authenticated"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	require.NoError(t, c.Tokens().SetToken("expired"))

	_, err := c.Habits(context.Background(), nil)
	require.Error(t, err)

	token, err := c.Tokens().Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "demo@mindtrack.io", body["email"])
		w.Write([]byte(`{"token":"tok-abc","user":{"_id":"u1","name":"Demo"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	result, err := c.Login(context.Background(), "demo@mindtrack.io", "mindtrack1")
	require.NoError(t, err)
	assert.Equal(t, "Demo", result.User.Name)

	token, _ := c.Tokens().Token()
	assert.Equal(t, "tok-abc", token)
}

func TestLoginRejectsTokenlessResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"_id":"u1"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Login(context.Background(), "a@b.co", "password1")
	require.Error(t, err)

	token, _ := c.Tokens().Token()
	assert.Empty(t, token)
}

func TestSignOutClearsToken(t *testing.T) {
	c := New("http://localhost:0", nil)
	c.Tokens().SetToken("tok")
	require.NoError(t, c.SignOut())
	token, _ := c.Tokens().Token()
	assert.Empty(t, token)
}

// mintTestToken builds an HS256 token with the given exp offset.
func mintTestToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestIsAuthenticated(t *testing.T) {
	c := New("http://localhost:0", nil)

	ok, err := c.IsAuthenticated()
	require.NoError(t, err)
	assert.False(t, ok, "no token stored")

	c.Tokens().SetToken(mintTestToken(t, time.Hour))
	ok, err = c.IsAuthenticated()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAuthenticatedExpiredTokenIsDropped(t *testing.T) {
	c := New("http://localhost:0", nil)
	c.Tokens().SetToken(mintTestToken(t, time.Hour))

	restore := nowUnix
	defer func() { nowUnix = restore }()
	nowUnix = func() int64 { return time.Now().Add(2 * time.Hour).Unix() }

	ok, err := c.IsAuthenticated()
	require.NoError(t, err)
	assert.False(t, ok)

	token, _ := c.Tokens().Token()
	assert.Empty(t, token, "expired token is cleared")
}

func TestIsAuthenticatedGarbageTokenIsDropped(t *testing.T) {
	c := New("http://localhost:0", nil)
	c.Tokens().SetToken("not-a-jwt")

	ok, err := c.IsAuthenticated()
	require.NoError(t, err)
	assert.False(t, ok)

	token, _ := c.Tokens().Token()
	assert.Empty(t, token)
}
