package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindtrack/mindtrack/lib/utils"
	"github.com/mindtrack/mindtrack/models"
)

type contextKey string

// userIDKey carries the authenticated user's id through the request context.
const userIDKey contextKey = "userID"

// tokenTTL is how long issued tokens stay valid.
const tokenTTL = 72 * time.Hour

// mintToken issues a signed JWT for a user.
func (s *Server) mintToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": s.now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.signingKey))
}

// parseToken validates a bearer token and returns the user id inside it.
func (s *Server) parseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.signingKey), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return "", fmt.Errorf("invalid token")
	}
	return id, nil
}

// authMiddleware rejects requests without a valid bearer token and stashes
// the user id in the context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.Split(authHeader, "Bearer ")
		if len(parts) != 2 {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		userID, err := s.parseToken(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		s.mu.Lock()
		_, ok := s.users[userID]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestUser returns the record for the authenticated user. Callers hold no
// lock; the record pointer stays valid because users are never deleted.
func (s *Server) requestUser(r *http.Request) *userRecord {
	id, _ := r.Context().Value(userIDKey).(string)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !utils.ValidateEmail(body.Email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	if !utils.ValidatePassword(body.Password) {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters and contain both letters and numbers")
		return
	}

	s.mu.Lock()
	if _, exists := s.byEmail[body.Email]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "an account with this email already exists")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		s.mu.Unlock()
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	record := &userRecord{
		user:         models.User{ID: uuid.NewString(), Name: body.Name, Email: body.Email},
		passwordHash: hash,
		createdAt:    s.now(),
	}
	s.users[record.user.ID] = record
	s.byEmail[body.Email] = record.user.ID
	s.mu.Unlock()

	token, err := s.mintToken(record.user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeBare(w, http.StatusCreated, map[string]interface{}{"token": token, "user": record.user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	id, ok := s.byEmail[body.Email]
	var record *userRecord
	if ok {
		record = s.users[id]
	}
	s.mu.Unlock()

	if record == nil || bcrypt.CompareHashAndPassword(record.passwordHash, []byte(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	token, err := s.mintToken(record.user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeBare(w, http.StatusOK, map[string]interface{}{"token": token, "user": record.user})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	writeWrapped(w, http.StatusOK, record.user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record := s.requestUser(r)
	s.mu.Lock()
	if body.Name != "" {
		record.user.Name = body.Name
	}
	user := record.user
	s.mu.Unlock()
	writeWrapped(w, http.StatusOK, user)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !utils.ValidatePassword(body.NewPassword) {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters and contain both letters and numbers")
		return
	}
	record := s.requestUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if bcrypt.CompareHashAndPassword(record.passwordHash, []byte(body.CurrentPassword)) != nil {
		writeError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}
	record.passwordHash = hash
	w.WriteHeader(http.StatusNoContent)
}
