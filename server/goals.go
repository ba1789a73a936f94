package server

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mindtrack/mindtrack/models"
)

// recalcGoal refreshes the goal's derived fields after a change. The server
// supplies currentValue and progressPercentage; daysRemaining comes from the
// deadline at read time.
func (s *Server) recalcGoal(g *models.Goal) {
	var current float64
	if len(g.Progress) > 0 {
		current = g.Progress[len(g.Progress)-1].Value
	}
	g.CurrentValue = &current

	var pct float64
	if g.TargetValue > 0 {
		pct = math.Min(current/g.TargetValue*100, 100)
	}
	g.ProgressPercentage = &pct

	g.DaysRemaining = nil
	if g.Deadline != "" {
		if deadline, err := time.Parse("2006-01-02", g.Deadline); err == nil {
			days := int(math.Ceil(deadline.Sub(s.now()).Hours() / 24))
			g.DaysRemaining = &days
		}
	}
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	status := r.URL.Query().Get("status")
	s.mu.Lock()
	goals := make([]models.Goal, 0, len(record.goals))
	for _, g := range record.goals {
		if status == "" || g.Status == status {
			s.recalcGoal(&g)
			goals = append(goals, g)
		}
	}
	s.mu.Unlock()
	// The goals endpoint predates the envelope convention and returns the
	// payload bare.
	writeBare(w, http.StatusOK, goals)
}

func findGoal(goals []models.Goal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findGoal(record.goals, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	g := record.goals[i]
	s.recalcGoal(&g)
	writeBare(w, http.StatusOK, g)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var input models.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if input.TargetValue <= 0 {
		writeError(w, http.StatusBadRequest, "targetValue must be positive")
		return
	}
	goal := models.Goal{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Type:        input.Type,
		TargetValue: input.TargetValue,
		Unit:        input.Unit,
		Deadline:    input.Deadline,
		Status:      "active",
		Priority:    input.Priority,
		IsPublic:    input.IsPublic,
		Progress:    []models.ProgressEntry{},
	}
	record := s.requestUser(r)
	s.mu.Lock()
	s.recalcGoal(&goal)
	record.goals = append(record.goals, goal)
	s.mu.Unlock()
	writeBare(w, http.StatusCreated, goal)
}

// validGoalStatus matches the goal lifecycle states.
func validGoalStatus(status string) bool {
	switch status {
	case "active", "paused", "completed", "cancelled":
		return true
	}
	return false
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var input models.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findGoal(record.goals, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	g := &record.goals[i]
	if input.Title != "" {
		g.Title = input.Title
	}
	if input.Description != "" {
		g.Description = input.Description
	}
	if input.Category != "" {
		g.Category = input.Category
	}
	if input.Type != "" {
		g.Type = input.Type
	}
	if input.TargetValue > 0 {
		g.TargetValue = input.TargetValue
	}
	if input.Unit != "" {
		g.Unit = input.Unit
	}
	if input.Deadline != "" {
		g.Deadline = input.Deadline
	}
	if input.Priority != "" {
		g.Priority = input.Priority
	}
	if input.Status != "" {
		if !validGoalStatus(input.Status) {
			writeError(w, http.StatusBadRequest, "unknown goal status")
			return
		}
		g.Status = input.Status
	}
	s.recalcGoal(g)
	writeBare(w, http.StatusOK, *g)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findGoal(record.goals, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	record.goals = append(record.goals[:i], record.goals[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	var input models.ProgressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findGoal(record.goals, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	g := &record.goals[i]
	g.Progress = append(g.Progress, models.ProgressEntry{
		Date:  s.now().UTC().Format(time.RFC3339),
		Value: input.Value,
		Notes: input.Notes,
	})
	s.recalcGoal(g)
	if g.Status == "active" && input.Value >= g.TargetValue {
		g.Status = "completed"
	}
	writeBare(w, http.StatusOK, *g)
}
