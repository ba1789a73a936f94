package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mindtrack/mindtrack/models"
)

// sameDay reports whether two instants fall on the same calendar day in the
// server's locale. The server, not the client, owns "today".
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// newHabit builds a habit from an input. Habits are stored with the nested
// streak record only; the flattened fields are the client's concern.
func (s *Server) newHabit(input models.HabitInput) models.Habit {
	frequency := input.Frequency
	if frequency == "" {
		frequency = "daily"
	}
	target := input.TargetValue
	if target <= 0 {
		target = 1
	}
	return models.Habit{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Frequency:   frequency,
		TargetValue: target,
		Unit:        input.Unit,
		Color:       input.Color,
		Icon:        input.Icon,
		IsActive:    true,
		Streak:      &models.Streak{},
	}
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	s.mu.Lock()
	habits := append([]models.Habit(nil), record.habits...)
	s.mu.Unlock()
	// The habits list is the endpoint with the infamous double wrap.
	writeDoubleWrapped(w, http.StatusOK, habits)
}

func (s *Server) handleTodayHabits(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	s.mu.Lock()
	today := make([]models.Habit, 0, len(record.habits))
	for _, h := range record.habits {
		if h.IsActive {
			today = append(today, h)
		}
	}
	s.mu.Unlock()
	writeWrapped(w, http.StatusOK, today)
}

// findHabit returns the index of a habit or -1. Caller holds the lock.
func findHabit(habits []models.Habit, id string) int {
	for i := range habits {
		if habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) handleGetHabit(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findHabit(record.habits, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	writeWrapped(w, http.StatusOK, record.habits[i])
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var input models.HabitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	record := s.requestUser(r)
	habit := s.newHabit(input)
	s.mu.Lock()
	record.habits = append(record.habits, habit)
	s.mu.Unlock()
	writeWrapped(w, http.StatusCreated, habit)
}

func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	var input models.HabitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findHabit(record.habits, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	h := &record.habits[i]
	if input.Name != "" {
		h.Name = input.Name
	}
	if input.Description != "" {
		h.Description = input.Description
	}
	if input.Category != "" {
		h.Category = input.Category
	}
	if input.Frequency != "" {
		h.Frequency = input.Frequency
	}
	if input.TargetValue > 0 {
		h.TargetValue = input.TargetValue
	}
	if input.Unit != "" {
		h.Unit = input.Unit
	}
	if input.Color != "" {
		h.Color = input.Color
	}
	if input.Icon != "" {
		h.Icon = input.Icon
	}
	writeWrapped(w, http.StatusOK, *h)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findHabit(record.habits, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	record.habits = append(record.habits[:i], record.habits[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompleteHabit(w http.ResponseWriter, r *http.Request) {
	var input models.CompletionInput
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findHabit(record.habits, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	h := &record.habits[i]
	if h.IsCompletedToday {
		writeError(w, http.StatusConflict, "habit already completed today")
		return
	}
	h.Completions = append(h.Completions, models.Completion{
		Date:  s.now().UTC().Format(time.RFC3339),
		Value: input.Value,
		Notes: input.Notes,
	})
	h.IsCompletedToday = true
	if h.Streak == nil {
		h.Streak = &models.Streak{}
	}
	h.Streak.Current++
	if h.Streak.Current > h.Streak.Longest {
		h.Streak.Longest = h.Streak.Current
	}
	writeWrapped(w, http.StatusOK, *h)
}

func (s *Server) handleUncompleteHabit(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findHabit(record.habits, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	h := &record.habits[i]
	if !h.IsCompletedToday {
		writeError(w, http.StatusConflict, "habit is not completed today")
		return
	}
	if n := len(h.Completions); n > 0 {
		last, err := time.Parse(time.RFC3339, h.Completions[n-1].Date)
		if err == nil && sameDay(last, s.now()) {
			h.Completions = h.Completions[:n-1]
		}
	}
	h.IsCompletedToday = false
	if h.Streak != nil && h.Streak.Current > 0 {
		h.Streak.Current--
	}
	writeWrapped(w, http.StatusOK, *h)
}
