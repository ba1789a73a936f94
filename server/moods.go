package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mindtrack/mindtrack/models"
)

// moodScores maps the five ordinal mood labels to their 1-5 scores. The
// mapping lives on the server; clients treat moodScore as opaque data.
var moodScores = map[string]float64{
	"very-happy": 5,
	"happy":      4,
	"neutral":    3,
	"sad":        2,
	"very-sad":   1,
}

func (s *Server) handleListMoods(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	s.mu.Lock()
	moods := append([]models.Mood(nil), record.moods...)
	s.mu.Unlock()

	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if limit, err := strconv.Atoi(limitParam); err == nil && limit >= 0 && limit < len(moods) {
			// Most recent entries are at the end of the slice.
			moods = moods[len(moods)-limit:]
		}
	}
	writeWrapped(w, http.StatusOK, moods)
}

func findMood(moods []models.Mood, id string) int {
	for i := range moods {
		if moods[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) handleGetMood(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findMood(record.moods, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "mood entry not found")
		return
	}
	writeWrapped(w, http.StatusOK, record.moods[i])
}

func (s *Server) handleCreateMood(w http.ResponseWriter, r *http.Request) {
	var input models.MoodInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	score, ok := moodScores[input.Mood]
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown mood label")
		return
	}
	record := s.requestUser(r)
	mood := models.Mood{
		ID:         uuid.NewString(),
		Date:       s.now().UTC().Format(time.RFC3339),
		Mood:       input.Mood,
		MoodScore:  score,
		Energy:     input.Energy,
		Stress:     input.Stress,
		Sleep:      input.Sleep,
		Activities: input.Activities,
		Notes:      input.Notes,
	}
	s.mu.Lock()
	record.moods = append(record.moods, mood)
	s.mu.Unlock()
	writeWrapped(w, http.StatusCreated, mood)
}

func (s *Server) handleUpdateMood(w http.ResponseWriter, r *http.Request) {
	var input models.MoodInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findMood(record.moods, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "mood entry not found")
		return
	}
	m := &record.moods[i]
	if input.Mood != "" {
		score, ok := moodScores[input.Mood]
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown mood label")
			return
		}
		m.Mood = input.Mood
		m.MoodScore = score
	}
	if input.Energy > 0 {
		m.Energy = input.Energy
	}
	if input.Stress > 0 {
		m.Stress = input.Stress
	}
	if input.Sleep != nil {
		m.Sleep = input.Sleep
	}
	if input.Activities != nil {
		m.Activities = input.Activities
	}
	if input.Notes != "" {
		m.Notes = input.Notes
	}
	writeWrapped(w, http.StatusOK, *m)
}

func (s *Server) handleDeleteMood(w http.ResponseWriter, r *http.Request) {
	record := s.requestUser(r)
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findMood(record.moods, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "mood entry not found")
		return
	}
	record.moods = append(record.moods[:i], record.moods[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}
