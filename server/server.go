// Package server is the embedded MindTrack API server. It serves the same
// REST surface as the production backend, with in-memory fixtures, so the
// client stack can run and be tested without a deployment. Endpoints
// deliberately differ in how deeply they wrap their payloads, matching the
// backend the client was built against.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mindtrack/mindtrack/models"
)

// userRecord is one account plus its private collections.
type userRecord struct {
	user         models.User
	passwordHash []byte
	habits       []models.Habit
	moods        []models.Mood
	goals        []models.Goal
	createdAt    time.Time
}

// Server holds all fixture state behind one mutex. Nothing is persisted;
// state lives for the process.
type Server struct {
	mu         sync.Mutex
	signingKey string
	users      map[string]*userRecord // keyed by user id
	byEmail    map[string]string      // email -> user id
	now        func() time.Time
}

// New creates a server with seeded demo fixtures.
func New(signingKey string) *Server {
	s := &Server{
		signingKey: signingKey,
		users:      make(map[string]*userRecord),
		byEmail:    make(map[string]string),
		now:        time.Now,
	}
	s.seed()
	return s
}

// Router builds the full route table with CORS and request logging.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", s.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)

	authed.HandleFunc("/auth/me", s.handleCurrentUser).Methods("GET")
	authed.HandleFunc("/auth/profile", s.handleUpdateProfile).Methods("PUT")
	authed.HandleFunc("/auth/change-password", s.handleChangePassword).Methods("POST")

	authed.HandleFunc("/habits", s.handleListHabits).Methods("GET")
	authed.HandleFunc("/habits", s.handleCreateHabit).Methods("POST")
	authed.HandleFunc("/habits/dashboard/today", s.handleTodayHabits).Methods("GET")
	authed.HandleFunc("/habits/{id}", s.handleGetHabit).Methods("GET")
	authed.HandleFunc("/habits/{id}", s.handleUpdateHabit).Methods("PUT")
	authed.HandleFunc("/habits/{id}", s.handleDeleteHabit).Methods("DELETE")
	authed.HandleFunc("/habits/{id}/complete", s.handleCompleteHabit).Methods("POST")
	authed.HandleFunc("/habits/{id}/complete", s.handleUncompleteHabit).Methods("DELETE")

	authed.HandleFunc("/moods", s.handleListMoods).Methods("GET")
	authed.HandleFunc("/moods", s.handleCreateMood).Methods("POST")
	authed.HandleFunc("/moods/{id}", s.handleGetMood).Methods("GET")
	authed.HandleFunc("/moods/{id}", s.handleUpdateMood).Methods("PUT")
	authed.HandleFunc("/moods/{id}", s.handleDeleteMood).Methods("DELETE")

	authed.HandleFunc("/goals", s.handleListGoals).Methods("GET")
	authed.HandleFunc("/goals", s.handleCreateGoal).Methods("POST")
	authed.HandleFunc("/goals/{id}", s.handleGetGoal).Methods("GET")
	authed.HandleFunc("/goals/{id}", s.handleUpdateGoal).Methods("PUT")
	authed.HandleFunc("/goals/{id}", s.handleDeleteGoal).Methods("DELETE")
	authed.HandleFunc("/goals/{id}/progress", s.handleGoalProgress).Methods("POST")

	authed.HandleFunc("/analytics/dashboard", s.handleDashboardAnalytics).Methods("GET")
	authed.HandleFunc("/social/leaderboard", s.handleLeaderboard).Methods("GET")
	authed.HandleFunc("/social/stats", s.handleSocialStats).Methods("GET")
	authed.HandleFunc("/ai/motivation", s.handleMotivation).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	return handlers.LoggingHandler(os.Stdout, cors(r))
}

// Start runs the server on addr and blocks.
func Start(addr, signingKey string) error {
	s := New(signingKey)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	log.Printf("mindtrack api listening on %s", addr)
	return srv.ListenAndServe()
}

// Response envelopes. Different endpoints wrap differently; the helpers make
// each handler's choice explicit.

func writeBare(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeWrapped(w http.ResponseWriter, status int, v interface{}) {
	writeBare(w, status, map[string]interface{}{"data": v})
}

func writeDoubleWrapped(w http.ResponseWriter, status int, v interface{}) {
	writeBare(w, status, map[string]interface{}{"data": map[string]interface{}{"data": v}})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeBare(w, status, map[string]string{"message": message})
}
