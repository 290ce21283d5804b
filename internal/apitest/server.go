// Package apitest runs an in-memory habit API for tests. It mirrors the
// responses of the real server closely enough to drive every client path,
// and counts hits per route so tests can assert that nothing was sent.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/models"
)

// SessionCookie is the cookie name the fake server issues
const SessionCookie = "session"

type user struct {
	username string
	password string
	xp       int
	level    int
}

type habit struct {
	id     int64
	owner  string
	name   string
	streak int
	logged string // day of the last check-off
}

// Server is a fake habit API backed by memory
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]*user
	sessions map[string]string // token -> username
	habits   map[int64]*habit
	nextID   int64
	hits     map[string]int
	hold     map[string]chan struct{}
	today    func() string
}

// New starts a fake server. Call Close when done.
func New() *Server {
	s := &Server{
		users:    make(map[string]*user),
		sessions: make(map[string]string),
		habits:   make(map[int64]*habit),
		hits:     make(map[string]int),
		hold:     make(map[string]chan struct{}),
		today:    func() string { return time.Now().Format(constants.DateFormat) },
	}

	r := chi.NewRouter()
	r.Use(s.countHits)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "API is running! Ready to track habits."})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.status)
		r.Post("/register", s.register)
		r.Post("/login", s.login)
		r.Get("/habits", s.requireSession(s.listHabits))
		r.Post("/habits", s.requireSession(s.createHabit))
		r.Delete("/habits/{id}", s.requireSession(s.deleteHabit))
		r.Post("/log", s.requireSession(s.logHabit))
		r.Post("/sleep", s.requireSession(s.logSleep))
	})

	s.Server = httptest.NewServer(r)
	return s
}

// Hits returns how many requests reached the route, e.g. Hits("DELETE", "/api/habits/{id}")
func (s *Server) Hits(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+pattern]
}

// AddUser registers an account directly
func (s *Server) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = &user{username: username, password: password, level: 1}
}

// SetStats overwrites a user's gamification counters
func (s *Server) SetStats(username string, xp, level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[username]; ok {
		u.xp, u.level = xp, level
	}
}

// AddHabit inserts a habit for the user and returns its id
func (s *Server) AddHabit(username, name string, streak int, loggedToday bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	h := &habit{id: s.nextID, owner: username, name: name, streak: streak}
	if loggedToday {
		h.logged = s.today()
	}
	s.habits[h.id] = h
	return h.id
}

// ExpireSessions invalidates every issued session cookie
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]string)
}

// Hold makes requests to the route block until the returned release func is called
func (s *Server) Hold(method, pattern string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold[method+" "+pattern] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.hold, method+" "+pattern)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Server) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		s.mu.Lock()
		s.hits[r.Method+" "+pattern]++
		s.mu.Unlock()
	})
}

func (s *Server) waitIfHeld(r *http.Request) {
	key := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()
	s.mu.Lock()
	ch, ok := s.hold[key]
	s.mu.Unlock()
	if ok {
		select {
		case <-ch:
		case <-r.Context().Done():
		}
	}
}

func (s *Server) currentUser(r *http.Request) *user {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.sessions[c.Value]
	if !ok {
		return nil
	}
	return s.users[name]
}

func (s *Server) requireSession(next func(http.ResponseWriter, *http.Request, *user)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.waitIfHeld(r)
		u := s.currentUser(r)
		if u == nil {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Unauthorized. Please log in."})
			return
		}
		next(w, r, u)
	}
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	u := s.currentUser(r)
	if u == nil {
		writeJSON(w, http.StatusOK, map[string]any{"logged_in": false})
		return
	}
	s.mu.Lock()
	body := map[string]any{"logged_in": true, "username": u.username, "xp": u.xp, "level": u.level}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Username and password are required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[creds.Username]; exists {
		writeJSON(w, http.StatusConflict, models.MessageResponse{Message: "User already exists"})
		return
	}
	s.users[creds.Username] = &user{username: creds.Username, password: creds.Password, level: 1}
	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: constants.MsgRegistrationSuccessful})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Missing username or password"})
		return
	}
	s.mu.Lock()
	u, ok := s.users[creds.Username]
	if !ok || u.password != creds.Password {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Invalid username or password"})
		return
	}
	token := uuid.New().String()
	s.sessions[token] = u.username
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: token, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: constants.MsgLoginSuccessful, Username: u.username})
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request, u *user) {
	s.mu.Lock()
	today := s.today()
	list := []models.Habit{}
	for _, h := range s.habits {
		if h.owner != u.username {
			continue
		}
		list = append(list, models.Habit{
			ID:          h.id,
			Name:        h.name,
			Frequency:   "daily",
			Streak:      h.streak,
			LoggedToday: h.logged == today,
		})
	}
	s.mu.Unlock()
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request, u *user) {
	var req models.CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Habit name is required"})
		return
	}
	s.mu.Lock()
	s.nextID++
	h := &habit{id: s.nextID, owner: u.username, name: req.Name}
	s.habits[h.id] = h
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: "Habit created successfully", ID: h.id, Name: h.name})
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request, u *user) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	s.mu.Lock()
	h, ok := s.habits[id]
	if !ok || h.owner != u.username {
		s.mu.Unlock()
		writeJSON(w, http.StatusNotFound, models.MessageResponse{Message: "Habit not found or access denied"})
		return
	}
	delete(s.habits, id)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: fmt.Sprintf("Habit '%s' deleted successfully", h.name)})
}

func (s *Server) logHabit(w http.ResponseWriter, r *http.Request, u *user) {
	var req models.LogHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HabitID == 0 {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Habit ID is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[req.HabitID]
	if !ok || h.owner != u.username {
		writeJSON(w, http.StatusNotFound, models.MessageResponse{Message: "Habit not found or access denied"})
		return
	}
	today := s.today()
	if h.logged == today {
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Habit already logged today"})
		return
	}
	h.logged = today
	h.streak++
	u.xp += constants.HabitLogXP
	for u.xp >= u.level*constants.XPPerLevel {
		u.xp -= u.level * constants.XPPerLevel
		u.level++
	}
	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: fmt.Sprintf("Habit '%s' logged successfully", h.name)})
}

func (s *Server) logSleep(w http.ResponseWriter, r *http.Request, u *user) {
	var entry models.SleepLog
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil || entry.Bedtime == "" || entry.WakeUp == "" {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Bedtime and wake up time are required"})
		return
	}
	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: "Sleep logged successfully"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
