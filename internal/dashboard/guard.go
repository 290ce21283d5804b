package dashboard

import (
	"errors"
	"strconv"
	"sync"
)

// ErrInFlight is returned when the same action is triggered again before its
// first request has finished
var ErrInFlight = errors.New("request already in flight")

// Guard keys
const (
	KeyCreate = "create"
	KeySleep  = "sleep"
)

// LogKey is the guard key for checking off a habit
func LogKey(id int64) string { return "log:" + strconv.FormatInt(id, 10) }

// DeleteKey is the guard key for deleting a habit
func DeleteKey(id int64) string { return "delete:" + strconv.FormatInt(id, 10) }

// Guard disables an action for the duration of its request
type Guard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewGuard returns an empty guard
func NewGuard() *Guard {
	return &Guard{held: make(map[string]struct{})}
}

// Acquire takes the key. It returns ok=false if the key is already held.
func (g *Guard) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[key]; busy {
		return nil, false
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, true
}

// Held reports whether the key is taken
func (g *Guard) Held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.held[key]
	return busy
}
