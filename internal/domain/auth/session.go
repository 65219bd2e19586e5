package auth

import (
	"sync"
	"time"
)

// Session is the explicit session context handed to the admin surface.
// It is issued at login and removed at logout; handlers never consult an
// ambient logged-in flag.
type Session struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issued_at"`
}

// registry owns session lifecycles. Tokens alone are not enough to stay
// logged in: logout removes the session here, which invalidates any token
// still carrying its id.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]Session)}
}

func (r *registry) add(s Session) {
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
}

func (r *registry) get(id string) (Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	return s, ok
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
