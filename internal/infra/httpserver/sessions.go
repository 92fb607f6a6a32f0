package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okandemirel/sales-analyst/internal/domain/session"
)

const sessionCookie = "sid"

// Session pairs one browser session with its in-memory history. The mutex
// serializes turns within the session; sessions never share state.
type Session struct {
	ID      string
	History *session.History

	mu       sync.Mutex
	lastSeen time.Time
}

// Lock serializes one turn (or one history read) for this session.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// SessionManager hands out cookie-backed sessions and sweeps idle ones.
// The history is process-local: it is lost when the session expires or the
// process restarts, the durable copy lives in the responses table.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Get returns the request's session, creating one (and setting the cookie)
// when the request carries no valid session id.
func (m *SessionManager) Get(w http.ResponseWriter, r *http.Request) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, err := r.Cookie(sessionCookie); err == nil {
		if s, ok := m.sessions[c.Value]; ok {
			s.lastSeen = time.Now()
			return s
		}
	}

	s := &Session{
		ID:       uuid.New().String(),
		History:  session.NewHistory(),
		lastSeen: time.Now(),
	}
	m.sessions[s.ID] = s

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// StartJanitor sweeps idle sessions until ctx is done.
func (m *SessionManager) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

func (m *SessionManager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

// Len reports how many live sessions are held.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
