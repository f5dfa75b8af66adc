package core

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle session survives before the
// janitor discards it.
var DefaultSessionTTL = 30 * time.Minute

// ErrTooManySessions is returned by Create when the active session cap
// is reached.
var ErrTooManySessions = errors.New("too many active sessions")

// Manager tracks in-memory import sessions keyed by ID.
//
// Sessions are created from an uploaded file, mutated through the
// matching operations, and discarded on submit, explicit delete, or
// TTL expiry. A Session itself is not safe for concurrent use; the
// Manager serializes access per session via With.
type Manager struct {
	ttl       time.Duration
	maxActive int

	mu       sync.RWMutex
	sessions map[string]*managedSession
	onEvict  func(id string)
}

type managedSession struct {
	mu         sync.Mutex
	session    *Session
	meta       SessionMeta
	lastAccess time.Time
}

// SessionMeta describes a session without exposing its mutable state.
type SessionMeta struct {
	ID          string    `json:"id"`
	TemplateKey string    `json:"templateKey"`
	FileName    string    `json:"fileName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewManager creates a session manager. A non-positive ttl falls back
// to DefaultSessionTTL; a non-positive maxActive means no cap.
func NewManager(ttl time.Duration, maxActive int) *Manager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	m := &Manager{
		ttl:       ttl,
		maxActive: maxActive,
		sessions:  make(map[string]*managedSession),
	}
	go m.janitor()
	return m
}

// Create builds a new session from parsed file data and registers it.
// Returns the generated session ID.
func (m *Manager) Create(templateKey, fileName string, header RawRow, rows []RawRow, cfg SessionConfig) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxActive > 0 && len(m.sessions) >= m.maxActive {
		return "", ErrTooManySessions
	}

	session, err := NewSession(header, rows, cfg)
	if err != nil {
		return "", err
	}
	session.Init()

	id := uuid.New().String()
	m.sessions[id] = &managedSession{
		session: session,
		meta: SessionMeta{
			ID:          id,
			TemplateKey: templateKey,
			FileName:    fileName,
			CreatedAt:   time.Now(),
		},
		lastAccess: time.Now(),
	}

	return id, nil
}

// With runs fn against the session with the given ID, holding its lock
// for the duration. The session must not be retained after fn returns.
func (m *Manager) With(id string, fn func(s *Session) error) error {
	ms, err := m.lookup(id)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.lastAccess = time.Now()

	return fn(ms.session)
}

// Meta returns descriptive metadata for a session.
func (m *Manager) Meta(id string) (SessionMeta, error) {
	ms, err := m.lookup(id)
	if err != nil {
		return SessionMeta{}, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.meta, nil
}

// Delete discards a session. Deleting an unknown ID is an error so
// callers can distinguish expiry from success.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	delete(m.sessions, id)
	return nil
}

// Active returns the number of live sessions.
func (m *Manager) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) lookup(id string) (*managedSession, error) {
	m.mu.RLock()
	ms, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return ms, nil
}

// SetOnEvict registers a callback invoked with the ID of every session
// Sweep discards, so collaborators holding per-session state (the web
// layer's notice buffers) can release it. Explicit Delete does not trigger
// it; callers that delete clean up inline.
func (m *Manager) SetOnEvict(fn func(id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Sweep discards sessions idle past the TTL. The janitor runs it once a
// minute; it is safe to invoke directly.
func (m *Manager) Sweep() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	var evicted []string
	for id, ms := range m.sessions {
		if ms.lastAccess.Before(cutoff) {
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	onEvict := m.onEvict
	m.mu.Unlock()

	if onEvict == nil {
		return
	}
	for _, id := range evicted {
		onEvict(id)
	}
}

// janitor discards sessions idle past the TTL.
func (m *Manager) janitor() {
	for {
		time.Sleep(time.Minute)
		m.Sweep()
	}
}
