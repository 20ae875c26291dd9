package lab

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxSessions bounds the number of live sessions in a Registry
const DefaultMaxSessions = 64

// DefaultSessionID is used when a caller does not name a session
const DefaultSessionID = "default"

// Registry owns the live lab sessions. The least recently used session is
// evicted, and its pending experiment cancelled, once the bound is reached.
type Registry struct {
	mu       sync.Mutex // Serializes get-or-create
	sessions *lru.Cache[string, *Session]
	recorder Recorder
}

// NewRegistry creates a registry holding at most maxSessions sessions.
// recorder is handed to every session it creates and may be nil.
func NewRegistry(maxSessions int, recorder Recorder) *Registry {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	cache, err := lru.NewWithEvict[string, *Session](maxSessions, func(_ string, s *Session) {
		s.Close()
	})
	if err != nil {
		// Should never happen with positive size, but fallback to default
		cache, _ = lru.NewWithEvict[string, *Session](DefaultMaxSessions, func(_ string, s *Session) {
			s.Close()
		})
	}
	return &Registry{sessions: cache, recorder: recorder}
}

// Get returns the session with the given id, creating it if needed.
// An empty id selects DefaultSessionID.
func (r *Registry) Get(id string) *Session {
	if id == "" {
		id = DefaultSessionID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions.Get(id); ok {
		return s
	}
	s := NewSession(id, r.recorder)
	r.sessions.Add(id, s)
	return s
}

// Lookup returns an existing session without creating one
func (r *Registry) Lookup(id string) (*Session, error) {
	if id == "" {
		id = DefaultSessionID
	}
	s, ok := r.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// New creates a session with a fresh random id
func (r *Registry) New() *Session {
	return r.Get(uuid.NewString())
}

// Delete closes and forgets a session. It reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.Remove(id)
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	return r.sessions.Len()
}

// IDs returns the live session ids, oldest first
func (r *Registry) IDs() []string {
	return r.sessions.Keys()
}

// Close cancels every pending experiment and empties the registry
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions.Purge()
}
