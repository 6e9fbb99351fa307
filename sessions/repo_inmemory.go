package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is the in-process session table. The TTL is an explicit,
// named configuration value rather than a literal at the call sites.
type InMemoryRepo struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
	nowTime  func() time.Time
}

// Option modifies an InMemoryRepo instance
type Option func(*InMemoryRepo)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(r *InMemoryRepo) {
		r.nowTime = nowFunc
	}
}

func NewInMemoryRepo(ttl time.Duration, options ...Option) *InMemoryRepo {
	r := &InMemoryRepo{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Create mints a fresh random session identifier for username
func (r *InMemoryRepo) Create(username string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowTime()
	sessionID := id.String()
	r.sessions[sessionID] = &Session{
		ID:        sessionID,
		Username:  username,
		CreatedAt: now,
		LastTouch: now,
	}
	return sessionID, nil
}

// Resolve returns the username for a live session and refreshes its
// last-touch time. Expired entries are evicted on first access; an evicted
// identifier never resolves again.
func (r *InMemoryRepo) Resolve(sessionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return "", false
	}

	now := r.nowTime()
	if now.Sub(session.LastTouch) > r.ttl {
		delete(r.sessions, sessionID)
		return "", false
	}

	session.LastTouch = now
	return session.Username, true
}

// Delete removes a session. Deleting an unknown identifier is a no-op.
func (r *InMemoryRepo) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// TTL returns the configured session time-to-live
func (r *InMemoryRepo) TTL() time.Duration {
	return r.ttl
}
