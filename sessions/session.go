package sessions

import "time"

// Session maps an opaque identifier to the user who logged in. LastTouch is
// refreshed on every successful resolve (sliding expiry).
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
	LastTouch time.Time
}

// Repo is the session table. Sessions live in process memory only; a
// restart invalidates all of them.
type Repo interface {
	Create(username string) (string, error)
	Resolve(sessionID string) (string, bool)
	Delete(sessionID string)
}
