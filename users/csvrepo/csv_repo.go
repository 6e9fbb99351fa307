// Package csvrepo implements the user store on top of a flat CSV table.
// The whole table is rewritten on every mutation; the store assumes a
// single writer and low concurrency.
package csvrepo

import (
	"encoding/csv"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/portal-labs/userportal/activitylog"
	"github.com/portal-labs/userportal/users"
)

var header = []string{"username", "password", "role", "created_at"}

// Recorder receives user-store events for the activity log
type Recorder interface {
	Append(level activitylog.Level, event, username, extra string) error
}

var _ users.Repo = (*Repo)(nil)

// Repo keeps the user table in memory in insertion order and mirrors it to
// the CSV file on every mutation.
type Repo struct {
	mu       sync.RWMutex
	path     string
	activity Recorder
	records  []users.User
	index    map[string]int // username -> position in records
	nowTime  func() time.Time
}

// Option modifies a Repo instance
type Option func(*Repo)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(r *Repo) {
		r.nowTime = nowFunc
	}
}

// New loads the user table from path. A missing file is not an error; the
// table starts empty and Bootstrap creates the file.
func New(path string, activity Recorder, options ...Option) (*Repo, error) {
	r := &Repo{
		path:     path,
		activity: activity,
		index:    make(map[string]int),
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Bootstrap ensures the backing file exists and that the admin record is
// present, seeding it with the supplied credential on first run.
func (r *Repo) Bootstrap(adminUsername, adminPassword string) error {
	r.mu.Lock()
	adminUsername = users.NormalizeUsername(adminUsername)

	if _, ok := r.index[adminUsername]; ok {
		r.mu.Unlock()
		return nil
	}

	r.append(users.User{
		Username:       adminUsername,
		PasswordDigest: users.HashPassword(adminPassword),
		Role:           users.RoleAdmin,
		CreatedAt:      r.nowTime(),
	})
	if err := r.persistLocked(); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	return r.activity.Append(activitylog.LevelInfo, "BOOTSTRAP ADMIN", adminUsername, "")
}

// GetAll returns the full table in insertion order
func (r *Repo) GetAll() []users.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]users.User, len(r.records))
	copy(all, r.records)
	return all
}

// Get returns the user with the exact (trimmed) username
func (r *Repo) Get(username string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[users.NormalizeUsername(username)]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	user := r.records[i]
	return &user, nil
}

// Create hashes the password and appends a new record, rewriting the whole
// table file. Returns ErrUserExists if the username is already taken.
func (r *Repo) Create(username, password string, role users.RoleType) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	username = users.NormalizeUsername(username)
	if _, ok := r.index[username]; ok {
		return nil, users.ErrUserExists
	}

	user := users.User{
		Username:       username,
		PasswordDigest: users.HashPassword(password),
		Role:           role,
		CreatedAt:      r.nowTime(),
	}
	r.append(user)
	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyPassword reports whether the password matches the stored digest.
// An absent user verifies as false.
func (r *Repo) VerifyPassword(username, password string) bool {
	user, err := r.Get(username)
	if err != nil {
		return false
	}
	return users.CheckPasswordDigest(password, user.PasswordDigest)
}

// Count returns the number of records in the table
func (r *Repo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func (r *Repo) append(user users.User) {
	r.index[user.Username] = len(r.records)
	r.records = append(r.records, user)
}

func (r *Repo) load() error {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "csvrepo open")
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(header)
	rows, err := cr.ReadAll()
	if err != nil {
		return errors.Wrap(err, "csvrepo read")
	}
	if len(rows) > 0 {
		rows = rows[1:] // skip header
	}

	for _, row := range rows {
		createdAt, err := time.Parse(time.RFC3339, row[3])
		if err != nil {
			return errors.Wrapf(err, "csvrepo bad created_at %q", row[3])
		}
		r.append(users.User{
			Username:       users.NormalizeUsername(row[0]),
			PasswordDigest: row[1],
			Role:           users.RoleType(row[2]),
			CreatedAt:      createdAt,
		})
	}
	return nil
}

// persistLocked rewrites the whole table file. Caller must hold r.mu.
func (r *Repo) persistLocked() error {
	f, err := os.Create(r.path)
	if err != nil {
		return errors.Wrap(err, "csvrepo create")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "csvrepo write header")
	}
	for _, u := range r.records {
		row := []string{u.Username, u.PasswordDigest, string(u.Role), u.CreatedAt.Format(time.RFC3339)}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "csvrepo write row")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "csvrepo flush")
}
