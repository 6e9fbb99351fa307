// Package activitylog provides the append-only activity record backed by a
// tabular log file. Every append is mirrored to the process logger.
package activitylog

import (
	"encoding/csv"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Level is the severity of a log entry
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

var header = []string{"timestamp", "level", "event", "username", "extra"}

// Entry is a single activity record. Entries are never mutated or deleted.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Event     string    `json:"event"`
	Username  string    `json:"username,omitempty"`
	Extra     string    `json:"extra,omitempty"`
}

// Log appends entries to a CSV file, one row per event. The file and its
// header row are created on the first write.
type Log struct {
	mu      sync.Mutex
	path    string
	logger  zerolog.Logger
	nowTime func() time.Time
}

// Option modifies a Log instance
type Option func(*Log)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(l *Log) {
		l.nowTime = nowFunc
	}
}

func New(path string, logger zerolog.Logger, options ...Option) *Log {
	l := &Log{
		path:    path,
		logger:  logger,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Append writes one entry to the log file and mirrors it to the process
// logger at the corresponding level.
func (l *Log) Append(level Level, event, username, extra string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "activitylog open")
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "activitylog stat")
	}

	w := csv.NewWriter(f)
	if stat.Size() == 0 {
		if err := w.Write(header); err != nil {
			return errors.Wrap(err, "activitylog write header")
		}
	}

	now := l.nowTime()
	if err := w.Write([]string{now.Format(time.RFC3339), string(level), event, username, extra}); err != nil {
		return errors.Wrap(err, "activitylog write row")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "activitylog flush")
	}

	l.mirror(level, event, username, extra)
	return nil
}

// Recent returns the last limit entries in chronological order from a full
// read of the log file. A missing file yields an empty slice.
func (l *Log) Recent(limit int) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, errors.Wrap(err, "activitylog open")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "activitylog read")
	}
	if len(rows) > 0 {
		rows = rows[1:] // skip header
	}

	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, errors.Wrapf(err, "activitylog bad timestamp %q", row[0])
		}
		entries = append(entries, Entry{
			Timestamp: ts,
			Level:     Level(row[1]),
			Event:     row[2],
			Username:  row[3],
			Extra:     row[4],
		})
	}
	return entries, nil
}

func (l *Log) mirror(level Level, event, username, extra string) {
	var ev *zerolog.Event
	switch level {
	case LevelWarning:
		ev = l.logger.Warn()
	case LevelError:
		ev = l.logger.Error()
	default:
		ev = l.logger.Info()
	}
	if username != "" {
		ev = ev.Str("username", username)
	}
	if extra != "" {
		ev = ev.Str("extra", extra)
	}
	ev.Msg(event)
}
