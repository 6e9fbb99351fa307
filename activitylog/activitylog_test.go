package activitylog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/portal-labs/userportal/activitylog"
)

func newTestLog(t *testing.T) (*activitylog.Log, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.csv")
	return activitylog.New(path, zerolog.Nop()), path
}

func TestAppendCreatesHeader(t *testing.T) {
	l, path := newTestLog(t)

	require.NoError(t, l.Append(activitylog.LevelInfo, "LOGIN", "alice", ""))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "timestamp,level,event,username,extra", lines[0])

	t.Run("header written once", func(t *testing.T) {
		require.NoError(t, l.Append(activitylog.LevelWarning, "LOGIN FAILED", "alice", ""))
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, 1, strings.Count(string(raw), "timestamp,level,event"))
	})
}

func TestRecent(t *testing.T) {
	l, _ := newTestLog(t)

	events := []string{"BOOTSTRAP ADMIN", "LOGIN", "LOGIN FAILED", "LOGOUT"}
	for _, event := range events {
		require.NoError(t, l.Append(activitylog.LevelInfo, event, "alice", ""))
	}

	t.Run("chronological order", func(t *testing.T) {
		entries, err := l.Recent(10)
		require.NoError(t, err)
		require.Len(t, entries, 4)
		for i, e := range entries {
			require.Equal(t, events[i], e.Event)
		}
	})

	t.Run("limit keeps the newest entries", func(t *testing.T) {
		entries, err := l.Recent(2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.Equal(t, "LOGIN FAILED", entries[0].Event)
		require.Equal(t, "LOGOUT", entries[1].Event)
	})
}

func TestRecentMissingFile(t *testing.T) {
	l, _ := newTestLog(t)

	entries, err := l.Recent(10)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestEntryFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := activitylog.New(filepath.Join(t.TempDir(), "log.csv"), zerolog.Nop(),
		activitylog.WithNowTime(func() time.Time { return now }))

	require.NoError(t, l.Append(activitylog.LevelWarning, "LOGIN FAILED", "alice", "attempt=3"))

	entries, err := l.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, activitylog.LevelWarning, entries[0].Level)
	require.Equal(t, "LOGIN FAILED", entries[0].Event)
	require.Equal(t, "alice", entries[0].Username)
	require.Equal(t, "attempt=3", entries[0].Extra)
	require.True(t, entries[0].Timestamp.Equal(now))
}
