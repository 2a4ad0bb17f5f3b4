package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct{ calls int }

func (f *failingHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (f *failingHandler) Handle(context.Context, slog.Record) error {
	f.calls++
	return errors.New("sink down")
}

func (f *failingHandler) WithAttrs([]slog.Attr) slog.Handler {
	return f
}

func (f *failingHandler) WithGroup(string) slog.Handler {
	return f
}

func TestMultiHandler_FansOutPastFailures(t *testing.T) {
	var buf bytes.Buffer
	failing := &failingHandler{}
	logger := slog.New(NewMultiHandler(failing, NewJSONHandler(&buf)))

	logger.With("request_id", "req-1").Info("playlist created", "playlist_id", "p1")

	assert.Equal(t, 1, failing.calls)
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "playlist created", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "p1", line["playlist_id"])
}

func TestMultiHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(NewJSONHandler(&buf))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
}

func TestDBHandler_PersistsErrors(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewDBHandler(db, time.Hour)
	t.Cleanup(h.Stop)

	logger := slog.New(h).With("request_id", "req-42")
	logger.Info("ignored")
	logger.Error("track delete failed", "user_id", "u-1", "error", "boom", "track_id", "t-9")
	h.Flush()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "track delete failed", entry.Message)
	assert.Equal(t, "req-42", entry.RequestID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u-1", *entry.UserID)
	assert.Equal(t, "boom", entry.Error)
	assert.JSONEq(t, `{"track_id":"t-9"}`, string(entry.Extra))
}

func TestDBHandler_KeepsGroupPaths(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewDBHandler(db, time.Hour)
	t.Cleanup(h.Stop)

	logger := slog.New(h).With("request_id", "req-7").WithGroup("http").With("route", "/api/playlists")
	logger.Error("request failed",
		"status", 500,
		"request_id", "inner",
		slog.Group("playlist", "id", "p-1"),
	)
	h.Flush()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "req-7", entry.RequestID)
	assert.JSONEq(t, `{
		"http.route": "/api/playlists",
		"http.status": 500,
		"http.request_id": "inner",
		"http.playlist.id": "p-1"
	}`, string(entry.Extra))
}

func TestPurgeOlderThan(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now().UTC()

	require.NoError(t, db.Create(&[]models.SystemLog{
		{Timestamp: now.Add(-48 * time.Hour), Level: "ERROR", Message: "old"},
		{Timestamp: now, Level: "ERROR", Message: "fresh"},
	}).Error)

	deleted, err := PurgeOlderThan(db, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []models.SystemLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "fresh", remaining[0].Message)
}
