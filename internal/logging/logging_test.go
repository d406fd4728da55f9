package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratacloud/careers-backend/internal/models"
)

func TestToSystemLog_MapsKnownAttrs(t *testing.T) {
	r := slog.NewRecord(time.Now(), slog.LevelError, "store failure", 0)
	r.AddAttrs(
		slog.String("route", "/api/users"),
		slog.String("user_id", "u1"),
		slog.String("error", "boom"),
		slog.Float64("latency_ms", 12.6),
		slog.String("table", "careers"),
	)

	entry := toSystemLog(r, []slog.Attr{slog.String("request_id", "req-1")})

	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "store failure", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "/api/users", entry.Route)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u1", *entry.UserID)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, "careers", extra["table"])
}

func TestPGHandler_BuffersErrorsOnly(t *testing.T) {
	var mu sync.Mutex
	var written []models.SystemLog
	h := newPGHandler(func(batch []models.SystemLog) error {
		mu.Lock()
		defer mu.Unlock()
		written = append(written, batch...)
		return nil
	}, time.Hour)

	logger := slog.New(h).With("request_id", "req-9")
	logger.Info("ignored")
	logger.Error("kept", "action", "register")
	h.Stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(written) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "kept", written[0].Message)
	assert.Equal(t, "register", written[0].Action)
	assert.Equal(t, "req-9", written[0].RequestID)
}

func TestNewHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	second := slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError})
	logger := slog.New(NewHandler(&a, second))

	logger.Info("hello")
	logger.Error("bad")

	assert.Contains(t, a.String(), "hello")
	assert.Contains(t, a.String(), "bad")
	assert.NotContains(t, b.String(), "hello")
	assert.Contains(t, b.String(), "bad")
}

func TestMultiHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	assert.False(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, m.Enabled(context.Background(), slog.LevelError))
}

func TestRunCleanup_PurgesOnStartAndStops(t *testing.T) {
	now := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	cutoffs := make(chan time.Time, 4)
	purge := func(cutoff time.Time) (int64, error) {
		cutoffs <- cutoff
		return 3, nil
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		runCleanup(purge, 30, time.Hour, func() time.Time { return now }, done)
		close(finished)
	}()

	select {
	case got := <-cutoffs:
		assert.Equal(t, time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC), got)
	case <-time.After(time.Second):
		t.Fatal("purge did not run on start")
	}

	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}
