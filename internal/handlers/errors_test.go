package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedEvents struct {
	mu     sync.Mutex
	values []string
}

func (c *capturedEvents) add(event *sentry.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ex := range event.Exception {
		c.values = append(c.values, ex.Value)
	}
}

func (c *capturedEvents) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.values...)
}

// captureSentry binds a recording client to the global hub for the test.
func captureSentry(t *testing.T) *capturedEvents {
	t.Helper()

	events := &capturedEvents{}
	// BeforeSend drops every event, so the DSN is never contacted.
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn: "https://public@sentry.invalid/1",
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			events.add(event)
			return nil
		},
	})
	require.NoError(t, err)

	hub := sentry.CurrentHub()
	prev := hub.Client()
	hub.BindClient(client)
	t.Cleanup(func() { hub.BindClient(prev) })
	return events
}

func newErrorApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(sentryfiber.New(sentryfiber.Options{}))
	app.Get("/unhandled", func(c *fiber.Ctx) error {
		return errors.New("cache exploded")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/storage", func(c *fiber.Ctx) error {
		return respondError(c, errors.New("connection refused"))
	})
	app.Get("/domain", func(c *fiber.Ctx) error {
		return respondError(c, services.ErrAlreadyLinked)
	})
	return app
}

func TestErrors_ServerFailuresReachSentry(t *testing.T) {
	events := captureSentry(t)
	app := newErrorApp()

	tests := []struct {
		path   string
		status int
	}{
		{"/unhandled", fiber.StatusInternalServerError},
		{"/missing", fiber.StatusNotFound},
		{"/storage", fiber.StatusInternalServerError},
		{"/domain", fiber.StatusConflict},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, tt.status, resp.StatusCode, tt.path)
	}

	captured := events.list()
	assert.Contains(t, captured, "cache exploded")
	assert.Contains(t, captured, "connection refused")
	assert.NotContains(t, captured, fiber.ErrNotFound.Message)
	assert.NotContains(t, captured, services.ErrAlreadyLinked.Error())
}
