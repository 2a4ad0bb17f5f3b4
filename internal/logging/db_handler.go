package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const batchSize = 50

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs.
type DBHandler struct {
	db     *gorm.DB
	mu     sync.Mutex
	buffer []models.SystemLog
	ticker *time.Ticker
	done   chan struct{}
	stop   sync.Once
}

func NewDBHandler(db *gorm.DB, interval time.Duration) *DBHandler {
	h := &DBHandler{
		db:     db,
		buffer: make([]models.SystemLog, 0, batchSize),
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go h.flushLoop()
	return h
}

func (h *DBHandler) flushLoop() {
	for {
		select {
		case <-h.ticker.C:
			h.Flush()
		case <-h.done:
			h.Flush()
			return
		}
	}
}

// Flush writes buffered records immediately.
func (h *DBHandler) Flush() {
	h.mu.Lock()
	if len(h.buffer) == 0 {
		h.mu.Unlock()
		return
	}
	batch := h.buffer
	h.buffer = make([]models.SystemLog, 0, batchSize)
	h.mu.Unlock()

	if err := h.db.CreateInBatches(batch, batchSize).Error; err != nil {
		// Warn, so the failure is not routed back into this handler.
		slog.Warn("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

func (h *DBHandler) Stop() {
	h.stop.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	return h.handle(record, nil, "")
}

// handle stores record. preset holds attrs bound through WithAttrs, already
// wrapped in their groups; prefix qualifies the record's own attrs. Only
// ungrouped well-known keys fill columns, everything else lands in Extra
// under its dotted group path.
func (h *DBHandler) handle(record slog.Record, preset []slog.Attr, prefix string) error {
	entry := models.SystemLog{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	var apply func(prefix string, a slog.Attr)
	apply = func(prefix string, a slog.Attr) {
		a.Value = a.Value.Resolve()
		if a.Value.Kind() == slog.KindGroup {
			if a.Key != "" {
				prefix += a.Key + "."
			}
			for _, member := range a.Value.Group() {
				apply(prefix, member)
			}
			return
		}
		if a.Key == "" {
			return
		}
		if prefix != "" {
			extra[prefix+a.Key] = a.Value.Any()
			return
		}

		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			switch a.Value.Kind() {
			case slog.KindFloat64:
				entry.LatencyMs = int(math.Round(a.Value.Float64()))
			case slog.KindInt64:
				entry.LatencyMs = int(a.Value.Int64())
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
	}

	for _, a := range preset {
		apply("", a)
	}
	record.Attrs(func(a slog.Attr) bool {
		apply(prefix, a)
		return true
	})

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.mu.Lock()
	h.buffer = append(h.buffer, entry)
	needFlush := len(h.buffer) >= batchSize
	h.mu.Unlock()

	if needFlush {
		go h.Flush()
	}
	return nil
}

// WithAttrs returns a view that shares the buffer but adds attrs to every
// record.
func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return (&attrHandler{parent: h}).WithAttrs(attrs)
}

func (h *DBHandler) WithGroup(name string) slog.Handler {
	return (&attrHandler{parent: h}).WithGroup(name)
}

type attrHandler struct {
	parent *DBHandler
	attrs  []slog.Attr
	prefix string
}

func (a *attrHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return a.parent.Enabled(ctx, level)
}

func (a *attrHandler) Handle(_ context.Context, record slog.Record) error {
	return a.parent.handle(record, a.attrs, a.prefix)
}

func (a *attrHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return a
	}
	bound := attrs
	if a.prefix != "" {
		bound = []slog.Attr{{
			Key:   strings.TrimSuffix(a.prefix, "."),
			Value: slog.GroupValue(attrs...),
		}}
	}
	merged := append(append([]slog.Attr{}, a.attrs...), bound...)
	return &attrHandler{parent: a.parent, attrs: merged, prefix: a.prefix}
}

func (a *attrHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return a
	}
	return &attrHandler{parent: a.parent, attrs: a.attrs, prefix: a.prefix + name + "."}
}
