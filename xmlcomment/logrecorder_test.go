package xmlcomment

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// recordedLog captures slog output so tests can assert on emitted warnings.
type recordedLog struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordedLog) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordedLog) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordedLog) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordedLog) WithGroup(string) slog.Handler      { return h }

func (h *recordedLog) warnings() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []slog.Record
	for _, r := range h.records {
		if r.Level == slog.LevelWarn {
			out = append(out, r)
		}
	}
	return out
}

func testLogger(t *testing.T) (*slog.Logger, *recordedLog) {
	t.Helper()
	h := &recordedLog{}
	return slog.New(h), h
}

func recordAttrs(r slog.Record) map[string]any {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	return attrs
}
