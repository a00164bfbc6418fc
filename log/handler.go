package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// formatterHandler adapts a LogFormatter to the slog.Handler interface,
// letting Logger render through TextFormatter/ColorFormatter instead of
// slog's own handlers when NewWithFormat selects one.
type formatterHandler struct {
	formatter LogFormatter
	level     slog.Level
	out       io.Writer
	prefix    string
	attrs     map[string]interface{}
}

func newFormatterHandler(f LogFormatter, level slog.Level, out io.Writer) *formatterHandler {
	return &formatterHandler{formatter: f, level: level, out: out}
}

func (h *formatterHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *formatterHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]interface{}, len(h.attrs)+r.NumAttrs())
	for k, v := range h.attrs {
		fields[h.key(k)] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[h.key(a.Key)] = a.Value.Any()
		return true
	})
	entry := LogEntry{
		Timestamp: r.Time,
		Level:     slogToLogLevel(r.Level),
		Message:   r.Message,
		Fields:    fields,
	}
	_, err := fmt.Fprintln(h.out, h.formatter.Format(entry))
	return err
}

func (h *formatterHandler) key(k string) string {
	if h.prefix == "" {
		return k
	}
	return h.prefix + "." + k
}

func (h *formatterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := &formatterHandler{formatter: h.formatter, level: h.level, out: h.out, prefix: h.prefix}
	nh.attrs = make(map[string]interface{}, len(h.attrs)+len(attrs))
	for k, v := range h.attrs {
		nh.attrs[k] = v
	}
	for _, a := range attrs {
		nh.attrs[a.Key] = a.Value.Any()
	}
	return nh
}

func (h *formatterHandler) WithGroup(name string) slog.Handler {
	nh := &formatterHandler{formatter: h.formatter, level: h.level, out: h.out, attrs: h.attrs}
	if h.prefix == "" {
		nh.prefix = name
	} else {
		nh.prefix = h.prefix + "." + name
	}
	return nh
}

// slogToLogLevel maps slog's level scale onto this package's LogLevel
// enum so formatterHandler can drive TextFormatter/ColorFormatter, which
// predate slog.Level in this codebase.
func slogToLogLevel(l slog.Level) LogLevel {
	switch {
	case l < slog.LevelInfo:
		return DEBUG
	case l < slog.LevelWarn:
		return INFO
	case l < slog.LevelError:
		return WARN
	default:
		return ERROR
	}
}
