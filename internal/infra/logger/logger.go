// Package logger provides the colored slog handler used by the folio binary.
// Output format: "<time> <LEVEL> <message> key=value ...", one record per line.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Options configures a Handler.
type Options struct {
	Level      slog.Leveler
	TimeFormat string
	// NoColor disables ANSI colors regardless of terminal detection.
	NoColor bool
}

// DefaultOptions is the configuration used by cmd/folio.
var DefaultOptions = &Options{
	Level:      slog.LevelInfo,
	TimeFormat: time.DateTime,
}

// Handler is a slog.Handler writing human-readable, level-colored lines.
type Handler struct {
	w      io.Writer
	mu     *sync.Mutex
	opts   Options
	attrs  []slog.Attr
	groups []string

	levelColors map[slog.Level]*color.Color
	keyColor    *color.Color
}

// NewHandler creates a Handler writing to w. A nil opts uses DefaultOptions.
func NewHandler(w io.Writer, opts *Options) *Handler {
	if opts == nil {
		opts = DefaultOptions
	}
	o := *opts
	if o.Level == nil {
		o.Level = slog.LevelInfo
	}
	if o.TimeFormat == "" {
		o.TimeFormat = time.DateTime
	}

	h := &Handler{
		w:    w,
		mu:   &sync.Mutex{},
		opts: o,
		levelColors: map[slog.Level]*color.Color{
			slog.LevelDebug: color.New(color.FgMagenta),
			slog.LevelInfo:  color.New(color.FgGreen),
			slog.LevelWarn:  color.New(color.FgYellow),
			slog.LevelError: color.New(color.FgRed, color.Bold),
		},
		keyColor: color.New(color.FgCyan),
	}
	if o.NoColor {
		for _, c := range h.levelColors {
			c.DisableColor()
		}
		h.keyColor.DisableColor()
	}
	return h
}

// Err wraps an error as a slog attribute under the "error" key.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Enabled reports whether the handler emits records at level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle formats and writes a single record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(r.Time.Format(h.opts.TimeFormat))
		b.WriteByte(' ')
	}
	b.WriteString(h.levelColor(r.Level).Sprint(r.Level.String()))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		h.appendAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a handler that always emits attrs.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := h.clone()
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		nh.attrs = append(nh.attrs, a)
	}
	return nh
}

// WithGroup returns a handler that prefixes subsequent keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := h.clone()
	nh.groups = append(nh.groups, name)
	return nh
}

func (h *Handler) clone() *Handler {
	nh := *h
	nh.attrs = append([]slog.Attr(nil), h.attrs...)
	nh.groups = append([]string(nil), h.groups...)
	return &nh
}

func (h *Handler) levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return h.levelColors[slog.LevelError]
	case level >= slog.LevelWarn:
		return h.levelColors[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return h.levelColors[slog.LevelInfo]
	default:
		return h.levelColors[slog.LevelDebug]
	}
}

func (h *Handler) appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.appendAttr(b, key, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(h.keyColor.Sprint(key))
	b.WriteByte('=')
	b.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}
		return s
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		return fmt.Sprint(v.Any())
	}
}
