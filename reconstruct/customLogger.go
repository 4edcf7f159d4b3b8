package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const moduleKey = "module"

// Handler writes one line per record:
//
//	[2006/01/02 15:04:05] [WARN] [module] message key=value
//
// The level is only printed above INFO. Attributes added with WithAttrs are
// kept, and WithGroup prefixes the keys that follow.
type Handler struct {
	level  slog.Leveler
	module string
	attrs  []string
	group  string
	mu     *sync.Mutex
	out    io.Writer
}

func NewHandler(o io.Writer, opts *slog.HandlerOptions) *Handler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &Handler{level: level, mu: &sync.Mutex{}, out: o}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) clone() *Handler {
	c := *h
	c.attrs = append([]string(nil), h.attrs...)
	return &c
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, a := range attrs {
		c.addAttr(a)
	}
	return c
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.group = c.group + name + "."
	return c
}

// addAttr keeps the top-level module apart, it is printed in brackets.
func (h *Handler) addAttr(a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Key == moduleKey && h.group == "" {
		h.module = a.Value.String()
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := h.clone()
		inner.group = h.group + a.Key + "."
		for _, ga := range a.Value.Group() {
			inner.addAttr(ga)
		}
		h.attrs = inner.attrs
		return
	}
	h.attrs = append(h.attrs, h.group+a.Key+"="+a.Value.String())
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	line := h.clone()
	r.Attrs(func(a slog.Attr) bool {
		line.addAttr(a)
		return true
	})

	var b strings.Builder
	b.WriteString(r.Time.Format("[2006/01/02 15:04:05]"))
	if r.Level > slog.LevelInfo {
		b.WriteString(" [" + r.Level.String() + "]")
	}
	if line.module != "" {
		b.WriteString(" [" + line.module + "]")
	}
	b.WriteString(" " + r.Message)
	for _, attr := range line.attrs {
		b.WriteString(" " + attr)
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}
