package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a request context. It reports
// false when the context carries nothing for it.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler appends the attributes of its extractors to every record.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func withContextAttrs(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	if len(extractors) == 0 {
		return next
	}
	return &contextHandler{Handler: next, extractors: extractors}
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok && !attr.Equal(slog.Attr{}) {
			rec.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
