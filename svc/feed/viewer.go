package feed

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// ViewerHeader carries the id of the authenticated user.
const ViewerHeader = "X-User-ID"

type viewerKey struct{}

func WithViewer(ctx context.Context, viewerID string) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewerID)
}

// ViewerFromContext returns the viewer id, or "" when none is set.
func ViewerFromContext(ctx context.Context) string {
	id, _ := ctx.Value(viewerKey{}).(string)
	return id
}

// ViewerMiddleware stores the X-User-ID header value in the request context.
// Requests without it are passed through; handlers reject them.
func ViewerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(ViewerHeader)); id != "" {
			r = r.WithContext(WithViewer(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// ViewerExtractor adds viewer_id to log records emitted during a request.
func ViewerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := ViewerFromContext(ctx); id != "" {
			return logger.ViewerID(id), true
		}
		return slog.Attr{}, false
	}
}
