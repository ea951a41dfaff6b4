package feed

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/svc/notification"
	"github.com/dmitrymomot/notifykit/svc/store"
)

// Source lists stored notifications.
type Source interface {
	ListNotifications(ctx context.Context, userID string, opts store.ListOptions) ([]notification.Notification, error)
}

// Packer renders a page of notifications. Satisfied by *notification.Packer.
type Packer interface {
	PackMany(ctx context.Context, notifications []notification.Notification, viewerID string) ([]notification.Packed, error)
}

type Handler struct {
	source Source
	packer Packer
	logger *slog.Logger
}

type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHandler(source Source, packer Packer, opts ...Option) *Handler {
	h := &Handler{source: source, packer: packer, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns a router serving the feed at its root.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(ViewerMiddleware)
	r.Get("/", h.List)
	return r
}

// List handles GET requests for the viewer's notification feed.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewerID := ViewerFromContext(ctx)
	if viewerID == "" {
		h.fail(w, r, ErrUnauthorized)
		return
	}

	opts, err := parseListOptions(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	stored, err := h.source.ListNotifications(ctx, viewerID, opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	packed, err := h.packer.PackMany(ctx, stored, viewerID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	meta := map[string]any{"count": len(packed)}
	if len(stored) > 0 && len(stored) == opts.Limit {
		meta["nextUntilId"] = stored[len(stored)-1].ID
	}

	if err := writeJSON(w, http.StatusOK, Response{Data: packed, Meta: meta}); err != nil {
		h.logger.ErrorContext(ctx, "failed to write feed response", logger.Error(err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if _, ok := err.(HTTPError); !ok {
		h.logger.ErrorContext(r.Context(), "failed to serve notification feed", logger.Error(err))
	}
	if werr := writeError(w, err); werr != nil {
		h.logger.ErrorContext(r.Context(), "failed to write error response", logger.Error(werr))
	}
}

func parseListOptions(r *http.Request) (store.ListOptions, error) {
	q := r.URL.Query()
	opts := store.ListOptions{Limit: store.DefaultListLimit, UntilID: q.Get("untilId")}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > store.MaxListLimit {
			return store.ListOptions{}, ErrInvalidLimit
		}
		opts.Limit = limit
	}

	var err error
	if opts.IncludeTypes, err = parseKinds(q.Get("includeTypes")); err != nil {
		return store.ListOptions{}, err
	}
	if opts.ExcludeTypes, err = parseKinds(q.Get("excludeTypes")); err != nil {
		return store.ListOptions{}, err
	}
	return opts, nil
}

func parseKinds(raw string) ([]notification.Kind, error) {
	if raw == "" {
		return nil, nil
	}
	var kinds []notification.Kind
	for part := range strings.SplitSeq(raw, ",") {
		k := notification.Kind(strings.TrimSpace(part))
		if k == "" {
			continue
		}
		if !k.Valid() {
			return nil, ErrInvalidType
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
