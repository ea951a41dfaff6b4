package store

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/svc/entity"
)

// UserCache stores user records by id.
type UserCache interface {
	// GetMany returns the cached users among ids. Missing ids are simply absent.
	GetMany(ctx context.Context, ids []string) (map[string]entity.User, error)
	SetMany(ctx context.Context, users []entity.User) error
}

// CachedUsers serves FindUsers through a UserCache and delegates everything
// else to the wrapped Store. Cache failures are logged and fall back to the
// store.
type CachedUsers struct {
	Store
	cache  UserCache
	logger *slog.Logger
}

type CachedUsersOption func(*CachedUsers)

func WithCacheLogger(l *slog.Logger) CachedUsersOption {
	return func(c *CachedUsers) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewCachedUsers(next Store, cache UserCache, opts ...CachedUsersOption) *CachedUsers {
	c := &CachedUsers{Store: next, cache: cache, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedUsers) FindUsers(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return []entity.User{}, nil
	}

	hits, err := c.cache.GetMany(ctx, ids)
	if err != nil {
		c.logger.WarnContext(ctx, "user cache read failed", logger.Error(err))
		hits = nil
	}

	var missing []string
	for _, id := range ids {
		if _, ok := hits[id]; !ok {
			missing = append(missing, id)
		}
	}

	loaded := map[string]entity.User{}
	if len(missing) > 0 {
		users, err := c.Store.FindUsers(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			loaded[u.ID] = u
		}
		if len(users) > 0 {
			if err := c.cache.SetMany(ctx, users); err != nil {
				c.logger.WarnContext(ctx, "user cache write failed", logger.Error(err))
			}
		}
	}

	out := make([]entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := hits[id]; ok {
			out = append(out, u)
		} else if u, ok := loaded[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
