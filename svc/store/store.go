package store

import (
	"context"
	"slices"

	"github.com/dmitrymomot/notifykit/svc/entity"
	"github.com/dmitrymomot/notifykit/svc/notification"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Store is implemented by every backend in this package. It satisfies both
// entity.Store and notification.Repository.
type Store interface {
	entity.Store
	FindPendingFollowRequests(ctx context.Context, followerIDs []string) ([]entity.FollowRequest, error)
	ListNotifications(ctx context.Context, userID string, opts ListOptions) ([]notification.Notification, error)
}

// ListOptions pages and filters ListNotifications.
type ListOptions struct {
	Limit        int    // defaults to DefaultListLimit, capped at MaxListLimit
	UntilID      string // return only notifications older than this one
	IncludeTypes []notification.Kind
	ExcludeTypes []notification.Kind
}

func (o ListOptions) limit() int {
	switch {
	case o.Limit <= 0:
		return DefaultListLimit
	case o.Limit > MaxListLimit:
		return MaxListLimit
	}
	return o.Limit
}

func (o ListOptions) allows(k notification.Kind) bool {
	if len(o.IncludeTypes) > 0 && !slices.Contains(o.IncludeTypes, k) {
		return false
	}
	return !slices.Contains(o.ExcludeTypes, k)
}

func kindStrings(kinds []notification.Kind) []string {
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, string(k))
	}
	return out
}

var (
	_ Store                   = (*Memory)(nil)
	_ Store                   = (*Postgres)(nil)
	_ Store                   = (*Mongo)(nil)
	_ Store                   = (*CachedUsers)(nil)
	_ notification.Repository = (Store)(nil)
)
