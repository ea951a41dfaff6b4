package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/svc/entity"
	"github.com/dmitrymomot/notifykit/svc/notification"
)

// Memory is an in-memory Store. Suitable for development and testing.
type Memory struct {
	mu             sync.RWMutex
	users          map[string]entity.User
	notes          map[string]entity.Note
	followRequests map[string]entity.FollowRequest
	notifications  map[string][]notification.Notification // notifiee id -> notifications
}

func NewMemory() *Memory {
	return &Memory{
		users:          make(map[string]entity.User),
		notes:          make(map[string]entity.Note),
		followRequests: make(map[string]entity.FollowRequest),
		notifications:  make(map[string][]notification.Notification),
	}
}

// AddUser stores u, assigning an id and creation time when they are empty.
func (m *Memory) AddUser(u entity.User) entity.User {
	fillIdentity(&u.ID, &u.CreatedAt)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return u
}

// AddNote stores n without its relations. The author must already exist.
func (m *Memory) AddNote(n entity.Note) (entity.Note, error) {
	fillIdentity(&n.ID, &n.CreatedAt)
	n.User, n.Reply, n.Renote = nil, nil, nil
	if n.Visibility == "" {
		n.Visibility = entity.VisibilityPublic
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[n.UserID]; !ok {
		return entity.Note{}, fmt.Errorf("%w: %s", ErrUserRequired, n.UserID)
	}
	m.notes[n.ID] = n
	return n, nil
}

func (m *Memory) DeleteNote(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.notes, id)
}

func (m *Memory) AddFollowRequest(r entity.FollowRequest) entity.FollowRequest {
	fillIdentity(&r.ID, &r.CreatedAt)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.followRequests[r.ID] = r
	return r
}

// DeleteFollowRequest removes a request once it is accepted, rejected or withdrawn.
func (m *Memory) DeleteFollowRequest(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.followRequests, id)
}

// AddNotification stores n for its notifiee.
func (m *Memory) AddNotification(n notification.Notification) (notification.Notification, error) {
	if n.NotifieeID == "" {
		return notification.Notification{}, fmt.Errorf("%w: notifiee is required", ErrInvalidNotification)
	}
	if !n.Type.Valid() {
		return notification.Notification{}, fmt.Errorf("%w: %w", ErrInvalidNotification, notification.ErrUnknownKind)
	}
	fillIdentity(&n.ID, &n.CreatedAt)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[n.NotifieeID] = append(m.notifications[n.NotifieeID], n)
	return n, nil
}

func (m *Memory) FindUsers(_ context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return []entity.User{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *Memory) FindNotesWithRelations(_ context.Context, ids []string) ([]entity.Note, error) {
	if len(ids) == 0 {
		return []entity.Note{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Note, 0, len(ids))
	for _, id := range ids {
		n, ok := m.notes[id]
		if !ok {
			continue
		}
		n.User = m.userRef(n.UserID)
		if n.ReplyID != nil {
			n.Reply = m.noteRef(*n.ReplyID)
		}
		if n.RenoteID != nil {
			n.Renote = m.noteRef(*n.RenoteID)
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *Memory) userRef(id string) *entity.User {
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	return &u
}

func (m *Memory) noteRef(id string) *entity.Note {
	n, ok := m.notes[id]
	if !ok {
		return nil
	}
	n.User = m.userRef(n.UserID)
	return &n
}

func (m *Memory) FindPendingFollowRequests(_ context.Context, followerIDs []string) ([]entity.FollowRequest, error) {
	if len(followerIDs) == 0 {
		return []entity.FollowRequest{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []entity.FollowRequest{}
	for _, r := range m.followRequests {
		if slices.Contains(followerIDs, r.FollowerID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListNotifications returns userID's notifications newest first.
func (m *Memory) ListNotifications(_ context.Context, userID string, opts ListOptions) ([]notification.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.notifications[userID]

	var cursor *notification.Notification
	if opts.UntilID != "" {
		i := slices.IndexFunc(all, func(n notification.Notification) bool { return n.ID == opts.UntilID })
		if i < 0 {
			return []notification.Notification{}, nil
		}
		cursor = &all[i]
	}

	filtered := make([]notification.Notification, 0, len(all))
	for _, n := range all {
		if !opts.allows(n.Type) {
			continue
		}
		if cursor != nil && !newer(*cursor, n) {
			continue
		}
		filtered = append(filtered, n)
	}

	slices.SortFunc(filtered, func(a, b notification.Notification) int {
		if newer(a, b) {
			return -1
		}
		if newer(b, a) {
			return 1
		}
		return 0
	})

	if limit := opts.limit(); len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// newer orders notifications by creation time, then id, both descending.
func newer(a, b notification.Notification) bool {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c > 0
	}
	return cmp.Compare(a.ID, b.ID) > 0
}

func fillIdentity(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
