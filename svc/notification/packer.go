package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/async"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/svc/entity"
)

// PackOptions is reserved for future rendering switches.
type PackOptions struct{}

// Hint carries entities already packed by the caller. A nil map means the
// packer resolves that entity type itself. A non-nil map is authoritative:
// an id missing from it is treated as unresolvable and the entity is omitted.
type Hint struct {
	Notes map[string]entity.PackedNote
	Users map[string]entity.PackedUser
}

// Packer converts notifications into their client-facing form.
type Packer struct {
	repo   Repository
	notes  NotePacker
	users  UserPacker
	logger *slog.Logger
}

// PackerOption configures a Packer.
type PackerOption func(*Packer)

// WithPackerLogger sets the logger used to report dropped notifications.
func WithPackerLogger(l *slog.Logger) PackerOption {
	return func(p *Packer) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPacker creates a Packer. All collaborators are required.
func NewPacker(repo Repository, notes NotePacker, users UserPacker, opts ...PackerOption) *Packer {
	if repo == nil || notes == nil || users == nil {
		panic("notification: NewPacker requires repository, note packer and user packer")
	}

	p := &Packer{
		repo:   repo,
		notes:  notes,
		users:  users,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pack renders a single notification as seen by viewerID.
// The note (for note-bearing kinds) and the actor are resolved concurrently,
// from hint when provided, otherwise through the packers. Kinds outside Kinds
// are rendered with the common fields only. Packer errors are returned unchanged.
func (p *Packer) Pack(ctx context.Context, n Notification, viewerID string, _ PackOptions, hint *Hint) (Packed, error) {
	var noteF *async.Future[*entity.PackedNote]
	if n.Type.RequiresNote() && n.NoteID != nil {
		noteF = p.resolveNote(ctx, *n.NoteID, viewerID, hint)
	}

	var userF *async.Future[*entity.PackedUser]
	if n.NotifierID != nil {
		userF = p.resolveUser(ctx, *n.NotifierID, viewerID, hint)
	}

	note, err := awaitOptional(noteF)
	if err != nil {
		return nil, err
	}
	user, err := awaitOptional(userF)
	if err != nil {
		return nil, err
	}

	base := Base{
		ID:        n.ID,
		CreatedAt: n.CreatedAt.UTC().Format(entity.TimeFormat),
		Type:      n.Type,
		User:      user,
	}
	if n.NotifierID != nil {
		id := *n.NotifierID
		base.UserID = &id
	}

	return assemble(n, base, note), nil
}

func (p *Packer) resolveNote(ctx context.Context, noteID, viewerID string, hint *Hint) *async.Future[*entity.PackedNote] {
	if hint != nil && hint.Notes != nil {
		if note, ok := hint.Notes[noteID]; ok {
			return async.Resolved(&note)
		}
		return async.Resolved[*entity.PackedNote](nil)
	}

	return async.Async(ctx, noteID, func(ctx context.Context, id string) (*entity.PackedNote, error) {
		note, err := p.notes.Pack(ctx, id, viewerID, entity.PackOptions{Detail: true})
		if err != nil {
			return nil, err
		}
		return &note, nil
	})
}

func (p *Packer) resolveUser(ctx context.Context, userID, viewerID string, hint *Hint) *async.Future[*entity.PackedUser] {
	if hint != nil && hint.Users != nil {
		if user, ok := hint.Users[userID]; ok {
			return async.Resolved(&user)
		}
		return async.Resolved[*entity.PackedUser](nil)
	}

	return async.Async(ctx, userID, func(ctx context.Context, id string) (*entity.PackedUser, error) {
		user, err := p.users.Pack(ctx, id, viewerID, entity.PackOptions{Detail: false})
		if err != nil {
			return nil, err
		}
		return &user, nil
	})
}

func awaitOptional[T any](f *async.Future[*T]) (*T, error) {
	if f == nil {
		return nil, nil
	}
	return f.Await()
}

func assemble(n Notification, base Base, note *entity.PackedNote) Packed {
	switch n.Type {
	case KindReaction:
		return ReactionNotification{Base: base, Note: note, Reaction: n.Reaction}
	case KindAchievementEarned:
		return AchievementNotification{Base: base, Achievement: n.Achievement}
	case KindApp:
		return AppNotification{Base: base, Body: n.CustomBody, Header: n.CustomHeader, Icon: n.CustomIcon}
	}
	if n.Type.RequiresNote() {
		return NoteNotification{Base: base, Note: note}
	}
	return PlainNotification{Base: base}
}

// PackMany renders notifications for viewerID, preserving their order.
//
// Referenced notes and actors are fetched and packed once for the whole batch.
// Notifications whose note could not be resolved, and follow request
// notifications whose request is no longer pending, are left out of the
// result without an error. Any storage or packer failure fails the whole call.
func (p *Packer) PackMany(ctx context.Context, notifications []Notification, viewerID string) ([]Packed, error) {
	if len(notifications) == 0 {
		return []Packed{}, nil
	}

	packedNotes, err := p.packReferencedNotes(ctx, notifications, viewerID)
	if err != nil {
		return nil, err
	}
	valid, missingNotes := filterResolvedNotes(notifications, packedNotes)

	packedUsers, err := p.packReferencedUsers(ctx, valid, viewerID)
	if err != nil {
		return nil, err
	}

	valid, staleRequests, err := p.dropStaleFollowRequests(ctx, valid)
	if err != nil {
		return nil, err
	}

	if missingNotes > 0 || staleRequests > 0 {
		p.logger.DebugContext(ctx, "notifications dropped while packing",
			logger.ViewerID(viewerID),
			logger.Count("missing_note", missingNotes),
			logger.Count("stale_follow_request", staleRequests),
		)
	}

	hint := &Hint{Notes: packedNotes, Users: packedUsers}
	return async.Map(ctx, valid, func(ctx context.Context, n Notification) (Packed, error) {
		return p.Pack(ctx, n, viewerID, PackOptions{}, hint)
	})
}

func (p *Packer) packReferencedNotes(ctx context.Context, notifications []Notification, viewerID string) (map[string]entity.PackedNote, error) {
	ids := distinct(notifications, func(n Notification) *string { return n.NoteID })
	packed := make(map[string]entity.PackedNote, len(ids))
	if len(ids) == 0 {
		return packed, nil
	}

	notes, err := p.repo.FindNotesWithRelations(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	list, err := p.notes.PackMany(ctx, notes, viewerID, entity.PackOptions{Detail: true})
	if err != nil {
		return nil, fmt.Errorf("failed to pack notes: %w", err)
	}

	for _, n := range list {
		packed[n.ID] = n
	}
	return packed, nil
}

func (p *Packer) packReferencedUsers(ctx context.Context, notifications []Notification, viewerID string) (map[string]entity.PackedUser, error) {
	ids := distinct(notifications, func(n Notification) *string { return n.NotifierID })
	packed := make(map[string]entity.PackedUser, len(ids))
	if len(ids) == 0 {
		return packed, nil
	}

	users, err := p.repo.FindUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	list, err := p.users.PackMany(ctx, users, viewerID, entity.PackOptions{Detail: false})
	if err != nil {
		return nil, fmt.Errorf("failed to pack users: %w", err)
	}

	for _, u := range list {
		packed[u.ID] = u
	}
	return packed, nil
}

func (p *Packer) dropStaleFollowRequests(ctx context.Context, notifications []Notification) ([]Notification, int, error) {
	var requests []Notification
	for _, n := range notifications {
		if n.Type == KindReceiveFollowRequest {
			requests = append(requests, n)
		}
	}
	if len(requests) == 0 {
		return notifications, 0, nil
	}

	var pending []entity.FollowRequest
	if followerIDs := distinct(requests, func(n Notification) *string { return n.NotifierID }); len(followerIDs) > 0 {
		var err error
		pending, err = p.repo.FindPendingFollowRequests(ctx, followerIDs)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load follow requests: %w", err)
		}
	}

	valid, dropped := filterPendingFollowRequests(notifications, pending)
	return valid, dropped, nil
}

// distinct returns the unique non-nil values of ref over notifications in first-seen order.
func distinct(notifications []Notification, ref func(Notification) *string) []string {
	seen := make(map[string]struct{}, len(notifications))
	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		id := ref(n)
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}
	return ids
}
