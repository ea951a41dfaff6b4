package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/notifykit/svc/entity"
	"github.com/dmitrymomot/notifykit/svc/notification"
)

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx the store uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Postgres is a Store backed by the schema in Migrations.
type Postgres struct {
	db Querier
}

func NewPostgres(db Querier) *Postgres {
	return &Postgres{db: db}
}

type userRow struct {
	ID            string    `db:"id"`
	CreatedAt     time.Time `db:"created_at"`
	Username      string    `db:"username"`
	Host          *string   `db:"host"`
	Name          *string   `db:"name"`
	AvatarURL     *string   `db:"avatar_url"`
	IsBot         bool      `db:"is_bot"`
	PinnedNoteIDs []string  `db:"pinned_note_ids"`
}

func (r userRow) entity() entity.User {
	return entity.User{
		ID:            r.ID,
		CreatedAt:     r.CreatedAt,
		Username:      r.Username,
		Host:          r.Host,
		Name:          r.Name,
		AvatarURL:     r.AvatarURL,
		IsBot:         r.IsBot,
		PinnedNoteIDs: r.PinnedNoteIDs,
	}
}

type noteRow struct {
	ID         string    `db:"id"`
	CreatedAt  time.Time `db:"created_at"`
	UserID     string    `db:"user_id"`
	Text       *string   `db:"text"`
	CW         *string   `db:"cw"`
	Visibility string    `db:"visibility"`
	ReplyID    *string   `db:"reply_id"`
	RenoteID   *string   `db:"renote_id"`
}

func (r noteRow) entity() entity.Note {
	return entity.Note{
		ID:         r.ID,
		CreatedAt:  r.CreatedAt,
		UserID:     r.UserID,
		Text:       r.Text,
		CW:         r.CW,
		Visibility: entity.Visibility(r.Visibility),
		ReplyID:    r.ReplyID,
		RenoteID:   r.RenoteID,
	}
}

type followRequestRow struct {
	ID         string    `db:"id"`
	CreatedAt  time.Time `db:"created_at"`
	FollowerID string    `db:"follower_id"`
	FolloweeID string    `db:"followee_id"`
}

type notificationRow struct {
	ID           string    `db:"id"`
	CreatedAt    time.Time `db:"created_at"`
	Type         string    `db:"type"`
	NotifieeID   string    `db:"notifiee_id"`
	NotifierID   *string   `db:"notifier_id"`
	NoteID       *string   `db:"note_id"`
	IsRead       bool      `db:"is_read"`
	Reaction     string    `db:"reaction"`
	Achievement  string    `db:"achievement"`
	CustomBody   string    `db:"custom_body"`
	CustomHeader *string   `db:"custom_header"`
	CustomIcon   *string   `db:"custom_icon"`
}

func (r notificationRow) entity() notification.Notification {
	return notification.Notification{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		Type:         notification.Kind(r.Type),
		NotifieeID:   r.NotifieeID,
		NotifierID:   r.NotifierID,
		NoteID:       r.NoteID,
		IsRead:       r.IsRead,
		Reaction:     r.Reaction,
		Achievement:  r.Achievement,
		CustomBody:   r.CustomBody,
		CustomHeader: r.CustomHeader,
		CustomIcon:   r.CustomIcon,
	}
}

const (
	userColumns         = `id, created_at, username, host, name, avatar_url, is_bot, pinned_note_ids`
	noteColumns         = `id, created_at, user_id, text, cw, visibility, reply_id, renote_id`
	notificationColumns = `id, created_at, type, notifiee_id, notifier_id, note_id, is_read, reaction, achievement, custom_body, custom_header, custom_icon`
)

func (s *Postgres) FindUsers(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return []entity.User{}, nil
	}

	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}

	out := make([]entity.User, 0, len(records))
	for _, r := range records {
		out = append(out, r.entity())
	}
	return out, nil
}

func (s *Postgres) findNotes(ctx context.Context, ids []string) ([]entity.Note, error) {
	rows, err := s.db.Query(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[noteRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan notes: %w", err)
	}

	out := make([]entity.Note, 0, len(records))
	for _, r := range records {
		out = append(out, r.entity())
	}
	return out, nil
}

// FindNotesWithRelations loads the notes, then their replies and renotes, then
// every author involved, in three queries regardless of len(ids).
func (s *Postgres) FindNotesWithRelations(ctx context.Context, ids []string) ([]entity.Note, error) {
	if len(ids) == 0 {
		return []entity.Note{}, nil
	}

	notes, err := s.findNotes(ctx, ids)
	if err != nil {
		return nil, err
	}

	var relatedIDs []string
	for _, n := range notes {
		if n.ReplyID != nil {
			relatedIDs = append(relatedIDs, *n.ReplyID)
		}
		if n.RenoteID != nil {
			relatedIDs = append(relatedIDs, *n.RenoteID)
		}
	}
	related := map[string]entity.Note{}
	if len(relatedIDs) > 0 {
		list, err := s.findNotes(ctx, relatedIDs)
		if err != nil {
			return nil, err
		}
		for _, n := range list {
			related[n.ID] = n
		}
	}

	authorIDs := make([]string, 0, len(notes)+len(related))
	for _, n := range notes {
		authorIDs = append(authorIDs, n.UserID)
	}
	for _, n := range related {
		authorIDs = append(authorIDs, n.UserID)
	}
	authors, err := s.FindUsers(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	return expandRelations(notes, related, authors), nil
}

// expandRelations orders notes as loaded and attaches authors, replies and
// renotes where they were found.
func expandRelations(notes []entity.Note, related map[string]entity.Note, authors []entity.User) []entity.Note {
	users := make(map[string]entity.User, len(authors))
	for _, u := range authors {
		users[u.ID] = u
	}
	withUser := func(n entity.Note) *entity.Note {
		if u, ok := users[n.UserID]; ok {
			n.User = &u
		}
		return &n
	}

	out := make([]entity.Note, 0, len(notes))
	for _, n := range notes {
		expanded := withUser(n)
		if n.ReplyID != nil {
			if r, ok := related[*n.ReplyID]; ok {
				expanded.Reply = withUser(r)
			}
		}
		if n.RenoteID != nil {
			if r, ok := related[*n.RenoteID]; ok {
				expanded.Renote = withUser(r)
			}
		}
		out = append(out, *expanded)
	}
	return out
}

func (s *Postgres) FindPendingFollowRequests(ctx context.Context, followerIDs []string) ([]entity.FollowRequest, error) {
	if len(followerIDs) == 0 {
		return []entity.FollowRequest{}, nil
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, created_at, follower_id, followee_id FROM follow_requests WHERE follower_id = ANY($1)`,
		followerIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query follow requests: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[followRequestRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan follow requests: %w", err)
	}

	out := make([]entity.FollowRequest, 0, len(records))
	for _, r := range records {
		out = append(out, entity.FollowRequest(r))
	}
	return out, nil
}

// ListNotifications returns userID's notifications newest first. An UntilID
// that does not belong to the user yields an empty page.
func (s *Postgres) ListNotifications(ctx context.Context, userID string, opts ListOptions) ([]notification.Notification, error) {
	const query = `SELECT ` + notificationColumns + ` FROM notifications
		WHERE notifiee_id = $1
		  AND ($2::text = '' OR (created_at, id) < (
		      SELECT c.created_at, c.id FROM notifications c WHERE c.id = $2 AND c.notifiee_id = $1))
		  AND (cardinality($3::text[]) = 0 OR type = ANY($3))
		  AND NOT (type = ANY($4))
		ORDER BY created_at DESC, id DESC
		LIMIT $5`

	rows, err := s.db.Query(ctx, query,
		userID,
		opts.UntilID,
		kindStrings(opts.IncludeTypes),
		kindStrings(opts.ExcludeTypes),
		opts.limit(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[notificationRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(records))
	for _, r := range records {
		out = append(out, r.entity())
	}
	return out, nil
}
