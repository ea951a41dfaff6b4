package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/notifykit/svc/entity"
	"github.com/dmitrymomot/notifykit/svc/notification"
)

const (
	usersCollection          = "users"
	notesCollection          = "notes"
	followRequestsCollection = "follow_requests"
	notificationsCollection  = "notifications"
)

// Mongo is a Store over the users, notes, follow_requests and notifications
// collections of a database.
type Mongo struct {
	users          *mongo.Collection
	notes          *mongo.Collection
	followRequests *mongo.Collection
	notifications  *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		users:          db.Collection(usersCollection),
		notes:          db.Collection(notesCollection),
		followRequests: db.Collection(followRequestsCollection),
		notifications:  db.Collection(notificationsCollection),
	}
}

type userDoc struct {
	ID            string    `bson:"_id"`
	CreatedAt     time.Time `bson:"created_at"`
	Username      string    `bson:"username"`
	Host          *string   `bson:"host,omitempty"`
	Name          *string   `bson:"name,omitempty"`
	AvatarURL     *string   `bson:"avatar_url,omitempty"`
	IsBot         bool      `bson:"is_bot"`
	PinnedNoteIDs []string  `bson:"pinned_note_ids,omitempty"`
}

type noteDoc struct {
	ID         string    `bson:"_id"`
	CreatedAt  time.Time `bson:"created_at"`
	UserID     string    `bson:"user_id"`
	Text       *string   `bson:"text,omitempty"`
	CW         *string   `bson:"cw,omitempty"`
	Visibility string    `bson:"visibility"`
	ReplyID    *string   `bson:"reply_id,omitempty"`
	RenoteID   *string   `bson:"renote_id,omitempty"`
}

type followRequestDoc struct {
	ID         string    `bson:"_id"`
	CreatedAt  time.Time `bson:"created_at"`
	FollowerID string    `bson:"follower_id"`
	FolloweeID string    `bson:"followee_id"`
}

type notificationDoc struct {
	ID           string    `bson:"_id"`
	CreatedAt    time.Time `bson:"created_at"`
	Type         string    `bson:"type"`
	NotifieeID   string    `bson:"notifiee_id"`
	NotifierID   *string   `bson:"notifier_id,omitempty"`
	NoteID       *string   `bson:"note_id,omitempty"`
	IsRead       bool      `bson:"is_read"`
	Reaction     string    `bson:"reaction,omitempty"`
	Achievement  string    `bson:"achievement,omitempty"`
	CustomBody   string    `bson:"custom_body,omitempty"`
	CustomHeader *string   `bson:"custom_header,omitempty"`
	CustomIcon   *string   `bson:"custom_icon,omitempty"`
}

func findIn[T any](ctx context.Context, coll *mongo.Collection, field string, ids []string) ([]T, error) {
	cur, err := coll.Find(ctx, bson.M{field: bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Mongo) FindUsers(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return []entity.User{}, nil
	}

	docs, err := findIn[userDoc](ctx, s.users, "_id", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	out := make([]entity.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.User(d))
	}
	return out, nil
}

func (s *Mongo) findNotes(ctx context.Context, ids []string) ([]entity.Note, error) {
	docs, err := findIn[noteDoc](ctx, s.notes, "_id", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}

	out := make([]entity.Note, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.Note{
			ID:         d.ID,
			CreatedAt:  d.CreatedAt,
			UserID:     d.UserID,
			Text:       d.Text,
			CW:         d.CW,
			Visibility: entity.Visibility(d.Visibility),
			ReplyID:    d.ReplyID,
			RenoteID:   d.RenoteID,
		})
	}
	return out, nil
}

func (s *Mongo) FindNotesWithRelations(ctx context.Context, ids []string) ([]entity.Note, error) {
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

func (s *Mongo) FindPendingFollowRequests(ctx context.Context, followerIDs []string) ([]entity.FollowRequest, error) {
	if len(followerIDs) == 0 {
		return []entity.FollowRequest{}, nil
	}

	docs, err := findIn[followRequestDoc](ctx, s.followRequests, "follower_id", followerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query follow requests: %w", err)
	}

	out := make([]entity.FollowRequest, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.FollowRequest(d))
	}
	return out, nil
}

func (s *Mongo) ListNotifications(ctx context.Context, userID string, opts ListOptions) ([]notification.Notification, error) {
	filter := bson.D{{Key: "notifiee_id", Value: userID}}

	if opts.UntilID != "" {
		var cursor notificationDoc
		err := s.notifications.FindOne(ctx, bson.M{"_id": opts.UntilID, "notifiee_id": userID}).Decode(&cursor)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []notification.Notification{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load cursor notification: %w", err)
		}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.M{"created_at": bson.M{"$lt": cursor.CreatedAt}},
			bson.M{"created_at": cursor.CreatedAt, "_id": bson.M{"$lt": cursor.ID}},
		}})
	}

	typeFilter := bson.M{}
	if len(opts.IncludeTypes) > 0 {
		typeFilter["$in"] = kindStrings(opts.IncludeTypes)
	}
	if len(opts.ExcludeTypes) > 0 {
		typeFilter["$nin"] = kindStrings(opts.ExcludeTypes)
	}
	if len(typeFilter) > 0 {
		filter = append(filter, bson.E{Key: "type", Value: typeFilter})
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(opts.limit()))

	cur, err := s.notifications.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	var docs []notificationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(docs))
	for _, d := range docs {
		out = append(out, notification.Notification{
			ID:           d.ID,
			CreatedAt:    d.CreatedAt,
			Type:         notification.Kind(d.Type),
			NotifieeID:   d.NotifieeID,
			NotifierID:   d.NotifierID,
			NoteID:       d.NoteID,
			IsRead:       d.IsRead,
			Reaction:     d.Reaction,
			Achievement:  d.Achievement,
			CustomBody:   d.CustomBody,
			CustomHeader: d.CustomHeader,
			CustomIcon:   d.CustomIcon,
		})
	}
	return out, nil
}

// EnsureIndexes creates the indexes the lookups above rely on.
func (s *Mongo) EnsureIndexes(ctx context.Context) error {
	if _, err := s.followRequests.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "follower_id", Value: 1}, {Key: "followee_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create follow request index: %w", err)
	}
	if _, err := s.notifications.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "notifiee_id", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	}); err != nil {
		return fmt.Errorf("failed to create notification index: %w", err)
	}
	return nil
}
