package notification

import (
	"context"

	"github.com/dmitrymomot/notifykit/svc/entity"
)

// Repository is the bulk read access used by PackMany. Implementations
// return an empty slice for an empty id list without querying.
type Repository interface {
	// FindNotesWithRelations loads notes with author and one level of
	// reply/renote expanded. Missing ids are omitted.
	FindNotesWithRelations(ctx context.Context, ids []string) ([]entity.Note, error)
	FindUsers(ctx context.Context, ids []string) ([]entity.User, error)
	// FindPendingFollowRequests returns the still-pending requests made by any of followerIDs.
	FindPendingFollowRequests(ctx context.Context, followerIDs []string) ([]entity.FollowRequest, error)
}

// NotePacker renders notes for a viewer. Satisfied by *entity.NotePacker.
type NotePacker interface {
	Pack(ctx context.Context, noteID, viewerID string, opts entity.PackOptions) (entity.PackedNote, error)
	PackMany(ctx context.Context, notes []entity.Note, viewerID string, opts entity.PackOptions) ([]entity.PackedNote, error)
}

// UserPacker renders users for a viewer. Satisfied by *entity.UserPacker.
type UserPacker interface {
	Pack(ctx context.Context, userID, viewerID string, opts entity.PackOptions) (entity.PackedUser, error)
	PackMany(ctx context.Context, users []entity.User, viewerID string, opts entity.PackOptions) ([]entity.PackedUser, error)
}
