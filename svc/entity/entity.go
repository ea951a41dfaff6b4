package entity

import (
	"time"
)

// Visibility controls who can see a note.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityHome      Visibility = "home"
	VisibilityFollowers Visibility = "followers"
	VisibilitySpecified Visibility = "specified"
)

// User is a stored account record.
type User struct {
	ID            string
	CreatedAt     time.Time
	Username      string
	Host          *string // nil for local users
	Name          *string
	AvatarURL     *string
	IsBot         bool
	PinnedNoteIDs []string
}

// Note is a stored content item. User, Reply and Renote are populated only
// when the record was loaded with relations.
type Note struct {
	ID         string
	CreatedAt  time.Time
	UserID     string
	Text       *string
	CW         *string
	Visibility Visibility
	ReplyID    *string
	RenoteID   *string

	User   *User
	Reply  *Note
	Renote *Note
}

// FollowRequest is a pending request from FollowerID to follow FolloweeID.
// Accepted, rejected and withdrawn requests are deleted.
type FollowRequest struct {
	ID         string
	CreatedAt  time.Time
	FollowerID string
	FolloweeID string
}
