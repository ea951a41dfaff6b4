package notification

import (
	"time"
)

// Kind is the notification type as it appears on the wire.
type Kind string

const (
	KindNote                  Kind = "note"
	KindFollow                Kind = "follow"
	KindMention               Kind = "mention"
	KindReply                 Kind = "reply"
	KindRenote                Kind = "renote"
	KindQuote                 Kind = "quote"
	KindReaction              Kind = "reaction"
	KindPollEnded             Kind = "pollEnded"
	KindReceiveFollowRequest  Kind = "receiveFollowRequest"
	KindFollowRequestAccepted Kind = "followRequestAccepted"
	KindAchievementEarned     Kind = "achievementEarned"
	KindApp                   Kind = "app"
	KindTest                  Kind = "test"
)

// Kinds lists every supported kind.
var Kinds = []Kind{
	KindNote,
	KindFollow,
	KindMention,
	KindReply,
	KindRenote,
	KindQuote,
	KindReaction,
	KindPollEnded,
	KindReceiveFollowRequest,
	KindFollowRequestAccepted,
	KindAchievementEarned,
	KindApp,
	KindTest,
}

// Valid reports whether k is one of Kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNote, KindFollow, KindMention, KindReply, KindRenote, KindQuote, KindReaction,
		KindPollEnded, KindReceiveFollowRequest, KindFollowRequestAccepted, KindAchievementEarned,
		KindApp, KindTest:
		return true
	}
	return false
}

// RequiresNote reports whether notifications of this kind embed the note they reference.
func (k Kind) RequiresNote() bool {
	switch k {
	case KindNote, KindMention, KindReply, KindRenote, KindQuote, KindReaction, KindPollEnded:
		return true
	}
	return false
}

// Notification is a stored notification record. It is never modified by packing.
type Notification struct {
	ID         string
	CreatedAt  time.Time
	Type       Kind
	NotifieeID string  // the user the notification belongs to
	NotifierID *string // the actor; nil for system-generated notifications
	NoteID     *string
	IsRead     bool

	Reaction     string // KindReaction
	Achievement  string // KindAchievementEarned
	CustomBody   string // KindApp
	CustomHeader *string
	CustomIcon   *string
}
