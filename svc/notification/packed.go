package notification

import (
	"github.com/dmitrymomot/notifykit/svc/entity"
)

// Packed is the client-facing form of a notification. The concrete type
// depends on the kind:
//
//	NoteNotification        note, mention, reply, renote, quote, pollEnded
//	ReactionNotification    reaction
//	AchievementNotification achievementEarned
//	AppNotification         app
//	PlainNotification       follow, receiveFollowRequest, followRequestAccepted, test, unrecognized kinds
type Packed interface {
	Meta() Base
	isPacked()
}

// Base holds the fields every variant carries.
type Base struct {
	ID        string             `json:"id"`
	CreatedAt string             `json:"createdAt"`
	Type      Kind               `json:"type"`
	UserID    *string            `json:"userId,omitempty"`
	User      *entity.PackedUser `json:"user,omitempty"`
}

func (b Base) Meta() Base { return b }
func (Base) isPacked()    {}

type NoteNotification struct {
	Base
	Note *entity.PackedNote `json:"note,omitempty"`
}

type ReactionNotification struct {
	Base
	Note     *entity.PackedNote `json:"note,omitempty"`
	Reaction string             `json:"reaction"`
}

type AchievementNotification struct {
	Base
	Achievement string `json:"achievement"`
}

type AppNotification struct {
	Base
	Body   string  `json:"body"`
	Header *string `json:"header"`
	Icon   *string `json:"icon"`
}

type PlainNotification struct {
	Base
}

// NoteOf returns the embedded note of p, if its variant has one and it was resolved.
func NoteOf(p Packed) *entity.PackedNote {
	switch v := p.(type) {
	case NoteNotification:
		return v.Note
	case ReactionNotification:
		return v.Note
	}
	return nil
}
