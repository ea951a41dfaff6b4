package entity

// PackOptions selects how much of an entity is rendered.
type PackOptions struct {
	Detail bool
}

// PackedUser is the client-facing representation of a user.
type PackedUser struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Host      *string `json:"host"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
	IsBot     bool    `json:"isBot"`
	IsMe      bool    `json:"isMe"`

	// Detail fields.
	CreatedAt   string       `json:"createdAt,omitempty"`
	PinnedNotes []PackedNote `json:"pinnedNotes,omitempty"`
}

// PackedNote is the client-facing representation of a note.
type PackedNote struct {
	ID         string      `json:"id"`
	CreatedAt  string      `json:"createdAt"`
	UserID     string      `json:"userId"`
	User       PackedUser  `json:"user"`
	Text       *string     `json:"text"`
	CW         *string     `json:"cw"`
	Visibility Visibility  `json:"visibility"`
	ReplyID    *string     `json:"replyId"`
	RenoteID   *string     `json:"renoteId"`
	Reply      *PackedNote `json:"reply,omitempty"`
	Renote     *PackedNote `json:"renote,omitempty"`
}

// TimeFormat is the ISO-8601 layout used for every timestamp in packed output.
const TimeFormat = "2006-01-02T15:04:05.000Z"
