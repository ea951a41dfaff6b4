package entity

import "errors"

var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrPackerNotBound = errors.New("entity: packer used before it was bound")
)
