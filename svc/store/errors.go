package store

import "errors"

var (
	ErrInvalidNotification = errors.New("invalid notification")
	ErrUserRequired        = errors.New("note author does not exist")
)
