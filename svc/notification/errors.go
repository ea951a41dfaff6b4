package notification

import "errors"

var (
	// ErrUnknownKind reports a kind outside Kinds. Stores use it to reject writes;
	// packing never returns it.
	ErrUnknownKind = errors.New("unknown notification kind")
)
