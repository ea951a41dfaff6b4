package entity

import "context"

// Store is the read access the packers need. Implementations return an empty
// slice for an empty id list without querying, and silently omit ids that do
// not exist.
type Store interface {
	// FindNotesWithRelations loads notes with their author and one level of
	// reply/renote (each with its author) expanded.
	FindNotesWithRelations(ctx context.Context, ids []string) ([]Note, error)
	FindUsers(ctx context.Context, ids []string) ([]User, error)
}
