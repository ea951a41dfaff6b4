// Package entity defines the stored records (notes, users, follow requests)
// and their client-facing packed forms, together with the packers that
// convert one into the other for a given viewer.
//
// NotePacker embeds the packed author of every note, and UserPacker in detail
// mode embeds a user's pinned notes, so the two packers depend on each other.
// They are wired in two steps:
//
//	users := entity.NewUserPacker(store)
//	notes := entity.NewNotePacker(store, users)
//	users.BindNotePacker(notes)
//
// PackMany variants never query per record: authors and pinned notes are
// loaded and packed in bulk.
package entity
