// Package notification packs stored notifications into the representation
// served to clients.
//
// A packed notification always carries its id, creation time, kind and actor
// id, and embeds the packed actor and, for note-bearing kinds, the packed
// note. Kind-specific payloads (reaction, achievement, app body/header/icon)
// are carried by dedicated variant types that implement Packed.
//
// # Single and batch packing
//
// Packer.Pack renders one notification, resolving its note and actor
// concurrently through the NotePacker and UserPacker collaborators, or from a
// Hint supplied by the caller.
//
// Packer.PackMany renders a page of notifications with a fixed number of
// collaborator calls regardless of page size:
//
//  1. load and pack every referenced note once;
//  2. drop notifications whose note did not resolve;
//  3. load and pack every remaining actor once;
//  4. drop receiveFollowRequest notifications whose request is no longer pending;
//  5. pack the survivors concurrently using the results of 1 and 3 as a Hint.
//
// Dropping is not an error: a deleted note or an answered follow request simply
// removes the notification from the output. Storage and packer failures are
// returned to the caller and fail the whole batch.
//
// # Usage
//
//	users := entity.NewUserPacker(repo)
//	notes := entity.NewNotePacker(repo, users)
//	users.BindNotePacker(notes)
//
//	packer := notification.NewPacker(repo, notes, users, notification.WithPackerLogger(log))
//	out, err := packer.PackMany(ctx, page, viewerID)
package notification
