package entity

import (
	"context"
	"fmt"
)

// NotePacker renders notes for a viewer, embedding the packed author and,
// in detail mode, one level of reply and renote.
type NotePacker struct {
	store Store
	users *UserPacker
}

// NewNotePacker creates a NotePacker that packs authors through users.
func NewNotePacker(store Store, users *UserPacker) *NotePacker {
	return &NotePacker{store: store, users: users}
}

// Pack renders a single note. It returns ErrNoteNotFound when the note or its author is gone.
func (p *NotePacker) Pack(ctx context.Context, noteID, viewerID string, opts PackOptions) (PackedNote, error) {
	notes, err := p.store.FindNotesWithRelations(ctx, []string{noteID})
	if err != nil {
		return PackedNote{}, fmt.Errorf("failed to load note %s: %w", noteID, err)
	}
	if len(notes) == 0 {
		return PackedNote{}, fmt.Errorf("%w: %s", ErrNoteNotFound, noteID)
	}

	packed, err := p.PackMany(ctx, notes[:1], viewerID, opts)
	if err != nil {
		return PackedNote{}, err
	}
	if len(packed) == 0 {
		// The author no longer exists.
		return PackedNote{}, fmt.Errorf("%w: %s", ErrNoteNotFound, noteID)
	}
	return packed[0], nil
}

// PackMany renders notes in input order. Notes whose author cannot be
// resolved are left out, so the result may be shorter than the input; each
// result carries its own ID for keying.
func (p *NotePacker) PackMany(ctx context.Context, notes []Note, viewerID string, opts PackOptions) ([]PackedNote, error) {
	if len(notes) == 0 {
		return []PackedNote{}, nil
	}

	authors, err := p.packAuthors(ctx, notes, viewerID, opts.Detail)
	if err != nil {
		return nil, err
	}

	out := make([]PackedNote, 0, len(notes))
	for i := range notes {
		n, ok := packNote(&notes[i], authors, opts.Detail)
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// packAuthors packs every author referenced by notes (and their reply and
// renote when detail is set) in a single UserPacker call. Authors not
// expanded on the records are loaded from the store in one query.
func (p *NotePacker) packAuthors(ctx context.Context, notes []Note, viewerID string, detail bool) (map[string]PackedUser, error) {
	records := make(map[string]User)
	var missing []string
	seen := make(map[string]struct{})

	visit := func(n *Note) {
		if n == nil {
			return
		}
		if _, ok := seen[n.UserID]; ok {
			return
		}
		seen[n.UserID] = struct{}{}
		if n.User != nil {
			records[n.UserID] = *n.User
		} else {
			missing = append(missing, n.UserID)
		}
	}
	for i := range notes {
		visit(&notes[i])
		if detail {
			visit(notes[i].Reply)
			visit(notes[i].Renote)
		}
	}

	if len(missing) > 0 {
		loaded, err := p.store.FindUsers(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("failed to load note authors: %w", err)
		}
		for _, u := range loaded {
			records[u.ID] = u
		}
	}

	users := make([]User, 0, len(records))
	for _, u := range records {
		users = append(users, u)
	}
	packed, err := p.users.PackMany(ctx, users, viewerID, PackOptions{Detail: false})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]PackedUser, len(packed))
	for _, u := range packed {
		byID[u.ID] = u
	}
	return byID, nil
}

func packNote(n *Note, authors map[string]PackedUser, detail bool) (PackedNote, bool) {
	author, ok := authors[n.UserID]
	if !ok {
		return PackedNote{}, false
	}

	out := PackedNote{
		ID:         n.ID,
		CreatedAt:  n.CreatedAt.UTC().Format(TimeFormat),
		UserID:     n.UserID,
		User:       author,
		Text:       n.Text,
		CW:         n.CW,
		Visibility: n.Visibility,
		ReplyID:    n.ReplyID,
		RenoteID:   n.RenoteID,
	}

	if detail {
		if n.Reply != nil {
			if r, ok := packNote(n.Reply, authors, false); ok {
				out.Reply = &r
			}
		}
		if n.Renote != nil {
			if r, ok := packNote(n.Renote, authors, false); ok {
				out.Renote = &r
			}
		}
	}

	return out, true
}
