package entity

import (
	"context"
	"fmt"
)

// UserPacker renders users for a viewer. In detail mode it embeds pinned notes,
// which requires a NotePacker bound through BindNotePacker.
type UserPacker struct {
	store Store
	notes Lazy[*NotePacker]
}

// NewUserPacker creates a UserPacker. Call BindNotePacker before packing in detail mode.
func NewUserPacker(store Store) *UserPacker {
	return &UserPacker{store: store}
}

// BindNotePacker completes construction. NotePacker itself depends on the
// UserPacker, so it can only be supplied after both exist.
func (p *UserPacker) BindNotePacker(np *NotePacker) {
	p.notes.Bind(np)
}

// Pack renders a single user. It returns ErrUserNotFound when the user does not exist.
func (p *UserPacker) Pack(ctx context.Context, userID, viewerID string, opts PackOptions) (PackedUser, error) {
	users, err := p.store.FindUsers(ctx, []string{userID})
	if err != nil {
		return PackedUser{}, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if len(users) == 0 {
		return PackedUser{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	packed, err := p.PackMany(ctx, users[:1], viewerID, opts)
	if err != nil {
		return PackedUser{}, err
	}
	return packed[0], nil
}

// PackMany renders users in input order. Each result carries its own ID.
func (p *UserPacker) PackMany(ctx context.Context, users []User, viewerID string, opts PackOptions) ([]PackedUser, error) {
	out := make([]PackedUser, len(users))
	for i, u := range users {
		out[i] = PackedUser{
			ID:        u.ID,
			Username:  u.Username,
			Host:      u.Host,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
			IsBot:     u.IsBot,
			IsMe:      viewerID != "" && u.ID == viewerID,
		}
	}

	if !opts.Detail {
		return out, nil
	}

	pinned, err := p.packPinnedNotes(ctx, users, viewerID)
	if err != nil {
		return nil, err
	}
	for i, u := range users {
		out[i].CreatedAt = u.CreatedAt.UTC().Format(TimeFormat)
		for _, id := range u.PinnedNoteIDs {
			if n, ok := pinned[id]; ok {
				out[i].PinnedNotes = append(out[i].PinnedNotes, n)
			}
		}
	}

	return out, nil
}

func (p *UserPacker) packPinnedNotes(ctx context.Context, users []User, viewerID string) (map[string]PackedNote, error) {
	var ids []string
	for _, u := range users {
		ids = append(ids, u.PinnedNoteIDs...)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	np, ok := p.notes.Get()
	if !ok {
		return nil, ErrPackerNotBound
	}

	notes, err := p.store.FindNotesWithRelations(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load pinned notes: %w", err)
	}
	packed, err := np.PackMany(ctx, notes, viewerID, PackOptions{Detail: false})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]PackedNote, len(packed))
	for _, n := range packed {
		byID[n.ID] = n
	}
	return byID, nil
}
