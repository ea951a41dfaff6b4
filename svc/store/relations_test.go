package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/svc/entity"
)

func ref(s string) *string { return &s }

func TestExpandRelations(t *testing.T) {
	t.Parallel()

	alice := entity.User{ID: "u1", Username: "alice"}
	bob := entity.User{ID: "u2", Username: "bob"}

	tests := []struct {
		name    string
		notes   []entity.Note
		related map[string]entity.Note
		authors []entity.User
		check   func(t *testing.T, got []entity.Note)
	}{
		{
			name:    "author missing leaves user unset",
			notes:   []entity.Note{{ID: "n1", UserID: "gone"}},
			related: map[string]entity.Note{},
			authors: []entity.User{alice},
			check: func(t *testing.T, got []entity.Note) {
				require.Len(t, got, 1)
				assert.Equal(t, "n1", got[0].ID)
				assert.Nil(t, got[0].User)
			},
		},
		{
			name:    "reply missing leaves reply unset",
			notes:   []entity.Note{{ID: "n1", UserID: "u1", ReplyID: ref("r1")}},
			related: map[string]entity.Note{},
			authors: []entity.User{alice},
			check: func(t *testing.T, got []entity.Note) {
				require.Len(t, got, 1)
				require.NotNil(t, got[0].User)
				assert.Equal(t, "alice", got[0].User.Username)
				assert.Equal(t, "r1", *got[0].ReplyID)
				assert.Nil(t, got[0].Reply)
			},
		},
		{
			name:    "renote present is attached with its author",
			notes:   []entity.Note{{ID: "n1", UserID: "u1", RenoteID: ref("n0")}},
			related: map[string]entity.Note{"n0": {ID: "n0", UserID: "u2"}},
			authors: []entity.User{alice, bob},
			check: func(t *testing.T, got []entity.Note) {
				require.Len(t, got, 1)
				require.NotNil(t, got[0].Renote)
				assert.Equal(t, "n0", got[0].Renote.ID)
				require.NotNil(t, got[0].Renote.User)
				assert.Equal(t, "bob", got[0].Renote.User.Username)
				assert.Nil(t, got[0].Reply)
			},
		},
		{
			name: "order of loaded notes is kept",
			notes: []entity.Note{
				{ID: "n2", UserID: "u2"},
				{ID: "n1", UserID: "u1"},
			},
			related: map[string]entity.Note{},
			authors: []entity.User{alice, bob},
			check: func(t *testing.T, got []entity.Note) {
				require.Len(t, got, 2)
				assert.Equal(t, "n2", got[0].ID)
				assert.Equal(t, "n1", got[1].ID)
				assert.Equal(t, "bob", got[0].User.Username)
				assert.Equal(t, "alice", got[1].User.Username)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tc.check(t, expandRelations(tc.notes, tc.related, tc.authors))
		})
	}
}
