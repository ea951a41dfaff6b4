package entity_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/svc/entity"
)

type fakeStore struct {
	mu        sync.Mutex
	notes     map[string]entity.Note
	users     map[string]entity.User
	noteCalls int
	userCalls int
	err       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{notes: map[string]entity.Note{}, users: map[string]entity.User{}}
}

func (s *fakeStore) FindNotesWithRelations(_ context.Context, ids []string) ([]entity.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noteCalls++
	if s.err != nil {
		return nil, s.err
	}
	out := []entity.Note{}
	for _, id := range ids {
		if n, ok := s.notes[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *fakeStore) FindUsers(_ context.Context, ids []string) ([]entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userCalls++
	if s.err != nil {
		return nil, s.err
	}
	out := []entity.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

var ts = time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.FixedZone("CET", 3600))

func str(s string) *string { return &s }

func newPackers(store entity.Store) (*entity.NotePacker, *entity.UserPacker) {
	users := entity.NewUserPacker(store)
	notes := entity.NewNotePacker(store, users)
	users.BindNotePacker(notes)
	return notes, users
}

func TestUserPacker_Pack(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users["u1"] = entity.User{ID: "u1", Username: "alice", Name: str("Alice"), CreatedAt: ts}
	_, users := newPackers(store)

	t.Run("summary", func(t *testing.T) {
		got, err := users.Pack(context.Background(), "u1", "u2", entity.PackOptions{})
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
		assert.Equal(t, "alice", got.Username)
		assert.False(t, got.IsMe)
		assert.Empty(t, got.CreatedAt)
	})

	t.Run("viewer is the user", func(t *testing.T) {
		got, err := users.Pack(context.Background(), "u1", "u1", entity.PackOptions{})
		require.NoError(t, err)
		assert.True(t, got.IsMe)
	})

	t.Run("detail formats creation time in UTC", func(t *testing.T) {
		got, err := users.Pack(context.Background(), "u1", "", entity.PackOptions{Detail: true})
		require.NoError(t, err)
		assert.Equal(t, "2024-01-02T02:04:05.006Z", got.CreatedAt)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := users.Pack(context.Background(), "nobody", "", entity.PackOptions{})
		assert.ErrorIs(t, err, entity.ErrUserNotFound)
	})
}

func TestUserPacker_PinnedNotes(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users["u1"] = entity.User{ID: "u1", Username: "alice", PinnedNoteIDs: []string{"p2", "p1", "gone"}}
	store.notes["p1"] = entity.Note{ID: "p1", UserID: "u1", CreatedAt: ts, Text: str("first")}
	store.notes["p2"] = entity.Note{ID: "p2", UserID: "u1", CreatedAt: ts, Text: str("second")}

	_, users := newPackers(store)

	got, err := users.Pack(context.Background(), "u1", "", entity.PackOptions{Detail: true})
	require.NoError(t, err)
	require.Len(t, got.PinnedNotes, 2)
	assert.Equal(t, "p2", got.PinnedNotes[0].ID)
	assert.Equal(t, "p1", got.PinnedNotes[1].ID)
	assert.Equal(t, "alice", got.PinnedNotes[0].User.Username)
}

func TestUserPacker_Unbound(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users["u1"] = entity.User{ID: "u1", PinnedNoteIDs: []string{"p1"}}
	users := entity.NewUserPacker(store)

	_, err := users.Pack(context.Background(), "u1", "", entity.PackOptions{Detail: true})
	assert.ErrorIs(t, err, entity.ErrPackerNotBound)

	// Summary packing never needs notes.
	_, err = users.Pack(context.Background(), "u1", "", entity.PackOptions{})
	assert.NoError(t, err)
}

func TestNotePacker_PackMany(t *testing.T) {
	t.Parallel()

	alice := entity.User{ID: "u1", Username: "alice"}
	bob := entity.User{ID: "u2", Username: "bob"}

	t.Run("expands authors reply and renote in detail mode", func(t *testing.T) {
		store := newFakeStore()
		store.users["u2"] = bob
		notes, _ := newPackers(store)

		parent := &entity.Note{ID: "parent", UserID: "u2", CreatedAt: ts}
		input := []entity.Note{
			{ID: "n1", UserID: "u1", User: &alice, CreatedAt: ts, ReplyID: str("parent"), Reply: parent},
			{ID: "n2", UserID: "u2", CreatedAt: ts},
		}

		got, err := notes.PackMany(context.Background(), input, "u1", entity.PackOptions{Detail: true})
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "n1", got[0].ID)
		assert.True(t, got[0].User.IsMe)
		require.NotNil(t, got[0].Reply)
		assert.Equal(t, "parent", got[0].Reply.ID)
		assert.Equal(t, "bob", got[0].Reply.User.Username)
		assert.Nil(t, got[0].Reply.Reply)
		assert.Equal(t, "n2", got[1].ID)
		assert.Equal(t, "2024-01-02T02:04:05.006Z", got[1].CreatedAt)

		assert.Equal(t, 1, store.userCalls, "authors not on records are loaded in one query")
	})

	t.Run("summary mode skips relations", func(t *testing.T) {
		store := newFakeStore()
		notes, _ := newPackers(store)

		input := []entity.Note{
			{ID: "n1", UserID: "u1", User: &alice, Reply: &entity.Note{ID: "r", UserID: "u1"}},
		}
		got, err := notes.PackMany(context.Background(), input, "", entity.PackOptions{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].Reply)
		assert.Zero(t, store.userCalls)
	})

	t.Run("notes with unknown authors are skipped", func(t *testing.T) {
		store := newFakeStore()
		notes, _ := newPackers(store)

		input := []entity.Note{
			{ID: "n1", UserID: "u1", User: &alice},
			{ID: "n2", UserID: "deleted"},
		}
		got, err := notes.PackMany(context.Background(), input, "", entity.PackOptions{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "n1", got[0].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		store := newFakeStore()
		notes, _ := newPackers(store)

		got, err := notes.PackMany(context.Background(), nil, "", entity.PackOptions{Detail: true})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Zero(t, store.userCalls)
	})

	t.Run("store failure", func(t *testing.T) {
		store := newFakeStore()
		store.err = errors.New("timeout")
		notes, _ := newPackers(store)

		_, err := notes.PackMany(context.Background(), []entity.Note{{ID: "n1", UserID: "u9"}}, "", entity.PackOptions{})
		assert.ErrorIs(t, err, store.err)
	})
}

func TestNotePacker_Pack(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users["u1"] = entity.User{ID: "u1", Username: "alice"}
	store.notes["n1"] = entity.Note{ID: "n1", UserID: "u1", Text: str("hello"), Visibility: entity.VisibilityHome}
	store.notes["orphan"] = entity.Note{ID: "orphan", UserID: "deleted"}
	notes, _ := newPackers(store)

	got, err := notes.Pack(context.Background(), "n1", "", entity.PackOptions{Detail: true})
	require.NoError(t, err)
	assert.Equal(t, "hello", *got.Text)
	assert.Equal(t, entity.VisibilityHome, got.Visibility)

	_, err = notes.Pack(context.Background(), "missing", "", entity.PackOptions{})
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)

	_, err = notes.Pack(context.Background(), "orphan", "", entity.PackOptions{})
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
}

func TestLazy(t *testing.T) {
	t.Parallel()

	var l entity.Lazy[string]
	_, ok := l.Get()
	assert.False(t, ok)

	l.Bind("bound")
	v, ok := l.Get()
	assert.True(t, ok)
	assert.Equal(t, "bound", v)

	assert.Panics(t, func() { l.Bind("again") })
}
