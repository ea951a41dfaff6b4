package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/svc/entity"
	"github.com/dmitrymomot/notifykit/svc/store"
)

type countingStore struct {
	*store.Memory
	requested [][]string
}

func (s *countingStore) FindUsers(ctx context.Context, ids []string) ([]entity.User, error) {
	s.requested = append(s.requested, ids)
	return s.Memory.FindUsers(ctx, ids)
}

type brokenCache struct{}

func (brokenCache) GetMany(context.Context, []string) (map[string]entity.User, error) {
	return nil, errors.New("cache down")
}

func (brokenCache) SetMany(context.Context, []entity.User) error {
	return errors.New("cache down")
}

func TestCachedUsers(t *testing.T) {
	t.Parallel()

	mem := store.NewMemory()
	alice := mem.AddUser(entity.User{Username: "alice"})
	bob := mem.AddUser(entity.User{Username: "bob"})
	backend := &countingStore{Memory: mem}

	cached := store.NewCachedUsers(backend, store.NewLRUUserCache(10, time.Minute), store.WithCacheLogger(logger.Discard()))
	ctx := context.Background()

	got, err := cached.FindUsers(ctx, []string{alice.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = cached.FindUsers(ctx, []string{bob.ID, "missing", alice.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, bob.ID, got[0].ID)
	assert.Equal(t, alice.ID, got[1].ID)

	require.Len(t, backend.requested, 2)
	assert.Equal(t, []string{alice.ID}, backend.requested[0])
	assert.Equal(t, []string{bob.ID, "missing"}, backend.requested[1])

	got, err = cached.FindUsers(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, backend.requested, 2)
}

func TestCachedUsers_CacheFailureFallsBack(t *testing.T) {
	t.Parallel()

	mem := store.NewMemory()
	alice := mem.AddUser(entity.User{Username: "alice"})
	cached := store.NewCachedUsers(mem, brokenCache{}, store.WithCacheLogger(logger.Discard()))

	got, err := cached.FindUsers(context.Background(), []string{alice.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Username)
}

func TestLRUUserCache_Expiry(t *testing.T) {
	t.Parallel()

	c := store.NewLRUUserCache(2, 50*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, c.SetMany(ctx, []entity.User{{ID: "u1"}}))

	hits, err := c.GetMany(ctx, []string{"u1"})
	require.NoError(t, err)
	assert.Contains(t, hits, "u1")

	assert.Eventually(t, func() bool {
		hits, _ := c.GetMany(ctx, []string{"u1"})
		return len(hits) == 0
	}, time.Second, 5*time.Millisecond)
}
