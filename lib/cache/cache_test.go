package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Title string `json:"title"`
}

func TestMemoryStoreRoundTripAndInvalidate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	var got entry
	ok, err := store.Get(ctx, PublicListKey(), &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, PublicListKey(), entry{Title: "a"}, 0))
	ok, err = store.Get(ctx, PublicListKey(), &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", got.Title)

	require.NoError(t, store.Invalidate(ctx, PublicListKey(), PublicProjectKey("p")))
	ok, err = store.Get(ctx, PublicListKey(), &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Second)
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", entry{Title: "a"}, 0))
	now = now.Add(2 * time.Second)

	var got entry
	ok, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreDropsWritesFromBeforeInvalidate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	gen, err := store.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Invalidate(ctx, PublicProjectKey("p")))

	// a reader that loaded before the invalidation must not repopulate
	require.NoError(t, store.Set(ctx, PublicProjectKey("p"), entry{Title: "stale"}, gen))
	var got entry
	ok, err := store.Get(ctx, PublicProjectKey("p"), &got)
	require.NoError(t, err)
	assert.False(t, ok)

	fresh, err := store.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, fresh)
	require.NoError(t, store.Set(ctx, PublicProjectKey("p"), entry{Title: "fresh"}, fresh))
	ok, err = store.Get(ctx, PublicProjectKey("p"), &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fresh", got.Title)
}

func TestNopStore(t *testing.T) {
	ctx := context.Background()
	var store Store = NopStore{}
	require.NoError(t, store.Set(ctx, "k", entry{}, 0))
	ok, err := store.Get(ctx, "k", &entry{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "uwrite:public:projects", PublicListKey())
	assert.Equal(t, "uwrite:public:project:p1", PublicProjectKey("p1"))
}

func TestNewRedisStoreRejectsBadURL(t *testing.T) {
	_, err := NewRedisStore("not a url", time.Second)
	assert.Error(t, err)
}
