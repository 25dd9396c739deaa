package cache

import (
	"careerai/internal/ikigai"
	"careerai/internal/model"
	"careerai/internal/store"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSliceCacheLoadSaveDelete(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	c := NewSliceCache(client)

	data, err := c.Load(ctx, "checklist-storage:u1")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, c.Save(ctx, "checklist-storage:u1", []byte(`{"checklist":[]}`)))
	data, err = c.Load(ctx, "checklist-storage:u1")
	require.NoError(t, err)
	assert.Equal(t, `{"checklist":[]}`, string(data))
	assert.Zero(t, mr.TTL("checklist-storage:u1"), "slices never expire")

	require.NoError(t, c.Delete(ctx, "checklist-storage:u1"))
	assert.False(t, mr.Exists("checklist-storage:u1"))
}

func TestSliceCacheBacksChecklistStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, client := newTestClient(t)
	s := store.NewChecklistStore(NewSliceCache(client))

	updates, err := s.Subscribe(ctx, "u1")
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, "u1", model.TaskFindIkigai, model.StatusDone)
	require.NoError(t, err)

	select {
	case items := <-updates:
		require.Len(t, items, model.ChecklistSize)
		assert.Equal(t, model.StatusDone, items[0].Status)
	case <-time.After(2 * time.Second):
		t.Fatal("no update published")
	}

	// A second client sees the persisted value
	other := store.NewChecklistStore(NewSliceCache(client))
	items, err := other.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, items[0].Status)
}

func TestSliceCachePublishesDeletionAsNil(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, client := newTestClient(t)
	c := NewSliceCache(client)

	updates, err := c.Subscribe(ctx, "ikigai-storage:u1")
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, "ikigai-storage:u1"))

	select {
	case data := <-updates:
		assert.Nil(t, data)
	case <-time.After(2 * time.Second):
		t.Fatal("no deletion published")
	}
}

func TestWizardCacheRoundTripAndTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	c := NewWizardCache(client)

	w, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, w)

	w = ikigai.NewWizard()
	require.NoError(t, w.ToggleOption("Helping others"))
	w.SetSummary("I love painting landscapes")
	require.NoError(t, c.Set(ctx, "u1", w))
	assert.Equal(t, 24*time.Hour, mr.TTL("wizard:u1"))

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.CategoryLove, got.Current())
	assert.Equal(t, []string{"Helping others"}, got.CurrentAnswer().Selected)

	require.NoError(t, c.Delete(ctx, "u1"))
	got, err = c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWizardCacheSubmitLock(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	c := NewWizardCache(client)

	ok, err := c.AcquireSubmit(ctx, "u1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.AcquireSubmit(ctx, "u1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second submission must be refused while the first is in flight")

	busy, err := c.IsSubmitting(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, busy)

	require.NoError(t, c.ReleaseSubmit(ctx, "u1"))
	busy, err = c.IsSubmitting(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, busy)

	// A crashed holder's lock lapses on its own
	ok, err = c.AcquireSubmit(ctx, "u2", time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	mr.FastForward(2 * time.Second)
	ok, err = c.AcquireSubmit(ctx, "u2", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokenCacheRevocation(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	c := NewTokenCache(client)

	revoked, err := c.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, c.Revoke(ctx, "jti-1", time.Hour))
	revoked, err = c.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Hour)
	revoked, err = c.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, c.Revoke(ctx, "jti-2", 0))
	assert.False(t, mr.Exists("revoked:jti-2"))
}
