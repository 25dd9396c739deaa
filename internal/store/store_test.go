package store

import (
	"careerai/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecklistSeededOnFirstRead(t *testing.T) {
	s := NewChecklistStore(NewMemoryBackend())
	items, err := s.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, model.ChecklistSize)
	assert.Equal(t, model.DefaultChecklist(), items)
}

func TestChecklistUpdateStatusChangesOnlyMatchingItem(t *testing.T) {
	ctx := context.Background()
	s := NewChecklistStore(NewMemoryBackend())

	items, err := s.UpdateStatus(ctx, "u1", model.TaskFindIkigai, model.StatusDone)
	require.NoError(t, err)

	want := model.DefaultChecklist()
	want[0].Status = model.StatusDone
	assert.Equal(t, want, items)

	stored, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, want, stored)

	other, err := s.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultChecklist(), other)
}

func TestChecklistUpdateUnknownTaskLeavesBytesIdentical(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := NewChecklistStore(backend)

	_, err := s.UpdateStatus(ctx, "u1", model.TaskReviewSummary, model.StatusDone)
	require.NoError(t, err)
	before, err := backend.Load(ctx, s.key("u1"))
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, "u1", "Not a task", model.StatusDone)
	require.NoError(t, err)
	after, err := backend.Load(ctx, s.key("u1"))
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = s.UpdateStatus(ctx, "fresh", "find your ikigai", model.StatusDone)
	require.NoError(t, err)
	missing, err := backend.Load(ctx, s.key("fresh"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestChecklistSetReplacesSequence(t *testing.T) {
	ctx := context.Background()
	s := NewChecklistStore(NewMemoryBackend())
	items := []model.ChecklistItem{
		{Task: "a", Status: model.StatusDone, Link: "/a"},
		{Task: "b", Status: model.StatusNotStarted, Link: "#"},
		{Task: "c", Status: model.StatusNotStarted, Link: "#"},
	}
	require.NoError(t, s.Set(ctx, "u1", items))

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestResultStoreSetGetClear(t *testing.T) {
	ctx := context.Background()
	s := NewResultStore(NewMemoryBackend())

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	first := &model.IkigaiResult{Summary: "S", Themes: []string{"a", "b"}}
	require.NoError(t, s.Set(ctx, "u1", first))
	second := &model.IkigaiResult{Sentiment: "Motivated"}
	require.NoError(t, s.Set(ctx, "u1", second))

	got, err = s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second, got, "set replaces, never merges")

	require.NoError(t, s.Clear(ctx, "u1"))
	got, err = s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResultStoreSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewResultStore(NewMemoryBackend())

	updates, err := s.Subscribe(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "u1", &model.IkigaiResult{Summary: "S"}))
	select {
	case r := <-updates:
		require.NotNil(t, r)
		assert.Equal(t, "S", r.Summary)
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}

	require.NoError(t, s.Clear(ctx, "u1"))
	select {
	case r := <-updates:
		assert.Nil(t, r)
	case <-time.After(time.Second):
		t.Fatal("no clear delivered")
	}
}

func TestChecklistSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewChecklistStore(NewMemoryBackend())

	updates, err := s.Subscribe(ctx, "u1")
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, "u1", model.TaskExploreRoles, model.StatusDone)
	require.NoError(t, err)

	select {
	case items := <-updates:
		require.Len(t, items, model.ChecklistSize)
		assert.Equal(t, model.StatusDone, items[2].Status)
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}
}
