package service

import (
	"careerai/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetChecklistShallowCheck(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.progress.SetChecklist(ctx, "u1", model.DefaultChecklist()[:2])
	assert.ErrorIs(t, err, ErrInvalidChecklist)

	bad := model.DefaultChecklist()
	bad[1].Status = "Halfway"
	_, err = h.progress.SetChecklist(ctx, "u1", bad)
	assert.ErrorIs(t, err, ErrInvalidChecklist)

	good := model.DefaultChecklist()
	good[2].Status = model.StatusDone
	got, err := h.progress.SetChecklist(ctx, "u1", good)
	require.NoError(t, err)
	assert.Equal(t, good, got)

	_, err = h.progress.UpdateChecklistStatus(ctx, "u1", model.TaskReviewSummary, "Started")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDashboardLinkAvailability(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	view, err := h.progress.Dashboard(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, view.Checklist, model.ChecklistSize)
	assert.True(t, view.Checklist[0].Enabled)
	assert.False(t, view.Checklist[1].Enabled)
	assert.False(t, view.Checklist[2].Enabled)
	assert.Nil(t, view.Result)

	require.NoError(t, h.results.Set(ctx, "u1", &model.IkigaiResult{Summary: "S"}))
	view, err = h.progress.Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, view.Checklist[0].Status)
	assert.True(t, view.Checklist[1].Enabled)
	assert.False(t, view.Checklist[2].Enabled, "explore has no navigable link")
}

func TestResultPagesRequireResult(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.progress.ViewResults(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoResult)
	_, err = h.progress.ExploreRoles(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoResult)
	_, err = h.progress.ExportMarkdown(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoResult)

	items, err := h.checklist.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultChecklist(), items)
}

func TestResultPagesMarkProgress(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.results.Set(ctx, "u1", &model.IkigaiResult{
		Summary:     "S",
		Suggestions: []string{"Product Manager"},
	}))

	r, err := h.progress.ViewResults(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "S", r.Summary)

	explore, err := h.progress.ExploreRoles(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, explore.Roles, 1)
	assert.Equal(t, "https://www.linkedin.com/jobs/search/?keywords=Product%20Manager", explore.Roles[0].SearchURL)

	items, err := h.checklist.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusNotStarted, items[0].Status)
	assert.Equal(t, model.StatusDone, items[1].Status)
	assert.Equal(t, model.StatusDone, items[2].Status)

	md, err := h.progress.ExportMarkdown(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, md, "- Product Manager")
}

func TestHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	now := time.Now()
	require.NoError(t, h.history.Archive(ctx, &model.ResultRecord{UserID: "u1", Result: model.IkigaiResult{Summary: "old"}, CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, h.history.Archive(ctx, &model.ResultRecord{UserID: "u2", Result: model.IkigaiResult{Summary: "other"}, CreatedAt: now}))
	require.NoError(t, h.history.Archive(ctx, &model.ResultRecord{UserID: "u1", Result: model.IkigaiResult{Summary: "new"}, CreatedAt: now}))

	records, err := h.progress.History(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].Result.Summary)
	assert.Equal(t, "old", records[1].Result.Summary)
}
