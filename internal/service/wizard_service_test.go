package service

import (
	"careerai/internal/events"
	"careerai/internal/ikigai"
	"careerai/internal/model"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okReply = `{"summary":"S","sentiment":"Motivated","themes":["a"],"suggested_roles":["Role1"],"suggested_paths":["Path1"]}`

func strPtr(s string) *string { return &s }

// fillAll answers every category with only the other field and walks to the last step
func fillAll(t *testing.T, h *harness, userID string) {
	t.Helper()
	ctx := context.Background()
	for i := range model.Categories {
		_, err := h.wizard.SetAnswer(ctx, userID, AnswerUpdate{Other: strPtr("reading")})
		require.NoError(t, err)
		if i < len(model.Categories)-1 {
			_, err = h.wizard.Advance(ctx, userID)
			require.NoError(t, err)
		}
	}
}

func TestWizardOtherOnlySubmissionEndToEnd(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.model.reply = okReply

	_, err := h.wizard.Start(ctx, "u1")
	require.NoError(t, err)
	fillAll(t, h, "u1")

	result, err := h.wizard.Submit(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Role1"}, result.Suggestions)

	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(h.model.lastUser), &sent))
	for _, c := range model.Categories {
		assert.NotEqual(t, ikigai.NoInformation, sent[string(c)])
		assert.Equal(t, "Other: reading.", sent[string(c)])
	}

	stored, err := h.results.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, result, stored)

	items, err := h.checklist.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, items[0].Status)
	assert.Equal(t, model.StatusNotStarted, items[1].Status)

	assert.Equal(t, []events.Status{events.StatusProcessing, events.StatusCompleted}, h.publisher.statuses())
	require.Len(t, h.history.records, 1)
	assert.Equal(t, "u1", h.history.records[0].UserID)

	view, err := h.wizard.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Step, "wizard resets after a successful submission")
	assert.False(t, view.Submitting)
}

func TestWizardAdvanceRequiresCompleteCategory(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.wizard.SetAnswer(ctx, "u1", AnswerUpdate{Summary: strPtr("too short")})
	require.NoError(t, err)

	_, err = h.wizard.Advance(ctx, "u1")
	var verr *ikigai.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, model.CategoryLove, verr.Category)

	view, err := h.wizard.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Step)
	assert.Empty(t, h.broadcaster.messages)
}

func TestWizardStepChangesAreBroadcast(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.wizard.Toggle(ctx, "u1", "Helping others")
	require.NoError(t, err)
	view, err := h.wizard.Advance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGoodAt, view.Category.Key)

	_, err = h.wizard.Retreat(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, h.broadcaster.messages, 2)
	first := h.broadcaster.messages[0]
	assert.Equal(t, MsgCategoryChanged, first.Type)
	assert.Equal(t, model.CategoryGoodAt, first.Payload.(map[string]interface{})["category"])
	assert.Equal(t, model.CategoryLove, h.broadcaster.messages[1].Payload.(map[string]interface{})["category"])
}

func TestWizardToggleRejectsUnknownOption(t *testing.T) {
	h := newHarness(t)
	_, err := h.wizard.Toggle(context.Background(), "u1", "Juggling")
	assert.ErrorIs(t, err, ikigai.ErrUnknownOption)
}

func TestWizardSubmitOnlyFromLastCategory(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	_, err := h.wizard.SetAnswer(ctx, "u1", AnswerUpdate{Other: strPtr("reading")})
	require.NoError(t, err)

	_, err = h.wizard.Submit(ctx, "u1")
	assert.ErrorIs(t, err, ikigai.ErrNotOnLastCategory)
	assert.Zero(t, h.model.calls)
}

func TestWizardFailedSubmissionKeepsPriorState(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	prior := &model.IkigaiResult{Summary: "previous"}
	require.NoError(t, h.results.Set(ctx, "u1", prior))

	fillAll(t, h, "u1")
	h.model.reply = "{invalid json"

	_, err := h.wizard.Submit(ctx, "u1")
	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))

	stored, err := h.results.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, prior, stored)

	view, err := h.wizard.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, view.IsLast, "wizard stays on the last step so the user can resubmit")
	assert.Equal(t, "reading", view.Answers[model.CategoryPaidFor].Other)
	assert.False(t, view.Submitting, "lock is released after a failure")
	assert.Equal(t, []events.Status{events.StatusProcessing, events.StatusFailed}, h.publisher.statuses())
	assert.Empty(t, h.history.records)
}

func TestWizardRejectsConcurrentSubmission(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.model.reply = okReply
	fillAll(t, h, "u1")

	ok, err := h.wizards.AcquireSubmit(ctx, "u1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = h.wizard.Submit(ctx, "u1")
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Zero(t, h.model.calls)

	view, err := h.wizard.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, view.Submitting)
}

func TestWizardEditsRejectedWhileSubmitting(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	fillAll(t, h, "u1")
	before, err := h.wizard.Get(ctx, "u1")
	require.NoError(t, err)

	ok, err := h.wizards.AcquireSubmit(ctx, "u1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ops := map[string]func() error{
		"answer": func() error {
			_, err := h.wizard.SetAnswer(ctx, "u1", AnswerUpdate{Summary: strPtr("changed my mind entirely")})
			return err
		},
		"toggle": func() error {
			_, err := h.wizard.Toggle(ctx, "u1", model.CategoryInfo[model.CategoryPaidFor].Options[0])
			return err
		},
		"advance": func() error { _, err := h.wizard.Advance(ctx, "u1"); return err },
		"retreat": func() error { _, err := h.wizard.Retreat(ctx, "u1"); return err },
		"start":   func() error { _, err := h.wizard.Start(ctx, "u1"); return err },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op(), ErrSubmissionInFlight)
		})
	}

	after, err := h.wizard.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, before.Step, after.Step)
	assert.Equal(t, before.Answers, after.Answers)

	require.NoError(t, h.wizards.ReleaseSubmit(ctx, "u1"))
	_, err = h.wizard.Retreat(ctx, "u1")
	assert.NoError(t, err)
}

func TestWizardEditDuringInFlightSubmitIsRejected(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.model.block = true
	fillAll(t, h, "u1")

	done := make(chan error, 1)
	go func() {
		_, err := h.wizard.Submit(ctx, "u1")
		done <- err
	}()

	require.Eventually(t, func() bool {
		submitting, err := h.wizards.IsSubmitting(ctx, "u1")
		return err == nil && submitting
	}, 2*time.Second, 10*time.Millisecond)

	_, err := h.wizard.SetAnswer(ctx, "u1", AnswerUpdate{Summary: strPtr("a late edit to paidFor")})
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(3 * time.Second):
		t.Fatal("submit did not finish")
	}

	view, err := h.wizard.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "", view.Answers[model.CategoryPaidFor].Summary)
	assert.False(t, view.Submitting)
}
