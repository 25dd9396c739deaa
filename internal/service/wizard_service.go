package service

import (
	"careerai/internal/cache"
	"careerai/internal/events"
	"careerai/internal/ikigai"
	"careerai/internal/metrics"
	"careerai/internal/model"
	"careerai/internal/repository"
	"careerai/internal/store"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrSubmissionInFlight is returned while an earlier submission for the same user is pending
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// submitLockSlack keeps the lock alive a little past the upstream deadline
const submitLockSlack = 5 * time.Second

// WizardView is the wizard state returned to clients
type WizardView struct {
	Step       int                         `json:"step"`
	Category   model.CategoryMeta          `json:"category"`
	IsLast     bool                        `json:"isLast"`
	Complete   bool                        `json:"complete"`
	Answers    model.QuestionnaireResponse `json:"answers"`
	Submitting bool                        `json:"submitting"`
}

// AnswerUpdate replaces the given fields of the current category's answer
type AnswerUpdate struct {
	Selected *[]string `json:"selected,omitempty"`
	Summary  *string   `json:"summary,omitempty"`
	Other    *string   `json:"other,omitempty"`
}

// WizardService drives the per-user questionnaire and its submission
type WizardService struct {
	wizards     cache.WizardCache
	results     *store.ResultStore
	checklist   *store.ChecklistStore
	history     repository.ResultRepo
	summarizer  *SummarizeService
	broadcaster Broadcaster
	events      events.Publisher
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewWizardService creates a new wizard service
func NewWizardService(
	wizards cache.WizardCache,
	results *store.ResultStore,
	checklist *store.ChecklistStore,
	history repository.ResultRepo,
	summarizer *SummarizeService,
	publisher events.Publisher,
	mt *metrics.Metrics,
	logger *zap.Logger,
) *WizardService {
	return &WizardService{
		wizards:     wizards,
		results:     results,
		checklist:   checklist,
		history:     history,
		summarizer:  summarizer,
		broadcaster: nopBroadcaster{},
		events:      publisher,
		metrics:     mt,
		logger:      logger,
	}
}

// SetBroadcaster sets the WebSocket broadcaster (called after hub is created)
func (s *WizardService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start resets the wizard to the first category with empty answers
func (s *WizardService) Start(ctx context.Context, userID string) (*WizardView, error) {
	if err := s.ensureIdle(ctx, userID); err != nil {
		s.metrics.ObserveWizard("start", err)
		return nil, err
	}
	w := ikigai.NewWizard()
	if err := s.wizards.Set(ctx, userID, w); err != nil {
		return nil, fmt.Errorf("save wizard: %w", err)
	}
	s.metrics.ObserveWizard("start", nil)
	s.broadcaster.BroadcastToUser(userID, MsgCategoryChanged, map[string]interface{}{
		"step":     w.Step,
		"category": w.Current(),
	})
	return s.view(ctx, userID, w)
}

// Get returns the user's wizard, starting a fresh one if none is stored
func (s *WizardService) Get(ctx context.Context, userID string) (*WizardView, error) {
	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, userID, w)
}

// SetAnswer edits the current category
func (s *WizardService) SetAnswer(ctx context.Context, userID string, update AnswerUpdate) (*WizardView, error) {
	return s.mutate(ctx, userID, "answer", func(w *ikigai.Wizard) error {
		if update.Selected != nil {
			if err := w.SetSelected(*update.Selected); err != nil {
				return err
			}
		}
		if update.Summary != nil {
			w.SetSummary(*update.Summary)
		}
		if update.Other != nil {
			w.SetOther(*update.Other)
		}
		return nil
	})
}

// Toggle adds or removes one predefined option on the current category
func (s *WizardService) Toggle(ctx context.Context, userID, option string) (*WizardView, error) {
	return s.mutate(ctx, userID, "toggle", func(w *ikigai.Wizard) error {
		return w.ToggleOption(option)
	})
}

// Advance moves forward once the current category is complete
func (s *WizardService) Advance(ctx context.Context, userID string) (*WizardView, error) {
	return s.mutate(ctx, userID, "advance", func(w *ikigai.Wizard) error {
		return w.Advance()
	})
}

// Retreat moves back one category
func (s *WizardService) Retreat(ctx context.Context, userID string) (*WizardView, error) {
	return s.mutate(ctx, userID, "retreat", func(w *ikigai.Wizard) error {
		w.Retreat()
		return nil
	})
}

// Submit sends the completed questionnaire upstream and stores the result.
// On failure the wizard and any previously stored result are left as they were.
func (s *WizardService) Submit(ctx context.Context, userID string) (*model.IkigaiResult, error) {
	result, err := s.submit(ctx, userID)
	s.metrics.ObserveWizard("submit", err)
	return result, err
}

func (s *WizardService) submit(ctx context.Context, userID string) (*model.IkigaiResult, error) {
	acquired, err := s.wizards.AcquireSubmit(ctx, userID, s.summarizer.Timeout()+submitLockSlack)
	if err != nil {
		return nil, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !acquired {
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		// Release even when the request context is already gone
		if err := s.wizards.ReleaseSubmit(context.WithoutCancel(ctx), userID); err != nil {
			s.logger.Warn("release submit lock", zap.String("userId", userID), zap.Error(err))
		}
	}()

	// Loaded under the lock so no edit can slip in between read and submit
	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := w.CheckSubmittable(); err != nil {
		return nil, err
	}

	req := w.Request()
	s.publish(ctx, events.SubmissionEvent{UserID: userID, Status: events.StatusProcessing})

	result, err := s.summarizer.Summarize(ctx, req)
	if err != nil {
		s.publish(ctx, events.SubmissionEvent{UserID: userID, Status: events.StatusFailed, Error: err.Error()})
		return nil, err
	}

	if err := s.results.Set(ctx, userID, result); err != nil {
		return nil, fmt.Errorf("store result: %w", err)
	}
	if _, err := s.checklist.UpdateStatus(ctx, userID, model.TaskFindIkigai, model.StatusDone); err != nil {
		s.logger.Warn("update checklist", zap.String("userId", userID), zap.Error(err))
	}
	if s.history != nil {
		record := &model.ResultRecord{
			UserID:    userID,
			Request:   req,
			Result:    *result,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.history.Archive(ctx, record); err != nil {
			s.logger.Warn("archive result", zap.String("userId", userID), zap.Error(err))
		}
	}
	if err := s.wizards.Delete(ctx, userID); err != nil {
		s.logger.Warn("reset wizard", zap.String("userId", userID), zap.Error(err))
	}

	s.publish(ctx, events.SubmissionEvent{UserID: userID, Status: events.StatusCompleted, Provider: s.summarizer.model.Name()})
	s.logger.Info("ikigai submitted", zap.String("userId", userID))
	return result, nil
}

func (s *WizardService) mutate(ctx context.Context, userID, op string, fn func(*ikigai.Wizard) error) (*WizardView, error) {
	if err := s.ensureIdle(ctx, userID); err != nil {
		s.metrics.ObserveWizard(op, err)
		return nil, err
	}
	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	var changed []model.Category
	w.Observe(func(c model.Category) {
		changed = append(changed, c)
	})

	err = fn(w)
	s.metrics.ObserveWizard(op, err)
	if err != nil {
		return nil, err
	}
	if err := s.wizards.Set(ctx, userID, w); err != nil {
		return nil, fmt.Errorf("save wizard: %w", err)
	}
	// Notify only once the new step is persisted
	for _, c := range changed {
		s.broadcaster.BroadcastToUser(userID, MsgCategoryChanged, map[string]interface{}{
			"step":     w.Step,
			"category": c,
		})
	}
	return s.view(ctx, userID, w)
}

// ensureIdle rejects edits while a submission holds the user's lock
func (s *WizardService) ensureIdle(ctx context.Context, userID string) error {
	submitting, err := s.wizards.IsSubmitting(ctx, userID)
	if err != nil {
		return fmt.Errorf("check submit lock: %w", err)
	}
	if submitting {
		return ErrSubmissionInFlight
	}
	return nil
}

func (s *WizardService) load(ctx context.Context, userID string) (*ikigai.Wizard, error) {
	w, err := s.wizards.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wizard: %w", err)
	}
	if w == nil {
		w = ikigai.NewWizard()
	}
	return w, nil
}

func (s *WizardService) view(ctx context.Context, userID string, w *ikigai.Wizard) (*WizardView, error) {
	submitting, err := s.wizards.IsSubmitting(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check submit lock: %w", err)
	}
	return &WizardView{
		Step:       w.Step,
		Category:   model.CategoryInfo[w.Current()],
		IsLast:     w.IsLast(),
		Complete:   ikigai.IsCategoryComplete(w.CurrentAnswer()),
		Answers:    w.Answers,
		Submitting: submitting,
	}, nil
}

func (s *WizardService) publish(ctx context.Context, event events.SubmissionEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("publish submission event",
			zap.String("userId", event.UserID), zap.String("status", string(event.Status)), zap.Error(err))
	}
}
