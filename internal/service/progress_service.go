package service

import (
	"careerai/internal/export"
	"careerai/internal/model"
	"careerai/internal/repository"
	"careerai/internal/store"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrNoResult         = errors.New("no ikigai result yet")
	ErrInvalidChecklist = errors.New("checklist must hold exactly three items with a known status")
	ErrInvalidStatus    = errors.New("unknown checklist status")
)

const defaultHistoryLimit = 20

// DashboardItem is a checklist row with its link availability
type DashboardItem struct {
	model.ChecklistItem
	Enabled bool `json:"enabled"`
}

// DashboardView is the dashboard page model
type DashboardView struct {
	Checklist []DashboardItem     `json:"checklist"`
	Result    *model.IkigaiResult `json:"result,omitempty"`
}

// RoleLink is a suggested role with a job search link
type RoleLink struct {
	Role      string `json:"role"`
	SearchURL string `json:"searchUrl"`
}

// ExploreView is the explore-roles page model
type ExploreView struct {
	Roles []RoleLink `json:"roles"`
}

// ProgressService owns the stored result, the checklist and the result history
type ProgressService struct {
	results   *store.ResultStore
	checklist *store.ChecklistStore
	history   repository.ResultRepo
	logger    *zap.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(results *store.ResultStore, checklist *store.ChecklistStore, history repository.ResultRepo, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		results:   results,
		checklist: checklist,
		history:   history,
		logger:    logger,
	}
}

// Result returns the stored result or nil
func (s *ProgressService) Result(ctx context.Context, userID string) (*model.IkigaiResult, error) {
	return s.results.Get(ctx, userID)
}

// ClearResult removes the stored result
func (s *ProgressService) ClearResult(ctx context.Context, userID string) error {
	return s.results.Clear(ctx, userID)
}

// ExportMarkdown renders the stored result as Markdown
func (s *ProgressService) ExportMarkdown(ctx context.Context, userID string) (string, error) {
	r, err := s.results.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", ErrNoResult
	}
	return export.Markdown(r), nil
}

// History lists archived submissions, newest first
func (s *ProgressService) History(ctx context.Context, userID string, limit int64) ([]*model.ResultRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	records, err := s.history.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// Checklist returns the user's checklist
func (s *ProgressService) Checklist(ctx context.Context, userID string) ([]model.ChecklistItem, error) {
	return s.checklist.Get(ctx, userID)
}

// SetChecklist replaces the checklist after a shallow shape check
func (s *ProgressService) SetChecklist(ctx context.Context, userID string, items []model.ChecklistItem) ([]model.ChecklistItem, error) {
	if len(items) != model.ChecklistSize {
		return nil, ErrInvalidChecklist
	}
	for _, it := range items {
		if !it.Status.Valid() {
			return nil, ErrInvalidChecklist
		}
	}
	if err := s.checklist.Set(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateChecklistStatus sets one item's status. Unknown tasks are ignored.
func (s *ProgressService) UpdateChecklistStatus(ctx context.Context, userID, task string, status model.ChecklistStatus) ([]model.ChecklistItem, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.checklist.UpdateStatus(ctx, userID, task, status)
}

// Dashboard builds the dashboard, marking the first task done once a result exists
func (s *ProgressService) Dashboard(ctx context.Context, userID string) (*DashboardView, error) {
	result, err := s.results.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var items []model.ChecklistItem
	if result != nil {
		items, err = s.checklist.UpdateStatus(ctx, userID, model.TaskFindIkigai, model.StatusDone)
	} else {
		items, err = s.checklist.Get(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	reviewable := false
	for _, it := range items {
		if it.Task == model.TaskFindIkigai && it.Status == model.StatusDone {
			reviewable = true
		}
	}

	view := &DashboardView{Result: result, Checklist: make([]DashboardItem, 0, len(items))}
	for _, it := range items {
		enabled := it.Link != model.LinkNotNavigable
		switch it.Task {
		case model.TaskReviewSummary:
			enabled = enabled && reviewable
		case model.TaskExploreRoles:
			enabled = enabled && result != nil
		}
		view.Checklist = append(view.Checklist, DashboardItem{ChecklistItem: it, Enabled: enabled})
	}
	return view, nil
}

// ViewResults returns the result and marks the summary reviewed. ErrNoResult when absent.
func (s *ProgressService) ViewResults(ctx context.Context, userID string) (*model.IkigaiResult, error) {
	return s.visit(ctx, userID, model.TaskReviewSummary)
}

// ExploreRoles lists suggested roles with job search links and marks roles explored.
// ErrNoResult when absent.
func (s *ProgressService) ExploreRoles(ctx context.Context, userID string) (*ExploreView, error) {
	result, err := s.visit(ctx, userID, model.TaskExploreRoles)
	if err != nil {
		return nil, err
	}
	view := &ExploreView{Roles: make([]RoleLink, 0, len(result.Suggestions))}
	for _, role := range result.Suggestions {
		view.Roles = append(view.Roles, RoleLink{Role: role, SearchURL: export.JobSearchURL(role)})
	}
	return view, nil
}

func (s *ProgressService) visit(ctx context.Context, userID, task string) (*model.IkigaiResult, error) {
	result, err := s.results.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNoResult
	}
	if _, err := s.checklist.UpdateStatus(ctx, userID, task, model.StatusDone); err != nil {
		s.logger.Warn("update checklist", zap.String("userId", userID), zap.String("task", task), zap.Error(err))
	}
	return result, nil
}
