package store

import (
	"careerai/internal/model"
	"context"
	"encoding/json"
	"fmt"
)

// ChecklistKeyPrefix names the persisted checklist record
const ChecklistKeyPrefix = "checklist-storage"

type checklistSnapshot struct {
	Checklist []model.ChecklistItem `json:"checklist"`
}

// ChecklistStore holds the progress checklist per user
type ChecklistStore struct {
	backend Backend
}

// NewChecklistStore creates a checklist store over backend
func NewChecklistStore(backend Backend) *ChecklistStore {
	return &ChecklistStore{backend: backend}
}

func (s *ChecklistStore) key(userID string) string {
	return ChecklistKeyPrefix + ":" + userID
}

// Get returns the checklist, seeding the default items the first time
func (s *ChecklistStore) Get(ctx context.Context, userID string) ([]model.ChecklistItem, error) {
	data, err := s.backend.Load(ctx, s.key(userID))
	if err != nil {
		return nil, fmt.Errorf("load checklist: %w", err)
	}
	if data == nil {
		return model.DefaultChecklist(), nil
	}
	return decodeChecklist(data)
}

// Set replaces the whole sequence
func (s *ChecklistStore) Set(ctx context.Context, userID string, items []model.ChecklistItem) error {
	data, err := json.Marshal(checklistSnapshot{Checklist: items})
	if err != nil {
		return err
	}
	if err := s.backend.Save(ctx, s.key(userID), data); err != nil {
		return fmt.Errorf("save checklist: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of the item whose task matches exactly.
// An unknown task leaves the stored checklist untouched. Returns the resulting checklist.
func (s *ChecklistStore) UpdateStatus(ctx context.Context, userID, task string, status model.ChecklistStatus) ([]model.ChecklistItem, error) {
	items, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].Task == task {
			items[i].Status = status
			found = true
		}
	}
	if !found {
		return items, nil
	}
	if err := s.Set(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Subscribe streams the checklist after every change
func (s *ChecklistStore) Subscribe(ctx context.Context, userID string) (<-chan []model.ChecklistItem, error) {
	raw, err := s.backend.Subscribe(ctx, s.key(userID))
	if err != nil {
		return nil, err
	}
	out := make(chan []model.ChecklistItem)
	go func() {
		defer close(out)
		for data := range raw {
			items := model.DefaultChecklist()
			if data != nil {
				decoded, err := decodeChecklist(data)
				if err != nil {
					continue
				}
				items = decoded
			}
			select {
			case out <- items:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func decodeChecklist(data []byte) ([]model.ChecklistItem, error) {
	var snap checklistSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode checklist: %w", err)
	}
	return snap.Checklist, nil
}
