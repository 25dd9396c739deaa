package store

import (
	"careerai/internal/model"
	"context"
	"encoding/json"
	"fmt"
)

// ResultKeyPrefix names the persisted result record
const ResultKeyPrefix = "ikigai-storage"

type resultSnapshot struct {
	Result *model.IkigaiResult `json:"result"`
}

// ResultStore holds the last Ikigai result per user
type ResultStore struct {
	backend Backend
}

// NewResultStore creates a result store over backend
func NewResultStore(backend Backend) *ResultStore {
	return &ResultStore{backend: backend}
}

func (s *ResultStore) key(userID string) string {
	return ResultKeyPrefix + ":" + userID
}

// Get returns the stored result, or nil before the first submission
func (s *ResultStore) Get(ctx context.Context, userID string) (*model.IkigaiResult, error) {
	data, err := s.backend.Load(ctx, s.key(userID))
	if err != nil {
		return nil, fmt.Errorf("load result: %w", err)
	}
	return decodeResult(data)
}

// Set replaces the stored result wholesale
func (s *ResultStore) Set(ctx context.Context, userID string, result *model.IkigaiResult) error {
	data, err := json.Marshal(resultSnapshot{Result: result})
	if err != nil {
		return err
	}
	if err := s.backend.Save(ctx, s.key(userID), data); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// Clear removes the stored result
func (s *ResultStore) Clear(ctx context.Context, userID string) error {
	if err := s.backend.Delete(ctx, s.key(userID)); err != nil {
		return fmt.Errorf("clear result: %w", err)
	}
	return nil
}

// Subscribe streams the result after every change; a cleared result arrives as nil
func (s *ResultStore) Subscribe(ctx context.Context, userID string) (<-chan *model.IkigaiResult, error) {
	raw, err := s.backend.Subscribe(ctx, s.key(userID))
	if err != nil {
		return nil, err
	}
	out := make(chan *model.IkigaiResult)
	go func() {
		defer close(out)
		for data := range raw {
			result, err := decodeResult(data)
			if err != nil {
				continue
			}
			select {
			case out <- result:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func decodeResult(data []byte) (*model.IkigaiResult, error) {
	if data == nil {
		return nil, nil
	}
	var snap resultSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return snap.Result, nil
}
