// Package store holds the per-user persisted slices read by the presentation layer:
// the last Ikigai result and the progress checklist.
package store

import (
	"context"
	"sync"
)

// Backend is durable key-value storage with change notifications.
// Load returns nil data and no error for a missing key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	// Subscribe delivers every value saved under key until ctx is done.
	// Deletions are delivered as nil.
	Subscribe(ctx context.Context, key string) (<-chan []byte, error)
}

// MemoryBackend is a process-local Backend
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
	subs map[string]map[chan []byte]struct{}
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data: make(map[string][]byte),
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

func (b *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (b *MemoryBackend) Save(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), data...)
	b.notify(key, data)
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	b.notify(key, nil)
	return nil
}

func (b *MemoryBackend) Subscribe(ctx context.Context, key string) (<-chan []byte, error) {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[key] == nil {
		b.subs[key] = make(map[chan []byte]struct{})
	}
	b.subs[key][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs[key], ch)
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}

// notify must be called with b.mu held
func (b *MemoryBackend) notify(key string, data []byte) {
	var v []byte
	if data != nil {
		v = append([]byte(nil), data...)
	}
	for ch := range b.subs[key] {
		select {
		case ch <- v:
		default:
			// Drop if the subscriber is not keeping up
		}
	}
}
