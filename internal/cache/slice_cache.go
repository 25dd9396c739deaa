package cache

import (
	"careerai/internal/store"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SliceCache persists store slices in Redis and publishes every change
type SliceCache struct {
	client *redis.Client
}

var _ store.Backend = (*SliceCache)(nil)

// NewSliceCache creates a Redis-backed store backend. Values never expire.
func NewSliceCache(client *redis.Client) *SliceCache {
	return &SliceCache{client: client}
}

func (c *SliceCache) channel(key string) string {
	return fmt.Sprintf("%s:updates", key)
}

func (c *SliceCache) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *SliceCache) Save(ctx context.Context, key string, data []byte) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, 0)
		pipe.Publish(ctx, c.channel(key), data)
		return nil
	})
	return err
}

func (c *SliceCache) Delete(ctx context.Context, key string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.Publish(ctx, c.channel(key), "")
		return nil
	})
	return err
}

func (c *SliceCache) Subscribe(ctx context.Context, key string) (<-chan []byte, error) {
	ps := c.client.Subscribe(ctx, c.channel(key))
	// Wait for the subscription to be confirmed so no publish is missed
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, err
	}

	out := make(chan []byte, 16)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var data []byte
				if msg.Payload != "" {
					data = []byte(msg.Payload)
				}
				select {
				case out <- data:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
