package cache

import (
	"careerai/internal/ikigai"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WizardCache holds in-progress wizards and the per-user submission lock
type WizardCache interface {
	Get(ctx context.Context, userID string) (*ikigai.Wizard, error)
	Set(ctx context.Context, userID string, w *ikigai.Wizard) error
	Delete(ctx context.Context, userID string) error
	AcquireSubmit(ctx context.Context, userID string, ttl time.Duration) (bool, error)
	ReleaseSubmit(ctx context.Context, userID string) error
	IsSubmitting(ctx context.Context, userID string) (bool, error)
}

type wizardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWizardCache creates a new wizard cache
func NewWizardCache(client *redis.Client) WizardCache {
	return &wizardCache{
		client: client,
		ttl:    24 * time.Hour, // Abandoned wizards expire after 24h
	}
}

func (c *wizardCache) key(userID string) string {
	return fmt.Sprintf("wizard:%s", userID)
}

func (c *wizardCache) lockKey(userID string) string {
	return fmt.Sprintf("wizard-submit:%s", userID)
}

func (c *wizardCache) Get(ctx context.Context, userID string) (*ikigai.Wizard, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var w ikigai.Wizard
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, err
	}
	w.Normalize()
	return &w, nil
}

func (c *wizardCache) Set(ctx context.Context, userID string, w *ikigai.Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, c.ttl).Err()
}

func (c *wizardCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *wizardCache) AcquireSubmit(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, c.lockKey(userID), time.Now().Unix(), ttl).Result()
}

func (c *wizardCache) ReleaseSubmit(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.lockKey(userID)).Err()
}

func (c *wizardCache) IsSubmitting(ctx context.Context, userID string) (bool, error) {
	n, err := c.client.Exists(ctx, c.lockKey(userID)).Result()
	return n > 0, err
}
