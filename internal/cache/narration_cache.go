package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NarrationCache maps a digest of narrated text to the URL of the audio
// file already synthesized for it, so repeated prompts (intro, closing
// messages, re-fetched questions) skip the TTS round trip.
type NarrationCache interface {
	GetURL(ctx context.Context, digest string) (string, error)
	SetURL(ctx context.Context, digest, url string) error
}

type narrationCache struct {
	client *redis.Client
}

func NewNarrationCache(client *redis.Client) NarrationCache {
	return &narrationCache{
		client: client,
	}
}

func (c *narrationCache) GetURL(ctx context.Context, digest string) (string, error) {
	url, err := c.client.Get(ctx, "interview:tts:"+digest).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

func (c *narrationCache) SetURL(ctx context.Context, digest, url string) error {
	return c.client.Set(ctx, "interview:tts:"+digest, url, 24*time.Hour).Err()
}
