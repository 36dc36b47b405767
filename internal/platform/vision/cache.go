package vision

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when no detection result is cached for an image.
var ErrCacheMiss = fmt.Errorf("detection cache miss")

// Cache stores detection results in Redis keyed by image hash, so repeated
// uploads of the same photo skip the detector.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects to Redis and verifies the connection.
func NewCache(addr string, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// HashImage calculates the SHA256 hash of the image data.
func HashImage(imageData []byte) string {
	hash := sha256.Sum256(imageData)
	return hex.EncodeToString(hash[:])
}

// Get returns the cached labels for the image, or ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, imageData []byte) ([]string, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheMiss
	}

	data, err := c.client.Get(ctx, cacheKey(imageData)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached detection: %w", err)
	}

	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached detection: %w", err)
	}
	return labels, nil
}

// Set caches the labels for the image.
func (c *Cache) Set(ctx context.Context, imageData []byte, labels []string) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("failed to marshal detection labels: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(imageData), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache detection: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func cacheKey(imageData []byte) string {
	return "detect:" + HashImage(imageData)
}
