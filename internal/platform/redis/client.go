// Package redis wraps the go-redis client for the scan result cache.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client with the byte-oriented cache operations
// the scan service expects.
type Client struct {
	*redis.Client
}

// New creates a Redis client from a URL. Returns (nil, nil) when the URL is
// empty, meaning the cache is not configured.
func New(ctx context.Context, url string) (*Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}

// GetBytes fetches a cache entry, returning (nil, nil) on a miss.
func (c *Client) GetBytes(ctx context.Context, key string) ([]byte, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SetBytes stores a cache entry with a TTL.
func (c *Client) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Set(ctx, key, value, ttl).Err()
}

// Health checks the connection.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
