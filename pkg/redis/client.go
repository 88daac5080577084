package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

// Config holds Redis connection configuration
type Config struct {
	URL      string // redis://... or rediss://... for TLS (Upstash)
	Password string
}

// Client returns the singleton Redis client instance.
// Returns nil if Redis is not configured or connection failed.
func Client() *redis.Client {
	return client
}

// Initialize initializes the Redis client with the given configuration.
// Safe for concurrent calls - only first call initializes.
func Initialize(cfg Config) error {
	clientOnce.Do(func() {
		if cfg.URL == "" {
			clientErr = errors.New("redis: REDIS_URL not configured")
			return
		}

		parsedURL, err := url.Parse(cfg.URL)
		if err != nil {
			clientErr = fmt.Errorf("redis: invalid URL: %w", err)
			return
		}

		useTLS := parsedURL.Scheme == "rediss"

		addr := parsedURL.Host
		if parsedURL.Port() == "" {
			addr = parsedURL.Host + ":6379"
		}

		password := cfg.Password
		if password == "" {
			if parsedURL.User != nil {
				password, _ = parsedURL.User.Password()
			}
		}

		opts := &redis.Options{
			Addr:         addr,
			Password:     password,
			DB:           0,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MinIdleConns: 2,
		}

		if useTLS {
			opts.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		client = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			clientErr = fmt.Errorf("redis: connection failed: %w", err)
			client = nil
			return
		}
	})

	return clientErr
}

// IsAvailable checks if the Redis client is initialized and reachable.
func IsAvailable() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// Publish sends a payload on a pub/sub channel. No-op error when Redis is
// not configured so callers can fall back to in-process delivery.
func Publish(ctx context.Context, channel string, payload []byte) error {
	if client == nil {
		return errors.New("redis: not configured")
	}
	return client.Publish(ctx, channel, payload).Err()
}

// Subscribe returns a PubSub subscription for the given channel, or nil when
// Redis is not configured.
func Subscribe(ctx context.Context, channel string) *redis.PubSub {
	if client == nil {
		return nil
	}
	return client.Subscribe(ctx, channel)
}
