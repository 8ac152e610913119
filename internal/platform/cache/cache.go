// Package cache provides 2-tier caching: L1 in-memory + optional L2 Redis.
// L1 is fast but lost on restart. L2 survives restarts and is shared between instances.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configures a Tiered cache.
type Options struct {
	// RedisURL can be empty to disable L2.
	RedisURL        string
	TTL             time.Duration
	MaxEntries      int
	CleanupInterval time.Duration
	Logger          *slog.Logger
}

// Tiered implements L1 (memory) + L2 (Redis) caching.
type Tiered struct {
	l1         sync.Map      // key → *entry
	rdb        *redis.Client // nil if Redis unavailable
	ttl        time.Duration
	maxEntries int
	logger     *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// New sets up the cache and starts the L1 cleanup goroutine. An invalid or
// unreachable Redis only disables L2; it is never an error.
func New(ctx context.Context, opts Options) *Tiered {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	c := &Tiered{
		ttl:        ttl,
		maxEntries: opts.MaxEntries,
		logger:     logger.With("component", "cache"),
		stop:       make(chan struct{}),
	}

	if opts.RedisURL != "" {
		c.rdb = connectRedis(ctx, opts.RedisURL, c.logger)
	}

	c.logger.Info("cache initialized",
		slog.Duration("ttl", ttl),
		slog.Bool("redis", c.rdb != nil),
		slog.Int("max_entries", opts.MaxEntries))

	go c.cleanupLoop(opts.CleanupInterval)

	return c
}

func connectRedis(ctx context.Context, redisURL string, logger *slog.Logger) *redis.Client {
	ropts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("invalid redis URL, L2 disabled", slog.Any("error", err))
		return nil
	}

	rdb := redis.NewClient(ropts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, L2 disabled", slog.Any("error", err))
		_ = rdb.Close()
		return nil
	}

	logger.Info("L2 redis connected", slog.String("addr", ropts.Addr))
	return rdb
}

// Key builds a deterministic cache key from parts.
func Key(parts ...string) string {
	joined := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("nc:%x", hash[:12])
}

// Get tries L1, then L2. On L2 hit, populates L1.
func (c *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if time.Now().Before(e.expiresAt) {
			c.logger.DebugContext(ctx, "L1 hit", slog.String("key", key))
			c.hits.Add(1)
			return e.data, true
		}
		c.l1.Delete(key)
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			c.logger.DebugContext(ctx, "L2 hit", slog.String("key", key))
			c.hits.Add(1)
			c.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(c.ttl)})
			return data, true
		}
		if !errors.Is(err, redis.Nil) {
			c.logger.DebugContext(ctx, "L2 get failed", slog.Any("error", err))
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Set stores data in both L1 and L2.
func (c *Tiered) Set(ctx context.Context, key string, data []byte) {
	c.evictIfNeeded()

	c.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(c.ttl)})

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.DebugContext(ctx, "L2 set failed", slog.Any("error", err))
		}
	}
}

// Stats returns current cache hit/miss counters.
func (c *Tiered) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of L1 entries, expired ones included.
func (c *Tiered) Len() int {
	n := 0
	c.l1.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Close stops the cleanup goroutine and closes the Redis client.
func (c *Tiered) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// GetJSON loads a cached value of type T. Returns false on miss or decode error.
func GetJSON[T any](ctx context.Context, c *Tiered, key string) (T, bool) {
	var out T
	data, ok := c.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// SetJSON marshals v and stores it.
func SetJSON[T any](ctx context.Context, c *Tiered, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, data)
}

// evictIfNeeded removes entries when L1 exceeds maxEntries.
// Removes expired entries first, then oldest entries if still over limit.
func (c *Tiered) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}

	count := c.Len()
	if count < c.maxEntries {
		return
	}

	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return count >= c.maxEntries
	})

	// Earlier expiry = older entry, since expiry = createdAt + ttl.
	for count >= c.maxEntries {
		var oldestKey any
		oldestAt := now.Add(c.ttl + time.Hour)
		c.l1.Range(func(key, val any) bool {
			if e, ok := val.(*entry); ok && e.expiresAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			break
		}
		c.l1.Delete(oldestKey)
		count--
	}
}

// cleanupLoop periodically removes expired L1 entries until Close is called.
func (c *Tiered) cleanupLoop(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.l1.Range(func(key, val any) bool {
				if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
					c.l1.Delete(key)
				}
				return true
			})
		}
	}
}
