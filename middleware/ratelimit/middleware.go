package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Throttle guards the public authentication endpoints against
// credential guessing by limiting attempts per client IP.
type Throttle struct {
	config  Config
	client  *redis.Client
	limiter *Limiter
}

// New creates a new Throttle. Connect must be called before Handler
// is used.
func New(opts ...Option) *Throttle {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Throttle{config: config}
}

// Enabled reports whether a Redis address has been configured.
func (t *Throttle) Enabled() bool {
	return t.config.RedisAddr != ""
}

// Connect establishes the Redis connection backing the limiter.
func (t *Throttle) Connect(ctx context.Context) error {
	t.client = redis.NewClient(&redis.Options{
		Addr:         t.config.RedisAddr,
		Password:     t.config.RedisPassword,
		DB:           t.config.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := t.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", t.config.RedisAddr, err)
	}

	t.limiter = NewLimiter(t.client, t.config.KeyPrefix)
	return nil
}

// Close releases the Redis connection.
func (t *Throttle) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// Handler returns a Fiber middleware limiting requests by client IP.
// Redis errors let the request through rather than locking everyone
// out.
func (t *Throttle) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if ip == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "forbidden",
				"message": "unable to determine client IP address",
			})
		}

		result, err := t.limiter.Allow(c.Context(), ip, t.config.Attempts, t.config.Window)
		if err != nil {
			c.Set("X-RateLimit-Error", err.Error())
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(t.config.Attempts))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", strconv.Itoa(retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "too_many_requests",
				"message":     fmt.Sprintf("Too many attempts. Please retry after %d seconds.", retryAfter),
				"retry_after": retryAfter,
			})
		}

		return c.Next()
	}
}
