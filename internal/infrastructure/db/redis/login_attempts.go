package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultAttemptWindow = 15 * time.Minute

// LoginGuard counts failed logins per email. The window starts at the first
// failure and the counter disappears when it expires.
// Key format: login_attempts:<email>
type LoginGuard struct {
	client *redis.Client
	window time.Duration
}

// NewLoginGuard creates a LoginGuard wrapping the given Redis client.
func NewLoginGuard(client *redis.Client, window time.Duration) *LoginGuard {
	if window <= 0 {
		window = defaultAttemptWindow
	}
	return &LoginGuard{client: client, window: window}
}

// RegisterFailure increments the counter for email and returns the new value.
func (g *LoginGuard) RegisterFailure(ctx context.Context, email string) (int64, error) {
	key := g.key(email)
	n, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("login guard incr: %w", err)
	}
	if n == 1 {
		if err := g.client.Expire(ctx, key, g.window).Err(); err != nil {
			return n, fmt.Errorf("login guard expire: %w", err)
		}
	}
	return n, nil
}

// Reset clears the counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, email string) error {
	if err := g.client.Del(ctx, g.key(email)).Err(); err != nil {
		return fmt.Errorf("login guard reset: %w", err)
	}
	return nil
}

func (g *LoginGuard) key(email string) string {
	return "login_attempts:" + email
}
