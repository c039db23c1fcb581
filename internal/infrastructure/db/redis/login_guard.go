package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rentalinx/backoffice/internal/core/domain"
)

const loginLockTTL = 30 * time.Second

// releaseScript deletes the lock only when it still holds our token, so a
// lock that expired and was re-acquired by another login is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LoginGuard serializes logins per browser context with a SET NX lock.
// Key format: rentalinx:<context_id>:login_lock
type LoginGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLoginGuard(client *redis.Client) *LoginGuard {
	return &LoginGuard{client: client, ttl: loginLockTTL}
}

func (g *LoginGuard) Acquire(ctx context.Context, contextID string) (func(), error) {
	k := key(contextID, "login_lock")
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, k, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire login lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrLoginInFlight
	}

	return func() {
		// The request context may already be cancelled when the login returns.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, g.client, []string{k}, token).Err()
	}, nil
}
