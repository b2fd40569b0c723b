package appointments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotGuard atomically claims a (provider, date, start) bucket. A nil guard
// on the Manager leaves concurrent bookings unserialized.
type SlotGuard interface {
	// Claim returns false when another owner already holds key.
	Claim(ctx context.Context, key SlotKey, owner string) (bool, error)
	Release(ctx context.Context, key SlotKey, owner string) error
}

// MemoryGuard is an in-process SlotGuard.
type MemoryGuard struct {
	mu     sync.Mutex
	owners map[SlotKey]string
}

// NewMemoryGuard creates an empty guard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{owners: make(map[SlotKey]string)}
}

// Claim implements SlotGuard.
func (g *MemoryGuard) Claim(ctx context.Context, key SlotKey, owner string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if current, ok := g.owners[key]; ok && current != owner {
		return false, nil
	}
	g.owners[key] = owner
	return true, nil
}

// Release implements SlotGuard. Releasing a key held by someone else is a no-op.
func (g *MemoryGuard) Release(ctx context.Context, key SlotKey, owner string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.owners[key] == owner {
		delete(g.owners, key)
	}
	return nil
}

const slotGuardKeyPrefix = "appointments:slot:"

// Compare-and-delete so a release never drops another owner's claim.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard claims buckets with SET NX so several processes share one view.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGuard creates a guard whose claims expire after ttl.
func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) key(k SlotKey) string {
	return slotGuardKeyPrefix + k.String()
}

// Claim implements SlotGuard.
func (g *RedisGuard) Claim(ctx context.Context, key SlotKey, owner string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), owner, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("appointments: slot guard claim: %w", err)
	}
	if ok {
		return true, nil
	}
	current, err := g.client.Get(ctx, g.key(key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("appointments: slot guard lookup: %w", err)
	}
	return current == owner, nil
}

// Release implements SlotGuard.
func (g *RedisGuard) Release(ctx context.Context, key SlotKey, owner string) error {
	if err := releaseScript.Run(ctx, g.client, []string{g.key(key)}, owner).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("appointments: slot guard release: %w", err)
	}
	return nil
}
