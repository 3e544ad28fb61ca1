// Package lease coordinates sweeper instances through Redis so that a single
// instance runs each tick.
package lease

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// compare-and-delete so an instance never drops a lease another one took over
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Redis struct {
	Client *redis.Client
	Key    string
}

// NewRedis connects using a redis:// URL.
func NewRedis(url, key string) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL tidak valid: %w", err)
	}
	if key == "" {
		key = "hotelbooking:sweeper"
	}
	return &Redis{Client: redis.NewClient(opt), Key: key}, nil
}

func (l *Redis) Acquire(ctx context.Context, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.Client.SetNX(ctx, l.Key, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		if err := releaseScript.Run(context.Background(), l.Client, []string{l.Key}, token).Err(); err != nil && err != redis.Nil {
			log.Printf("[LEASE] gagal melepas %s: %v", l.Key, err)
		}
	}
	return release, true, nil
}

func (l *Redis) Ping(ctx context.Context) error {
	return l.Client.Ping(ctx).Err()
}

func (l *Redis) Close() error {
	return l.Client.Close()
}
