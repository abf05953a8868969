package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Reposicion-api/internal/application/ports"
)

const (
	lockKeyPrefix   = "reposicion:order-lock:"
	defaultLockTTL  = 30 * time.Second
	defaultPollWait = 25 * time.Millisecond
)

// El lock solo se borra si el token sigue siendo el del dueño: si el TTL
// expiró y otro proceso lo tomó, no se lo quitamos.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

var _ ports.OrderLocker = (*Redis)(nil)

// Redis lock por orden compartido entre réplicas (SET NX con TTL).
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	poll   time.Duration
}

// NewRedis construye el locker. ttl <= 0 usa 30s.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Redis{client: client, ttl: ttl, poll: defaultPollWait}
}

// Acquire reintenta SETNX hasta obtener el lock o hasta que ctx se cancele.
func (r *Redis) Acquire(ctx context.Context, orderID string) (func(), error) {
	key := lockKeyPrefix + orderID
	token := uuid.New().String()

	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()
	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis setnx %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return func() {
		// Liberar aunque el ctx del request ya se haya cancelado.
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(relCtx, r.client, []string{key}, token).Err()
	}, nil
}
