package tenantcache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pawsuite/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tenant:slug:"

// SlugStore is the durable lookup behind the cache.
type SlugStore interface {
	IDBySlug(ctx context.Context, slug string) (uuid.UUID, error)
}

// Resolver is a read-through cache for slug -> tenant id. The TTL is only a
// backstop; tenant mutations must call Invalidate explicitly so renames and
// suspensions take effect immediately.
type Resolver struct {
	client *redis.Client
	store  SlugStore
	ttl    time.Duration
}

func NewResolver(client *redis.Client, store SlugStore, cfg config.Config) *Resolver {
	return &Resolver{
		client: client,
		store:  store,
		ttl:    cfg.Redis.TenantTTL,
	}
}

func (r *Resolver) Resolve(ctx context.Context, slug string) (uuid.UUID, error) {
	key := keyPrefix + slug

	cached, err := r.client.Get(ctx, key).Result()
	if err == nil {
		if id, parseErr := uuid.Parse(cached); parseErr == nil {
			return id, nil
		}
		// Unparseable cache entry; drop it and fall through to the store.
		r.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("tenant cache read failed", "slug", slug, "error", err.Error())
	}

	id, err := r.store.IDBySlug(ctx, slug)
	if err != nil {
		return uuid.Nil, err
	}

	if setErr := r.client.Set(ctx, key, id.String(), r.ttl).Err(); setErr != nil {
		slog.Warn("tenant cache write failed", "slug", slug, "error", setErr.Error())
	}

	return id, nil
}

// Invalidate drops the cached entry for a slug. Wire this to tenant-record
// mutation paths.
func (r *Resolver) Invalidate(ctx context.Context, slug string) error {
	return r.client.Del(ctx, keyPrefix+slug).Err()
}
