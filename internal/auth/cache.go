package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const cachePrefix = "habituate:apikey:"

// CachedKeyStore is a read-through redis cache in front of a KeyStore.
// Only user keys are cached, so a newly created user is admitted
// immediately and admin keys are checked against the api_keys table on
// every request. Redis failures fall back to the wrapped store.
type CachedKeyStore struct {
	next   KeyStore
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCachedKeyStore(next KeyStore, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedKeyStore {
	return &CachedKeyStore{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "key_cache").Logger(),
	}
}

func (c *CachedKeyStore) Lookup(ctx context.Context, key string) (Role, error) {
	if key == "" {
		return "", ErrUnknownKey
	}

	cacheKey := cacheKeyFor(key)
	cached, err := c.client.Get(ctx, cacheKey).Result()
	switch {
	case err == nil:
		if Role(cached) == RoleUser {
			return RoleUser, nil
		}
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Msg("Key cache read failed, using database")
	}

	role, err := c.next.Lookup(ctx, key)
	if err != nil {
		return "", err
	}

	if role != RoleUser {
		return role, nil
	}
	if err := c.client.Set(ctx, cacheKey, string(role), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("Key cache write failed")
	}
	return role, nil
}

// Forget drops key from the cache. Call it when the key stops being valid.
func (c *CachedKeyStore) Forget(ctx context.Context, key string) {
	if err := c.client.Del(ctx, cacheKeyFor(key)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("Key cache delete failed")
	}
}

// Keys are hashed so the cache never holds credentials in clear text.
func cacheKeyFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return cachePrefix + hex.EncodeToString(sum[:])
}

// Forgetter is implemented by key stores that cache lookups.
type Forgetter interface {
	Forget(ctx context.Context, key string)
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
