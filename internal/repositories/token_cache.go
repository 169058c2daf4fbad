package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
)

// ErrCacheMiss is returned when a token is not cached.
var ErrCacheMiss = errors.New("token not found in cache")

// TokenCacheRepository caches token value -> user ID lookups in Redis.
// Tokens never expire, so only the cache entry carries a TTL.
type TokenCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached entries
}

// NewTokenCacheRepository creates a new repository instance with optional TTL
func NewTokenCacheRepository(client *redis.Client, expiration time.Duration) *TokenCacheRepository {
	return &TokenCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// cacheKey hashes the token so raw bearer credentials never appear in Redis.
func cacheKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return "auth_token:" + hex.EncodeToString(sum[:])
}

// GetUserID returns the cached owner of a token.
func (r *TokenCacheRepository) GetUserID(ctx context.Context, value string) (uuid.UUID, error) {
	key := cacheKey(value)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("cache get",
			"key", key,
			"result", val,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrCacheMiss
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)

	logger.Log.Infow("cache get",
		"key", key,
		"result", userID,
		"error", err,
	)

	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

// SetUserID caches the owner of a token.
func (r *TokenCacheRepository) SetUserID(ctx context.Context, value string, userID uuid.UUID) error {
	key := cacheKey(value)
	err := r.client.Set(ctx, key, userID.String(), r.exp).Err()

	logger.Log.Infow("cache set",
		"key", key,
		"user_id", userID,
		"error", err,
	)

	return err
}
