package cache

import (
	"context"
	"log"
	"photo_contest/internal/platform/config"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	log.Println("Successfully connected to Redis")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		log.Println("Redis connection closed")
	}
}

// TokenRevoker tracks revoked auth tokens until they expire. Logout places
// the presented token here; the auth middleware rejects revoked tokens.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type redisTokenRevoker struct {
	rdb *redis.Client
}

func NewRedisTokenRevoker(rdb *redis.Client) TokenRevoker {
	return &redisTokenRevoker{rdb: rdb}
}

func (r *redisTokenRevoker) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revocationKey(token), "1", ttl).Err()
}

func (r *redisTokenRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revocationKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func revocationKey(token string) string {
	return "revoked_token:" + token
}
