// Package cache keeps revoked bearer tokens in redis until they expire.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"artisan_market/internal/config"
)

const blacklistPrefix = "jwt:blacklist:"

type RedisBlacklist struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisBlacklist connects and pings redis.
func NewRedisBlacklist(ctx context.Context, cfg config.RedisConfig) (*RedisBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cant ping redis: %w", err)
	}
	return &RedisBlacklist{client: client, now: time.Now}, nil
}

// Revoke stores the token until its expiry. Already expired tokens are skipped.
func (b *RedisBlacklist) Revoke(ctx context.Context, token string, until time.Time) error {
	ttl := until.Sub(b.now())
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, key(token), 1, ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := b.client.Get(ctx, key(token)).Err()
	switch {
	case err == redis.Nil:
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (b *RedisBlacklist) Close() error {
	return b.client.Close()
}

// Tokens are hashed so the raw credential never sits in redis.
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistPrefix + hex.EncodeToString(sum[:])
}
