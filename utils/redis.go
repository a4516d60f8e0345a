package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jkz07/transcare/config"
)

// RedisClient is shared by auth (reset tokens, refresh revocation).
var RedisClient *redis.Client

// InitRedis connects to Redis with the loaded configuration.
func InitRedis(cfg *config.Config) error {
	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

const (
	resetTokenPrefix   = "transcare:reset:"
	revokedTokenPrefix = "transcare:revoked:"
)

// SetResetToken stores a password reset token mapped to a user id.
func SetResetToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return RedisClient.Set(ctx, resetTokenPrefix+token, userID, ttl).Err()
}

// GetResetToken returns the user id a reset token was issued for.
func GetResetToken(ctx context.Context, token string) (uint, error) {
	val, err := RedisClient.Get(ctx, resetTokenPrefix+token).Uint64()
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}

// DeleteResetToken removes a reset token after use.
func DeleteResetToken(ctx context.Context, token string) error {
	return RedisClient.Del(ctx, resetTokenPrefix+token).Err()
}

// RevokeRefreshToken marks a refresh token as unusable until it expires anyway.
func RevokeRefreshToken(ctx context.Context, token string, ttl time.Duration) error {
	return RedisClient.Set(ctx, revokedTokenPrefix+token, 1, ttl).Err()
}

// IsRefreshTokenRevoked reports whether a refresh token has been revoked.
func IsRefreshTokenRevoked(ctx context.Context, token string) bool {
	n, err := RedisClient.Exists(ctx, revokedTokenPrefix+token).Result()
	return err == nil && n > 0
}
