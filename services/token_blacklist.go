package services

import (
	"context"
	"fmt"
	"time"

	"main/utils"

	"github.com/redis/go-redis/v9"
)

// RedisTokenBlacklist invalidates issued tokens before their natural
// expiry (logout). Entries expire together with the token.
type RedisTokenBlacklist struct {
	Client *redis.Client
}

// TokenBlacklist is the global instance
var TokenBlacklist *RedisTokenBlacklist

func NewTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{Client: client}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// BlacklistToken marks a token invalid until its exp claim passes.
func (tb *RedisTokenBlacklist) BlacklistToken(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("cannot blacklist invalid token: %w", err)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return fmt.Errorf("token has no expiry claim")
	}

	ttl := time.Until(time.Unix(int64(exp), 0))
	if ttl <= 0 {
		// Already expired, nothing to do.
		return nil
	}

	if err := tb.Client.Set(ctx, blacklistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether a token was invalidated. A Redis
// failure counts as blacklisted: better to re-login than to accept a
// token that might have been revoked.
func IsTokenBlacklisted(ctx context.Context, token string) bool {
	if TokenBlacklist == nil {
		return false
	}

	exists, err := TokenBlacklist.Client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return true
	}
	return exists > 0
}
