// File: internal/cache/revocation.go
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const revokedPrefix = "revoked:"

// revokedKey 以 token 的 sha256 作為 key，不在 Redis 存放原始 token
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedPrefix + hex.EncodeToString(sum[:])
}

// RevokeToken 把 token 放入黑名單直到它原本的到期時間
func RevokeToken(ctx context.Context, c Cache, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// 已過期的 token 本來就無法通過驗證
		return nil
	}
	if err := c.Set(ctx, revokedKey(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("RevokeToken: %w", err)
	}
	return nil
}

// IsRevoked 回報 token 是否已登出
func IsRevoked(ctx context.Context, c Cache, token string) (bool, error) {
	n, err := c.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("IsRevoked: %w", err)
	}
	return n > 0, nil
}
