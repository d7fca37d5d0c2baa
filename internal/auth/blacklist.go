package auth

import (
	"context"
	"time"
)

// TokenBlacklist 保存已登出 Token 的 JTI，条目在 Token 原本过期后自动失效。
type TokenBlacklist interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Revoke 吊销 claims 对应的 Token。blacklist 为 nil 时什么也不做。
// 缺少 JTI 或过期时间的 Token 无法吊销，返回 ErrTokenInvalid。
func Revoke(ctx context.Context, blacklist TokenBlacklist, claims *Claims) error {
	if blacklist == nil {
		return nil
	}
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return ErrTokenInvalid
	}
	return blacklist.Add(ctx, claims.ID, claims.ExpiresAt.Time)
}
