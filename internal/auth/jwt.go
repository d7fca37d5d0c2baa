package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ironmind/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("JWT 无效")
	ErrTokenRevoked = errors.New("JWT 已被吊销")
)

// Claims 是 JWT 中的自定义声明，嵌入了 jwt.RegisteredClaims。
type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken 为指定用户生成一个新的 JWT，同时返回其过期时间。
func GenerateToken(userID uint, email string, authCfg config.AuthConfig) (string, time.Time, error) {
	jwtID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("生成 JWT ID 失败: %w", err)
	}

	now := time.Now()
	expirationTime := now.Add(authCfg.JWTExpiry)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			ID:        jwtID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    authCfg.Issuer,
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(authCfg.JWTSecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("生成 JWT 失败: %w", err)
	}
	return tokenString, expirationTime, nil
}

// ValidateToken 验证 JWT 的签名、有效期和黑名单状态。
// blacklist 可以为 nil，此时不检查吊销。
func ValidateToken(ctx context.Context, tokenString string, jwtKey string, blacklist TokenBlacklist) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名算法: %v", token.Header["alg"])
		}
		return []byte(jwtKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}

	if blacklist != nil {
		if claims.ID == "" {
			return nil, fmt.Errorf("%w: 缺少 JTI", ErrTokenInvalid)
		}
		isRevoked, err := blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// 无法确认时拒绝
			return nil, fmt.Errorf("检查 Token 黑名单失败: %w", err)
		}
		if isRevoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}
