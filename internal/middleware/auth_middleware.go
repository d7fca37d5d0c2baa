package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ironmind/internal/auth"
	"ironmind/internal/logger"
)

// contextKey 是用于在 context.Context 中存储值的自定义类型，以避免键冲突。
type contextKey string

const (
	// UserIDKey 是用于在上下文中存储用户ID的键。
	UserIDKey contextKey = "userID"
	// ClaimsKey 保存完整的 JWT 声明，登出时需要 JTI 和过期时间。
	ClaimsKey contextKey = "claims"
)

// AuthMiddleware 验证 Bearer Token 并将用户信息写入请求上下文。
// blacklist 为 nil 时不检查吊销。
func AuthMiddleware(jwtKey string, blacklist auth.TokenBlacklist) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "Missing or malformed authorization header.")
				return
			}

			claims, err := auth.ValidateToken(r.Context(), tokenString, jwtKey, blacklist)
			if err != nil {
				logger.Debug("令牌验证失败", zap.String("path", r.URL.Path), zap.Error(err))
				unauthorized(w, "Invalid or expired token.")
				return
			}

			ctx := WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// WithClaims 将声明放入上下文，测试中也用它来模拟已认证的请求。
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return context.WithValue(ctx, UserIDKey, claims.UserID)
}

// GetUserIDFromContext 从上下文中获取用户ID。
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok && userID != 0
}

// GetClaimsFromContext 从上下文中获取 JWT 声明。
func GetClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
