package notifyserver

import (
	"net/http"

	"go.uber.org/zap"

	"ironmind/internal/auth"
	"ironmind/internal/config"
	"ironmind/internal/logger"
	ws "ironmind/internal/websocket"
)

// WebSocketHandler 负责处理通知推送的 WebSocket 连接请求。
type WebSocketHandler struct {
	hub       *ws.Hub
	blacklist auth.TokenBlacklist
	cfg       config.Config
}

// NewWebSocketHandler 创建一个新的 WebSocketHandler 实例。blacklist 可以为 nil。
func NewWebSocketHandler(hub *ws.Hub, blacklist auth.TokenBlacklist, cfg config.Config) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, blacklist: blacklist, cfg: cfg}
}

// ServeWS 通过查询参数 token 认证后升级连接。不接受匿名连接。
func (h *WebSocketHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "缺少认证令牌", http.StatusUnauthorized)
		return
	}

	claims, err := auth.ValidateToken(r.Context(), token, h.cfg.Auth.JWTSecretKey, h.blacklist)
	if err != nil {
		logger.Info("WebSocket 连接尝试失败：令牌无效", zap.Error(err))
		http.Error(w, "令牌无效", http.StatusUnauthorized)
		return
	}

	ws.ServeWs(h.hub, claims.UserID, w, r, h.cfg.WebSocket)
}
