package websocket

import (
	"context"

	"go.uber.org/zap"

	"ironmind/internal/logger"
)

type directMessage struct {
	userID  uint
	payload []byte
}

// Hub 维护在线连接，并把通知推送给指定用户。
// 每个用户只保留一个连接，新连接会替换旧连接。
type Hub struct {
	clients    map[uint]*Client
	register   chan *Client
	unregister chan *Client
	direct     chan directMessage
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan directMessage, 256),
	}
}

// Notify 将 payload 排入 userID 的推送队列。
// 队列已满时丢弃并返回 false，不阻塞调用方（Kafka 消费者）。
func (h *Hub) Notify(userID uint, payload []byte) bool {
	select {
	case h.direct <- directMessage{userID: userID, payload: payload}:
		return true
	default:
		logger.Warn("Hub direct channel is full, dropping notification", zap.Uint("userID", userID))
		return false
	}
}

// Run 运行 Hub 主循环，直到 ctx 取消。
func (h *Hub) Run(ctx context.Context) {
	logger.Info("WebSocket Hub Run loop started.")
	for {
		select {
		case <-ctx.Done():
			for userID, client := range h.clients {
				close(client.send)
				delete(h.clients, userID)
			}
			logger.Info("WebSocket Hub stopped.")
			return

		case client := <-h.register:
			if existing, ok := h.clients[client.UserID]; ok {
				logger.Info("用户已有连接，替换旧连接", zap.Uint("userID", client.UserID))
				close(existing.send)
			}
			h.clients[client.UserID] = client
			logger.Debug("客户端已注册", zap.Uint("userID", client.UserID))

		case client := <-h.unregister:
			// 旧连接被替换后也会注销，此时不能关闭新连接的通道
			if stored, ok := h.clients[client.UserID]; ok && stored == client {
				delete(h.clients, client.UserID)
				close(client.send)
				logger.Debug("客户端已注销", zap.Uint("userID", client.UserID))
			}

		case msg := <-h.direct:
			client, ok := h.clients[msg.userID]
			if !ok {
				continue
			}
			select {
			case client.send <- msg.payload:
			default:
				logger.Warn("发送通道已满，移除客户端", zap.Uint("userID", msg.userID))
				close(client.send)
				delete(h.clients, msg.userID)
			}
		}
	}
}
