package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ironmind/internal/config"
	"ironmind/internal/logger"
)

// Client 连接 websocket 与 Hub。通知通道只下行，客户端发来的消息被忽略。
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte

	UserID uint
}

// readPump 只负责处理 pong 和检测断开。
func (c *Client) readPump(wsCfg config.WebSocketConfig) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	pongWait := time.Duration(wsCfg.PongWaitSeconds) * time.Second
	c.conn.SetReadLimit(int64(wsCfg.MaxMessageSizeBytes))
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket 连接异常关闭", zap.Uint("userID", c.UserID), zap.Error(err))
			}
			return
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump(wsCfg config.WebSocketConfig) {
	writeWait := time.Duration(wsCfg.WriteWaitSeconds) * time.Second
	ticker := time.NewTicker(time.Duration(wsCfg.PingPeriodSeconds) * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// 每条通知单独一帧，客户端按 JSON 解析
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs 升级连接并把已认证的 userID 注册到 Hub。
func ServeWs(hub *Hub, userID uint, w http.ResponseWriter, r *http.Request, wsCfg config.WebSocketConfig) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("WebSocket Upgrade 失败", zap.Error(err))
		return
	}
	client := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		UserID: userID,
	}
	hub.register <- client

	go client.writePump(wsCfg)
	go client.readPump(wsCfg)

	logger.Info("客户端已连接", zap.Uint("userID", userID))
}
