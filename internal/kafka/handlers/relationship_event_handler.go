package kafkahandlers

import (
	"context"
	"encoding/json"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"

	"ironmind/internal/logger"
	"ironmind/internal/models"
)

// Notifier 向在线用户推送消息，用户不在线时返回 false。
type Notifier interface {
	Notify(userID uint, payload []byte) bool
}

// RelationshipEventHandler 消费关系事件并推送给事件的接收方。
type RelationshipEventHandler struct {
	notifier Notifier
}

func NewRelationshipEventHandler(n Notifier) *RelationshipEventHandler {
	return &RelationshipEventHandler{notifier: n}
}

// Handle 是传给消费者的 MessageHandler。
// 无法解析的消息直接跳过，避免阻塞分区。
func (h *RelationshipEventHandler) Handle(_ context.Context, msg *kafka.Message) error {
	var event models.RelationshipEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Warn("跳过无法解析的关系事件", zap.ByteString("value", msg.Value), zap.Error(err))
		return nil
	}
	if event.TargetID == 0 {
		logger.Warn("跳过缺少接收方的关系事件", zap.String("type", string(event.Type)))
		return nil
	}

	delivered := h.notifier.Notify(event.TargetID, msg.Value)
	logger.Debug("关系事件已处理",
		zap.String("type", string(event.Type)),
		zap.Uint("target", event.TargetID),
		zap.Bool("delivered", delivered))
	return nil
}
