package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"ironmind/internal/models"
)

// RelationshipEventPublisher 把关系事件编码为 JSON 写入指定 topic。
// 消息 key 为 TargetID，保证同一接收者的事件有序。
type RelationshipEventPublisher struct {
	producer MessageProducer
	topic    string
}

func NewRelationshipEventPublisher(producer MessageProducer, topic string) *RelationshipEventPublisher {
	return &RelationshipEventPublisher{producer: producer, topic: topic}
}

func (p *RelationshipEventPublisher) Publish(ctx context.Context, event models.RelationshipEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化关系事件失败: %w", err)
	}
	key := []byte(strconv.FormatUint(uint64(event.TargetID), 10))
	return p.producer.SendMessage(ctx, p.topic, key, payload)
}
