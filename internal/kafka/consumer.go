package kafka

import (
	"context"
	"fmt"
	"strings"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"

	"ironmind/internal/config"
	"ironmind/internal/logger"
)

// MessageHandler is a function type for processing consumed Kafka messages.
type MessageHandler func(ctx context.Context, msg *kafka.Message) error

// MessageConsumer defines the interface for a Kafka message consumer.
type MessageConsumer interface {
	Consume(ctx context.Context, topics []string, groupID string, handler MessageHandler) error
	Close()
}

// confluentKafkaConsumer is an implementation of MessageConsumer using confluent-kafka-go.
type confluentKafkaConsumer struct {
	consumer *kafka.Consumer
	cfg      config.KafkaConfig
	groupID  string
}

// NewConfluentKafkaConsumer 创建消费者；底层连接在 Consume 中按 groupID 建立。
func NewConfluentKafkaConsumer(cfg config.KafkaConfig) (MessageConsumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka consumer: no brokers configured")
	}
	return &confluentKafkaConsumer{cfg: cfg}, nil
}

// Consume 阻塞消费直到 ctx 取消或出现致命错误。
// handler 成功后才提交 offset。
func (c *confluentKafkaConsumer) Consume(ctx context.Context, topics []string, groupID string, handler MessageHandler) error {
	if len(topics) == 0 {
		return fmt.Errorf("kafka consumer: no topics specified")
	}
	c.groupID = groupID

	configMap := &kafka.ConfigMap{
		"bootstrap.servers":  strings.Join(c.cfg.Brokers, ","),
		"group.id":           c.groupID,
		"auto.offset.reset":  "latest", // 推送只关心连接之后的事件
		"enable.auto.commit": "false",
		"security.protocol":  c.cfg.Protocol,
	}
	if c.cfg.ClientID != "" {
		_ = configMap.SetKey("client.id", c.cfg.ClientID)
	}

	consumer, err := kafka.NewConsumer(configMap)
	if err != nil {
		return fmt.Errorf("failed to create Kafka consumer for group %s: %w", groupID, err)
	}
	c.consumer = consumer

	if err := c.consumer.SubscribeTopics(topics, nil); err != nil {
		_ = c.consumer.Close()
		c.consumer = nil
		return fmt.Errorf("failed to subscribe to topics %v for group %s: %w", topics, groupID, err)
	}

	log := logger.L().With(zap.String("group", groupID))
	log.Info("Kafka consumer started", zap.Strings("topics", topics))

	for {
		select {
		case <-ctx.Done():
			log.Info("Kafka consumer context canceled, shutting down")
			return nil
		default:
		}

		ev := c.consumer.Poll(1000)
		if ev == nil {
			continue
		}

		switch e := ev.(type) {
		case *kafka.Message:
			if err := handler(ctx, e); err != nil {
				log.Error("处理 Kafka 消息失败",
					zap.String("topic", *e.TopicPartition.Topic),
					zap.String("offset", e.TopicPartition.Offset.String()),
					zap.Error(err))
				continue
			}
			if _, err := c.consumer.CommitMessage(e); err != nil {
				log.Warn("提交 offset 失败", zap.Error(err))
			}
		case kafka.Error:
			log.Error("Kafka consumer error",
				zap.Error(e),
				zap.Bool("fatal", e.IsFatal()),
				zap.Bool("retriable", e.IsRetriable()))
			if e.IsFatal() {
				return e
			}
		case kafka.AssignedPartitions:
			log.Info("Partitions assigned", zap.Int("count", len(e.Partitions)))
			_ = c.consumer.Assign(e.Partitions)
		case kafka.RevokedPartitions:
			log.Info("Partitions revoked", zap.Int("count", len(e.Partitions)))
			_ = c.consumer.Unassign()
		}
	}
}

// Close closes the Kafka consumer.
func (c *confluentKafkaConsumer) Close() {
	if c.consumer == nil {
		return
	}
	if err := c.consumer.Close(); err != nil {
		logger.Error("Error closing Kafka consumer", zap.String("group", c.groupID), zap.Error(err))
	} else {
		logger.Info("Kafka consumer closed", zap.String("group", c.groupID))
	}
	c.consumer = nil
}
