package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironmind/internal/models"
)

type capturedMessage struct {
	topic   string
	key     []byte
	payload []byte
}

type fakeProducer struct {
	sent []capturedMessage
}

func (f *fakeProducer) SendMessage(_ context.Context, topic string, key, payload []byte) error {
	f.sent = append(f.sent, capturedMessage{topic: topic, key: key, payload: payload})
	return nil
}

func (f *fakeProducer) Close() {}

func TestRelationshipEventPublisher(t *testing.T) {
	prod := &fakeProducer{}
	pub := NewRelationshipEventPublisher(prod, "rel-events")

	err := pub.Publish(context.Background(), models.RelationshipEvent{
		Type:     models.EventFriendRequestAccepted,
		ActorID:  3,
		TargetID: 12,
	})
	require.NoError(t, err)
	require.Len(t, prod.sent, 1)

	msg := prod.sent[0]
	assert.Equal(t, "rel-events", msg.topic)
	assert.Equal(t, "12", string(msg.key))

	var decoded models.RelationshipEvent
	require.NoError(t, json.Unmarshal(msg.payload, &decoded))
	assert.Equal(t, models.EventFriendRequestAccepted, decoded.Type)
	assert.Equal(t, uint(3), decoded.ActorID)
}
