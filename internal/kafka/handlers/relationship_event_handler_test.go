package kafkahandlers

import (
	"context"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	userIDs  []uint
	payloads [][]byte
}

func (r *recordingNotifier) Notify(userID uint, payload []byte) bool {
	r.userIDs = append(r.userIDs, userID)
	r.payloads = append(r.payloads, payload)
	return true
}

func TestRelationshipEventHandler(t *testing.T) {
	n := &recordingNotifier{}
	h := NewRelationshipEventHandler(n)
	ctx := context.Background()

	valid := []byte(`{"type":"friend_request.sent","actorId":1,"targetId":2}`)
	require.NoError(t, h.Handle(ctx, &kafka.Message{Value: valid}))
	require.NoError(t, h.Handle(ctx, &kafka.Message{Value: []byte("not json")}))
	require.NoError(t, h.Handle(ctx, &kafka.Message{Value: []byte(`{"type":"friend.removed","actorId":1}`)}))

	assert.Equal(t, []uint{2}, n.userIDs)
	assert.Equal(t, valid, n.payloads[0])
}
