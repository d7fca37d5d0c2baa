package models

import "time"

// RelationshipEventType 关系事件类型。
type RelationshipEventType string

const (
	EventFriendRequestSent     RelationshipEventType = "friend_request.sent"
	EventFriendRequestAccepted RelationshipEventType = "friend_request.accepted"
	EventFriendRequestDeclined RelationshipEventType = "friend_request.declined"
	EventFriendRemoved         RelationshipEventType = "friend.removed"
	EventUserBlocked           RelationshipEventType = "user.blocked"
	EventUserUnblocked         RelationshipEventType = "user.unblocked"
)

// RelationshipEvent 是发布到 Kafka 的关系变更事件。
// ActorID 执行了操作，TargetID 是需要被通知的一方。
type RelationshipEvent struct {
	Type      RelationshipEventType `json:"type"`
	ActorID   uint                  `json:"actorId"`
	TargetID  uint                  `json:"targetId"`
	Timestamp time.Time             `json:"timestamp"`
}
