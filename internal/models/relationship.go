package models

import "time"

// RelationshipStatus 关系状态。
type RelationshipStatus string

const (
	RelationshipPending  RelationshipStatus = "pending"
	RelationshipAccepted RelationshipStatus = "accepted"
	RelationshipBlocked  RelationshipStatus = "blocked"
)

// Relationship 是两个用户之间唯一的一行关系记录。
// UserLow < UserHigh，由 (user_low, user_high) 唯一索引保证每对用户最多一行。
// 该表不做软删除：拒绝和删除好友会真正删除该行。
type Relationship struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	UserLow     uint               `gorm:"not null;uniqueIndex:idx_relationship_pair;check:chk_relationship_order,user_low < user_high" json:"user_low"`
	UserHigh    uint               `gorm:"not null;uniqueIndex:idx_relationship_pair;index" json:"user_high"`
	InitiatedBy uint               `gorm:"not null" json:"initiated_by"`
	Status      RelationshipStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TableName 指定表名。
func (Relationship) TableName() string {
	return "relationships"
}

// Pair 返回该行对应的规范化用户组合。
func (r *Relationship) Pair() Pair {
	return Pair{low: r.UserLow, high: r.UserHigh}
}

// OtherUser 返回关系中除 userID 以外的一方。
func (r *Relationship) OtherUser(userID uint) uint {
	if r.UserLow == userID {
		return r.UserHigh
	}
	return r.UserLow
}

// FriendRequestSummary 是待处理好友请求的对外表示。
type FriendRequestSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	FriendCode string `json:"friend_code"`
}

// FriendSummary 是好友列表中的一项。
type FriendSummary struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	FriendCode      string  `json:"friend_code"`
	ProfileImageURL *string `json:"profile_image_url"`
}
