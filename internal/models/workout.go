package models

import (
	"time"

	"gorm.io/datatypes"
)

// Workout 保存一次生成的训练计划，计划内容以 JSON 原样存储。
type Workout struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Plan      datatypes.JSON `gorm:"not null" json:"plan"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName 指定表名。
func (Workout) TableName() string {
	return "workouts"
}

// Feedback 是用户对某次训练计划的评价。
type Feedback struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	WorkoutID  uint      `gorm:"not null;index" json:"workout_id"`
	Workout    Workout   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Rating     int       `gorm:"not null;check:chk_feedback_rating,rating BETWEEN 1 AND 5" json:"rating"`
	Difficulty string    `gorm:"type:varchar(20)" json:"difficulty,omitempty"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName 指定表名。
func (Feedback) TableName() string {
	return "feedback"
}
