package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// BaseModel defines the common fields for soft-deletable models.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IDString returns the ID as a string.
func (b *BaseModel) IDString() string {
	return strconv.FormatUint(uint64(b.ID), 10)
}
