package models

import (
	"errors"
	"fmt"
)

// ErrInvalidPair 表示两个用户ID相同或为零，无法构成关系。
var ErrInvalidPair = errors.New("invalid user pair")

// Pair 是两个不同用户的无序组合，内部始终保持 low < high。
// 只能通过 NewPair 构造，零值不是合法的 Pair。
type Pair struct {
	low  uint
	high uint
}

// NewPair 规范化 (a, b) 的顺序。
func NewPair(a, b uint) (Pair, error) {
	if a == 0 || b == 0 || a == b {
		return Pair{}, ErrInvalidPair
	}
	if a > b {
		a, b = b, a
	}
	return Pair{low: a, high: b}, nil
}

func (p Pair) Low() uint  { return p.low }
func (p Pair) High() uint { return p.high }

// IsZero 报告 p 是否为未构造的零值。
func (p Pair) IsZero() bool { return p.low == 0 }

// Contains 报告 userID 是否是该组合的一方。
func (p Pair) Contains(userID uint) bool {
	return userID == p.low || userID == p.high
}

// String 用作 Kafka 消息键和缓存键。
func (p Pair) String() string {
	return fmt.Sprintf("%d-%d", p.low, p.high)
}
