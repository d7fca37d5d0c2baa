package storage

import (
	"strconv"
)

// ParseID 将路径参数中的字符串ID转换为 uint，0 视为无效。
func ParseID(s string) (uint, error) {
	val, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if val == 0 {
		return 0, strconv.ErrRange
	}
	return uint(val), nil
}
