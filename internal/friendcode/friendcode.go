// Package friendcode 生成和规范化用户好友码。
package friendcode

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// Alphabet 去掉了容易混淆的 0/O、1/I/L。
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// DefaultLength 是好友码的默认长度。
const DefaultLength = 8

var ErrInvalidLength = errors.New("friend code length must be positive")

// Generate 使用 crypto/rand 生成长度为 length 的好友码。
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}
	max := big.NewInt(int64(len(Alphabet)))
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(Alphabet[n.Int64()])
	}
	return sb.String(), nil
}

// Normalize 去掉首尾空白和一个可选的前导 '#'，并转为大写。
// 结果为空时调用方应视为无效输入。
func Normalize(raw string) string {
	code := strings.TrimSpace(raw)
	code = strings.TrimPrefix(code, "#")
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid 报告 code 是否只包含字母表中的字符。
func Valid(code string) bool {
	if code == "" {
		return false
	}
	for _, c := range code {
		if !strings.ContainsRune(Alphabet, c) {
			return false
		}
	}
	return true
}
