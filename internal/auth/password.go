package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	// MaxPasswordBytes 是 bcrypt 能处理的最大输入长度。
	MaxPasswordBytes  = 72
)

var (
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
	ErrPasswordTooLong  = errors.New("Password must be at most 72 bytes")
)

// ValidatePassword 检查注册密码的长度限制。
func ValidatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

// HashPassword 校验长度后使用 bcrypt 生成哈希。
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash 验证密码是否与哈希匹配。
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
