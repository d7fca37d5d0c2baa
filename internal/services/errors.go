package services

import "errors"

// 错误类别。每个业务错误都恰好归属其中一个，handler 据此映射 HTTP 状态码。
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// kindError 携带面向用户的消息，并通过 Unwrap 归属到某个类别。
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

var (
	ErrInvalidFriendCode   = newError(ErrInvalidInput, "Invalid friend code.")
	ErrFriendCodeNotFound  = newError(ErrNotFound, "No user found with that friend code.")
	ErrCannotAddSelf       = newError(ErrInvalidInput, "You cannot add yourself.")
	ErrAlreadyFriends      = newError(ErrConflict, "You are already friends.")
	ErrFriendRequestExists = newError(ErrConflict, "A friend request already exists.")
	// ErrRequestBlocked 不透露是哪一方屏蔽了对方。
	ErrRequestBlocked     = newError(ErrConflict, "Cannot send request.")
	ErrInvalidUser        = newError(ErrInvalidInput, "Invalid user.")
	ErrRequestNotFound    = newError(ErrNotFound, "Request not found.")
	ErrFriendshipNotFound = newError(ErrNotFound, "Friendship not found.")
	ErrBlockNotFound      = newError(ErrNotFound, "Block not found.")
	ErrUserNotFound       = newError(ErrNotFound, "User not found.")

	ErrEmailTaken         = newError(ErrConflict, "Email already registered")
	ErrInvalidCredentials = newError(ErrInvalidInput, "Invalid email or password")
	ErrInvalidTheme       = newError(ErrInvalidInput, "Theme must be 'light' or 'dark'")
	ErrWorkoutNotFound    = newError(ErrNotFound, "Workout not found.")
	ErrInvalidRating      = newError(ErrInvalidInput, "Rating must be between 1 and 5")
)

// ValidationError 描述单个字段的校验失败，类别为 ErrInvalidInput。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalidField(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
