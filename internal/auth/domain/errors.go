package domain

import "errors"

var (
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken 邮箱已注册
	ErrEmailTaken = errors.New("email already registered")
	// ErrSessionNotFound 会话不存在或已吊销
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidToken 令牌无效或已过期
	ErrInvalidToken = errors.New("invalid or expired token")
)
