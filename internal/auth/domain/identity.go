package domain

import "context"

// 角色常量
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity 请求身份：登录用户携带 UserID 与角色，匿名请求只有会话购物车标识
type Identity struct {
	UserID        uint   `json:"user_id"`
	Role          string `json:"role"`
	SessionCartID string `json:"session_cart_id"`
}

// IsAuthenticated 是否已登录
func (i Identity) IsAuthenticated() bool {
	return i.UserID != 0
}

// IsAdmin 是否管理员
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Session 服务端会话，按 JWT jti 存储于 Redis，用于登出吊销
type Session struct {
	TokenID       string `json:"token_id"`
	UserID        uint   `json:"user_id"`
	Role          string `json:"role"`
	SessionCartID string `json:"session_cart_id"`
}

// SessionRepository 会话仓储接口
type SessionRepository interface {
	// Save 保存会话，ttlSeconds 为过期秒数
	Save(ctx context.Context, session *Session, ttlSeconds int) error
	// Get 按 token ID 获取会话
	Get(ctx context.Context, tokenID string) (*Session, error)
	// Delete 吊销会话
	Delete(ctx context.Context, tokenID string) error
}
