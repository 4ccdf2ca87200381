package domain

import (
	"context"
	"time"
)

// EventPublisher 用户领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event interface{}) error
}

// UserRegisteredEvent 用户注册事件
type UserRegisteredEvent struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// UserUpdatedEvent 用户资料变更事件
type UserUpdatedEvent struct {
	UserID    uint      `json:"user_id"`
	Field     string    `json:"field"`
	Timestamp time.Time `json:"timestamp"`
}
