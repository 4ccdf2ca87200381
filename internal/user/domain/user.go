package domain

import (
	"context"

	"gorm.io/gorm"
)

// 角色常量
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Address 收货地址
type Address struct {
	FullName      string  `json:"full_name"`
	StreetAddress string  `json:"street_address"`
	City          string  `json:"city"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
	Lat           float64 `json:"lat,omitempty"`
	Lng           float64 `json:"lng,omitempty"`
}

// User 用户聚合根
type User struct {
	gorm.Model
	Name         string `gorm:"type:varchar(255)" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
	Role         string `gorm:"type:varchar(16);default:user" json:"role"`
	// 收货地址，未填写为 NULL
	Address *Address `gorm:"serializer:json;type:json" json:"address"`
	// 结算时选择的支付方式
	PaymentMethod string `gorm:"type:varchar(32)" json:"payment_method"`
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// Save 保存用户
	Save(ctx context.Context, user *User) error
	// GetByID 按 ID 获取用户
	GetByID(ctx context.Context, id uint) (*User, error)
	// GetByEmail 按邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)
	// List 分页获取用户列表
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
	// Delete 删除用户
	Delete(ctx context.Context, id uint) error
	// Count 用户总数
	Count(ctx context.Context) (int64, error)
}
