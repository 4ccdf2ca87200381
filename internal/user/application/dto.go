package application

import (
	"time"

	"github.com/prostore/storefront/internal/user/domain"
)

// UserDTO 用户视图对象
type UserDTO struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          string          `json:"role"`
	Address       *domain.Address `json:"address,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewUserDTO 将用户实体转换为视图对象
func NewUserDTO(u *domain.User) *UserDTO {
	return &UserDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		Address:       u.Address,
		PaymentMethod: u.PaymentMethod,
		CreatedAt:     u.CreatedAt,
	}
}

// NewUserDTOs 批量转换
func NewUserDTOs(users []*domain.User) []*UserDTO {
	dtos := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, NewUserDTO(u))
	}
	return dtos
}
