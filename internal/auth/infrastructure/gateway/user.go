package gateway

import (
	"context"
	"errors"

	authapp "github.com/prostore/storefront/internal/auth/application"
	userapp "github.com/prostore/storefront/internal/user/application"
	userdomain "github.com/prostore/storefront/internal/user/domain"
)

type userGateway struct {
	users *userapp.UserApplicationService
}

// NewUserGateway 创建用户上下文防腐层实例
func NewUserGateway(users *userapp.UserApplicationService) authapp.UserGateway {
	return &userGateway{users: users}
}

func (g *userGateway) GetByEmail(ctx context.Context, email string) (*authapp.UserAccount, error) {
	user, err := g.users.GetUserByEmail(ctx, email)
	if errors.Is(err, userdomain.ErrUserNotFound) {
		return nil, authapp.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return toAccount(user), nil
}

func (g *userGateway) Create(ctx context.Context, name, email, passwordHash string) (*authapp.UserAccount, error) {
	user, err := g.users.CreateUser(ctx, name, email, passwordHash)
	if err != nil {
		return nil, err
	}
	return toAccount(user), nil
}

func toAccount(user *userdomain.User) *authapp.UserAccount {
	return &authapp.UserAccount{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
	}
}
