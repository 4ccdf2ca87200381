package gateway

import (
	"context"

	"github.com/prostore/storefront/internal/review/application"
	userapp "github.com/prostore/storefront/internal/user/application"
)

type userGateway struct {
	users *userapp.UserApplicationService
}

// NewUserGateway 创建用户防腐层实例
func NewUserGateway(users *userapp.UserApplicationService) application.UserNameProvider {
	return &userGateway{users: users}
}

func (g *userGateway) GetName(ctx context.Context, userID uint) (string, error) {
	user, err := g.users.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Name, nil
}
