package gateway

import (
	"context"

	"github.com/prostore/storefront/internal/order/application"
	orderdomain "github.com/prostore/storefront/internal/order/domain"
	userapp "github.com/prostore/storefront/internal/user/application"
)

type userGateway struct {
	users *userapp.UserApplicationService
}

// NewUserGateway 创建用户防腐层实例
func NewUserGateway(users *userapp.UserApplicationService) application.UserGateway {
	return &userGateway{users: users}
}

func (g *userGateway) Get(ctx context.Context, userID uint) (*application.CustomerInfo, error) {
	user, err := g.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := &application.CustomerInfo{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		PaymentMethod: user.PaymentMethod,
	}
	if user.Address != nil {
		info.Address = &orderdomain.Address{
			FullName:      user.Address.FullName,
			StreetAddress: user.Address.StreetAddress,
			City:          user.Address.City,
			PostalCode:    user.Address.PostalCode,
			Country:       user.Address.Country,
			Lat:           user.Address.Lat,
			Lng:           user.Address.Lng,
		}
	}
	return info, nil
}

func (g *userGateway) Count(ctx context.Context) (int64, error) {
	return g.users.CountUsers(ctx)
}
