package application

import (
	"context"

	authdomain "github.com/prostore/storefront/internal/auth/domain"
	"github.com/prostore/storefront/internal/order/domain"
)

// OrderQueryService 订单查询服务
type OrderQueryService struct {
	repo    domain.OrderRepository
	users   UserGateway
	catalog CatalogGateway
}

// NewOrderQueryService 创建订单查询服务实例
func NewOrderQueryService(repo domain.OrderRepository, users UserGateway, catalog CatalogGateway) *OrderQueryService {
	return &OrderQueryService{repo: repo, users: users, catalog: catalog}
}

// GetOrder 获取订单，仅订单归属人或管理员可见
func (s *OrderQueryService) GetOrder(ctx context.Context, orderID string, identity authdomain.Identity) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != identity.UserID && !identity.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}
	return order, nil
}

// ListUserOrders 分页获取用户订单
func (s *OrderQueryService) ListUserOrders(ctx context.Context, userID uint, page, pageSize int) ([]*domain.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
}

// ListOrders 分页获取全部订单，管理端使用
func (s *OrderQueryService) ListOrders(ctx context.Context, page, pageSize int) ([]*domain.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.List(ctx, (page-1)*pageSize, pageSize)
}

// Summary 管理端汇总：订单数、商品数、用户数、销售额与按月销售曲线
type Summary struct {
	OrdersCount   int64
	ProductsCount int64
	UsersCount    int64
	TotalSales    string
	SalesData     []domain.SalesPoint
	LatestOrders  []*domain.Order
}

// GetSummary 获取管理端汇总数据
func (s *OrderQueryService) GetSummary(ctx context.Context, latestLimit int) (*Summary, error) {
	ordersCount, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	productsCount, err := s.catalog.Count(ctx)
	if err != nil {
		return nil, err
	}
	usersCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalSales, err := s.repo.TotalSales(ctx)
	if err != nil {
		return nil, err
	}
	salesData, err := s.repo.SalesByMonth(ctx)
	if err != nil {
		return nil, err
	}
	latest, _, err := s.repo.List(ctx, 0, latestLimit)
	if err != nil {
		return nil, err
	}

	return &Summary{
		OrdersCount:   ordersCount,
		ProductsCount: productsCount,
		UsersCount:    usersCount,
		TotalSales:    totalSales.StringFixed(2),
		SalesData:     salesData,
		LatestOrders:  latest,
	}, nil
}
