package application

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/prostore/storefront/internal/user/domain"
	"github.com/prostore/storefront/pkg/logger"
)

// UserApplicationService 用户应用服务
type UserApplicationService struct {
	repo domain.UserRepository
	// 允许的支付方式列表，来自配置
	paymentMethods []string
	publisher      domain.EventPublisher
}

// NewUserApplicationService 创建用户应用服务实例
func NewUserApplicationService(repo domain.UserRepository, paymentMethods []string, publisher domain.EventPublisher) *UserApplicationService {
	return &UserApplicationService{repo: repo, paymentMethods: paymentMethods, publisher: publisher}
}

// GetUser 按 ID 获取用户
func (s *UserApplicationService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetUserByEmail 按邮箱获取用户
func (s *UserApplicationService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// CreateUser 创建用户账号
func (s *UserApplicationService) CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := domain.UserRegisteredEvent{
			UserID:    user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, "user.registered", user.Email, event)
	}
	return user, nil
}

// UpdateProfile 更新用户昵称
func (s *UserApplicationService) UpdateProfile(ctx context.Context, id uint, name string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Name = name
	if err := s.repo.Save(ctx, user); err != nil {
		return err
	}
	s.publishUpdated(ctx, id, "name")
	return nil
}

// UpdateAddress 更新收货地址
func (s *UserApplicationService) UpdateAddress(ctx context.Context, id uint, address domain.Address) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Address = &address
	if err := s.repo.Save(ctx, user); err != nil {
		return err
	}
	s.publishUpdated(ctx, id, "address")
	return nil
}

// UpdatePaymentMethod 更新支付方式，仅允许配置中的方式
func (s *UserApplicationService) UpdatePaymentMethod(ctx context.Context, id uint, method string) error {
	if !slices.Contains(s.paymentMethods, method) {
		return domain.ErrInvalidPaymentMethod
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.PaymentMethod = method
	if err := s.repo.Save(ctx, user); err != nil {
		return err
	}
	s.publishUpdated(ctx, id, "payment_method")
	return nil
}

// ListUsers 分页获取用户列表，管理端使用
func (s *UserApplicationService) ListUsers(ctx context.Context, page, pageSize int) ([]*domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.List(ctx, (page-1)*pageSize, pageSize)
}

// UpdateUser 管理员更新用户昵称与角色
func (s *UserApplicationService) UpdateUser(ctx context.Context, id uint, name, role string) error {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return domain.ErrInvalidRole
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Name = name
	user.Role = role
	if err := s.repo.Save(ctx, user); err != nil {
		return err
	}
	logger.Info(ctx, "User updated by admin", "user_id", id, "role", role)
	s.publishUpdated(ctx, id, "role")
	return nil
}

// DeleteUser 管理员删除用户
func (s *UserApplicationService) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *UserApplicationService) publishUpdated(ctx context.Context, id uint, field string) {
	if s.publisher == nil {
		return
	}
	event := domain.UserUpdatedEvent{UserID: id, Field: field, Timestamp: time.Now()}
	_ = s.publisher.Publish(ctx, "user.updated", strconv.FormatUint(uint64(id), 10), event)
}

// CountUsers 用户总数
func (s *UserApplicationService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
