package mysql

import (
	"context"
	"errors"

	"github.com/prostore/storefront/internal/user/domain"
	pkgdb "github.com/prostore/storefront/pkg/db"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	return pkgdb.FromContext(ctx, r.db).Save(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := pkgdb.FromContext(ctx, r.db).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := pkgdb.FromContext(ctx, r.db).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, int64, error) {
	db := pkgdb.FromContext(ctx, r.db)

	var total int64
	if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*domain.User
	err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := pkgdb.FromContext(ctx, r.db).Delete(&domain.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := pkgdb.FromContext(ctx, r.db).Model(&domain.User{}).Count(&total).Error
	return total, err
}
