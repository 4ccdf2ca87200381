package application

import (
	"context"
	"errors"

	"github.com/prostore/storefront/internal/review/domain"
	"github.com/prostore/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// TxRunner 事务执行接口，由 pkg/db 提供实现
type TxRunner interface {
	WithTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// ProductGateway 商品目录防腐层接口
type ProductGateway interface {
	// Exists 商品是否存在
	Exists(ctx context.Context, productID uint) (slug string, err error)
	// UpdateRating 回写评分汇总
	UpdateRating(ctx context.Context, productID uint, rating decimal.Decimal, numReviews int) error
	// InvalidateCache 失效商品详情缓存
	InvalidateCache(ctx context.Context, slug string) error
}

// PurchaseChecker 校验用户是否购买过商品的接口
type PurchaseChecker interface {
	HasUserPurchased(ctx context.Context, userID, productID uint) (bool, error)
}

// UserNameProvider 获取用户展示名的接口
type UserNameProvider interface {
	GetName(ctx context.Context, userID uint) (string, error)
}

// SubmitReviewCommand 提交评价命令
type SubmitReviewCommand struct {
	ProductID   uint
	UserID      uint
	Title       string
	Description string
	Rating      int
}

// ReviewApplicationService 评价应用服务
type ReviewApplicationService struct {
	repo      domain.ReviewRepository
	products  ProductGateway
	purchases PurchaseChecker
	users     UserNameProvider
	db        TxRunner
}

// NewReviewApplicationService 创建评价应用服务实例
func NewReviewApplicationService(
	repo domain.ReviewRepository,
	products ProductGateway,
	purchases PurchaseChecker,
	users UserNameProvider,
	db TxRunner,
) *ReviewApplicationService {
	return &ReviewApplicationService{
		repo:      repo,
		products:  products,
		purchases: purchases,
		users:     users,
		db:        db,
	}
}

// SubmitReview 提交或更新评价，事务内回写商品评分汇总
func (s *ReviewApplicationService) SubmitReview(ctx context.Context, cmd SubmitReviewCommand) error {
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return domain.ErrInvalidRating
	}

	slug, err := s.products.Exists(ctx, cmd.ProductID)
	if err != nil {
		return err
	}

	verified, err := s.purchases.HasUserPurchased(ctx, cmd.UserID, cmd.ProductID)
	if err != nil {
		return err
	}

	userName, err := s.users.GetName(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	review, err := s.repo.GetByUserAndProduct(ctx, cmd.UserID, cmd.ProductID)
	if errors.Is(err, domain.ErrReviewNotFound) {
		review = &domain.Review{ProductID: cmd.ProductID, UserID: cmd.UserID}
	} else if err != nil {
		return err
	}

	review.UserName = userName
	review.Title = cmd.Title
	review.Description = cmd.Description
	review.Rating = cmd.Rating
	review.IsVerifiedPurchase = verified

	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, review); err != nil {
			return err
		}
		summary, err := s.repo.Summarize(txCtx, cmd.ProductID)
		if err != nil {
			return err
		}
		return s.products.UpdateRating(txCtx, cmd.ProductID, summary.Average.Round(2), summary.Count)
	})
	if err != nil {
		return err
	}

	if err := s.products.InvalidateCache(ctx, slug); err != nil {
		logger.Warn(ctx, "Failed to invalidate product cache", "slug", slug, "error", err)
	}
	return nil
}

// ListReviews 分页获取商品评价
func (s *ReviewApplicationService) ListReviews(ctx context.Context, productID uint, page, pageSize int) ([]*domain.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.ListByProduct(ctx, productID, (page-1)*pageSize, pageSize)
}

// GetUserReview 获取用户对商品的评价
func (s *ReviewApplicationService) GetUserReview(ctx context.Context, userID, productID uint) (*domain.Review, error) {
	return s.repo.GetByUserAndProduct(ctx, userID, productID)
}
