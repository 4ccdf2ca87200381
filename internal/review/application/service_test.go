package application

import (
	"context"
	"testing"

	"github.com/prostore/storefront/internal/review/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type mockReviewRepository struct {
	reviews []*domain.Review
}

func (m *mockReviewRepository) Save(_ context.Context, review *domain.Review) error {
	for i, r := range m.reviews {
		if r.UserID == review.UserID && r.ProductID == review.ProductID {
			m.reviews[i] = review
			return nil
		}
	}
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockReviewRepository) GetByUserAndProduct(_ context.Context, userID, productID uint) (*domain.Review, error) {
	for _, r := range m.reviews {
		if r.UserID == userID && r.ProductID == productID {
			return r, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (m *mockReviewRepository) ListByProduct(_ context.Context, productID uint, _, _ int) ([]*domain.Review, int64, error) {
	var out []*domain.Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockReviewRepository) Summarize(_ context.Context, productID uint) (*domain.RatingSummary, error) {
	sum, count := 0, 0
	for _, r := range m.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return &domain.RatingSummary{Average: decimal.Zero}, nil
	}
	avg := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(count)))
	return &domain.RatingSummary{Average: avg, Count: count}, nil
}

type mockProductGateway struct {
	slug        string
	rating      decimal.Decimal
	numReviews  int
	invalidated string
}

func (m *mockProductGateway) Exists(_ context.Context, _ uint) (string, error) {
	if m.slug == "" {
		return "", domain.ErrProductNotFound
	}
	return m.slug, nil
}

func (m *mockProductGateway) UpdateRating(_ context.Context, _ uint, rating decimal.Decimal, numReviews int) error {
	m.rating = rating
	m.numReviews = numReviews
	return nil
}

func (m *mockProductGateway) InvalidateCache(_ context.Context, slug string) error {
	m.invalidated = slug
	return nil
}

type mockPurchaseChecker struct{ purchased bool }

func (m *mockPurchaseChecker) HasUserPurchased(_ context.Context, _, _ uint) (bool, error) {
	return m.purchased, nil
}

type mockUserNames struct{}

func (mockUserNames) GetName(_ context.Context, _ uint) (string, error) { return "Jane", nil }

func newService(repo *mockReviewRepository, products *mockProductGateway, purchased bool) *ReviewApplicationService {
	return NewReviewApplicationService(repo, products, &mockPurchaseChecker{purchased: purchased}, mockUserNames{}, passthroughTx{})
}

func TestSubmitReview_CreatesAndAggregates(t *testing.T) {
	repo := &mockReviewRepository{}
	products := &mockProductGateway{slug: "polo-shirt"}
	svc := newService(repo, products, true)

	err := svc.SubmitReview(context.Background(), SubmitReviewCommand{
		ProductID:   1,
		UserID:      7,
		Title:       "Great shirt",
		Description: "Fits well and looks good",
		Rating:      5,
	})

	require.NoError(t, err)
	require.Len(t, repo.reviews, 1)
	assert.Equal(t, "Jane", repo.reviews[0].UserName)
	assert.True(t, repo.reviews[0].IsVerifiedPurchase)
	assert.Equal(t, "5.00", products.rating.StringFixed(2))
	assert.Equal(t, 1, products.numReviews)
	assert.Equal(t, "polo-shirt", products.invalidated)
}

func TestSubmitReview_UpdatesExistingReview(t *testing.T) {
	repo := &mockReviewRepository{}
	products := &mockProductGateway{slug: "polo-shirt"}
	svc := newService(repo, products, false)

	require.NoError(t, svc.SubmitReview(context.Background(), SubmitReviewCommand{
		ProductID: 1, UserID: 7, Title: "OK", Description: "Average quality", Rating: 3,
	}))
	require.NoError(t, svc.SubmitReview(context.Background(), SubmitReviewCommand{
		ProductID: 1, UserID: 7, Title: "Better than expected", Description: "Grew on me", Rating: 4,
	}))

	require.Len(t, repo.reviews, 1)
	assert.Equal(t, 4, repo.reviews[0].Rating)
	assert.False(t, repo.reviews[0].IsVerifiedPurchase)
	assert.Equal(t, "4.00", products.rating.StringFixed(2))
	assert.Equal(t, 1, products.numReviews)
}

func TestSubmitReview_AveragesAcrossUsers(t *testing.T) {
	repo := &mockReviewRepository{}
	products := &mockProductGateway{slug: "polo-shirt"}
	svc := newService(repo, products, true)

	require.NoError(t, svc.SubmitReview(context.Background(), SubmitReviewCommand{
		ProductID: 1, UserID: 7, Title: "Great", Description: "Love it", Rating: 5,
	}))
	require.NoError(t, svc.SubmitReview(context.Background(), SubmitReviewCommand{
		ProductID: 1, UserID: 8, Title: "Meh", Description: "Not for me", Rating: 2,
	}))

	assert.Equal(t, "3.50", products.rating.StringFixed(2))
	assert.Equal(t, 2, products.numReviews)
}

func TestSubmitReview_InvalidRating(t *testing.T) {
	svc := newService(&mockReviewRepository{}, &mockProductGateway{slug: "polo-shirt"}, true)

	err := svc.SubmitReview(context.Background(), SubmitReviewCommand{
		ProductID: 1, UserID: 7, Title: "Bad", Description: "Zero stars", Rating: 0,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRating)
}

func TestSubmitReview_ProductMissing(t *testing.T) {
	svc := newService(&mockReviewRepository{}, &mockProductGateway{}, true)

	err := svc.SubmitReview(context.Background(), SubmitReviewCommand{
		ProductID: 99, UserID: 7, Title: "Ghost", Description: "No such product", Rating: 4,
	})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
