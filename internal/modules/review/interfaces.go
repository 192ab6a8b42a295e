package review

import (
	"context"

	"reviewhub/internal/domain"
	"reviewhub/internal/repository"
)

type reviewStore interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.Review, error)
	SetStatus(ctx context.Context, id int64, status domain.ReviewStatus, reason *string) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
	ListByStatus(ctx context.Context, status domain.ReviewStatus) ([]domain.Review, error)
	ListPublished(ctx context.Context, categoryID *int64) ([]domain.Review, error)
	ListPremiumPublished(ctx context.Context) ([]domain.Review, error)
	Search(ctx context.Context, opts repository.SearchOptions) ([]domain.Review, int64, error)
}

// PaymentGate answers the one question the premium gate asks: has this viewer
// paid for this review.
type PaymentGate interface {
	HasPaid(ctx context.Context, userID, reviewID int64) (bool, error)
}

type ProductGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// ratingRefresher re-aggregates a product's rating after review mutations.
type ratingRefresher interface {
	Recalculate(ctx context.Context, productID int64) (domain.ProductRating, error)
}
