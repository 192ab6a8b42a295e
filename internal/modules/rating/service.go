package rating

import (
	"context"
	"errors"
	"log"
	"math"

	"gorm.io/gorm"

	"reviewhub/internal/domain"
)

var (
	ErrValidation = errors.New("validation_error")
	ErrNotFound   = errors.New("not_found")
)

type reviewStats interface {
	ProductStats(ctx context.Context, productID int64) (int64, float64, error)
}

type productStore interface {
	ListIDs(ctx context.Context) ([]int64, error)
	UpdateRating(ctx context.Context, id int64, numReviews int, ratings float64) error
}

type Service struct {
	reviews  reviewStats
	products productStore
}

func NewService(reviews reviewStats, products productStore) *Service {
	return &Service{reviews: reviews, products: products}
}

// Recalculate recomputes a product's aggregate from its reviews and stores
// it. Reviews of every moderation status count, so a pending or unpublished
// review does not move the public rating; zero reviews writes {0, 0} instead
// of leaving stale values. Re-running with unchanged reviews is a no-op.
func (s *Service) Recalculate(ctx context.Context, productID int64) (domain.ProductRating, error) {
	if productID <= 0 {
		return domain.ProductRating{}, ErrValidation
	}

	count, avg, err := s.reviews.ProductStats(ctx, productID)
	if err != nil {
		return domain.ProductRating{}, err
	}

	result := domain.ProductRating{ProductID: productID}
	if count > 0 {
		result.NumReviews = int(count)
		result.Ratings = roundToOneDecimal(avg)
	}

	if err := s.products.UpdateRating(ctx, productID, result.NumReviews, result.Ratings); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductRating{}, ErrNotFound
		}
		return domain.ProductRating{}, err
	}
	return result, nil
}

// RecalculateAll walks every product sequentially. One product's failure is
// logged and skipped; each per-product update is independently idempotent and
// can simply be re-run.
func (s *Service) RecalculateAll(ctx context.Context) ([]domain.ProductRating, error) {
	ids, err := s.products.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ProductRating, 0, len(ids))
	for _, id := range ids {
		result, err := s.Recalculate(ctx, id)
		if err != nil {
			log.Printf("level=error msg=rating recalculation failed product_id=%d err=%v", id, err)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// roundToOneDecimal rounds half-up on the scaled integer, so 3.25 -> 3.3.
func roundToOneDecimal(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
