package review

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"reviewhub/internal/domain"
	"reviewhub/internal/pkg/authz"
	"reviewhub/internal/repository"
)

const (
	previewLength       = 100
	previewMarker       = "..."
	minModerationReason = 3
	defaultSearchLimit  = 10
	maxSearchLimit      = 100
)

type Service struct {
	reviews  reviewStore
	payments PaymentGate
	products ProductGate
	ratings  ratingRefresher
}

func NewService(reviews reviewStore, payments PaymentGate, products ProductGate, ratings ratingRefresher) *Service {
	return &Service{reviews: reviews, payments: payments, products: products, ratings: ratings}
}

// Create stores a new review. Every new review starts in pending; only
// moderation moves it anywhere else.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if userID <= 0 || req.ProductID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, ErrValidation
	}
	if err := checkPremiumPrice(req.IsPremium, req.Price); err != nil {
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rv := &domain.Review{
		ProductID:      req.ProductID,
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Rating:         req.Rating,
		Comment:        req.Comment,
		Images:         req.Images,
		PurchaseSource: req.PurchaseSource,
		Status:         domain.ReviewStatusPending,
		IsPremium:      req.IsPremium,
		Price:          req.Price,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}

	s.refreshRating(ctx, rv.ProductID)
	return rv, nil
}

// Get serves a single review through the premium gate. An unauthenticated
// viewer is always treated as unpaid.
func (s *Service) Get(ctx context.Context, reviewID int64, viewer *authz.Actor) (*ReviewView, error) {
	if reviewID <= 0 {
		return nil, ErrValidation
	}
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	view := &ReviewView{Review: *rv}
	if !rv.IsPremium {
		return view, nil
	}

	hasAccess := false
	if viewer != nil {
		hasAccess, err = s.payments.HasPaid(ctx, viewer.UserID, reviewID)
		if err != nil {
			return nil, err
		}
	}
	if !hasAccess {
		view.Review.Description = redact(rv.Description)
		view.IsPreview = true
	}
	return view, nil
}

// Update applies an owner edit. Admins do not bypass ownership here, and the
// moderation status is deliberately left untouched so an edit can neither
// re-publish nor hide a review.
func (s *Service) Update(ctx context.Context, reviewID int64, actor authz.Actor, req UpdateReviewRequest) (*domain.Review, error) {
	if reviewID <= 0 {
		return nil, ErrValidation
	}
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !authz.Can(actor, rv.UserID, authz.ActionEdit) {
		return nil, ErrUnauthorized
	}

	fields := map[string]any{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrValidation
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrValidation
		}
		fields["description"] = *req.Description
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrValidation
		}
		fields["rating"] = *req.Rating
	}
	if req.Comment != nil {
		fields["comment"] = req.Comment
	}
	if req.Images != nil {
		fields["images"] = req.Images
	}
	if req.PurchaseSource != nil {
		fields["purchase_source"] = req.PurchaseSource
	}

	// Premium and price move together; validate the state the row will end
	// up in, not just the request.
	premium := rv.IsPremium
	price := rv.Price
	if req.IsPremium != nil {
		premium = *req.IsPremium
	}
	if req.Price != nil {
		price = req.Price
	}
	if err := checkPremiumPrice(premium, price); err != nil {
		return nil, err
	}
	if req.IsPremium != nil {
		fields["is_premium"] = premium
		if !premium {
			price = nil
		}
		fields["price"] = price
	} else if req.Price != nil {
		fields["price"] = price
	}

	if len(fields) == 0 {
		return rv, nil
	}

	updated, err := s.reviews.UpdateFields(ctx, reviewID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Rating != nil {
		s.refreshRating(ctx, rv.ProductID)
	}
	return updated, nil
}

// Delete removes the review outright. The store cascades the vote ledger in
// the same transaction; payments stay behind as immutable audit rows.
func (s *Service) Delete(ctx context.Context, reviewID int64, actor authz.Actor) error {
	if reviewID <= 0 {
		return ErrValidation
	}
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !authz.Can(actor, rv.UserID, authz.ActionDelete) {
		return ErrUnauthorized
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.refreshRating(ctx, rv.ProductID)
	return nil
}

// Approve publishes a review and clears any moderation reason.
func (s *Service) Approve(ctx context.Context, reviewID int64) (*domain.Review, error) {
	if reviewID <= 0 {
		return nil, ErrValidation
	}
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !rv.Status.CanTransitionTo(domain.ReviewStatusPublished) {
		return nil, ErrValidation
	}

	updated, err := s.reviews.SetStatus(ctx, reviewID, domain.ReviewStatusPublished, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Unpublish hides a review and records why.
func (s *Service) Unpublish(ctx context.Context, reviewID int64, reason string) (*domain.Review, error) {
	if reviewID <= 0 {
		return nil, ErrValidation
	}
	reason = strings.TrimSpace(reason)
	if len(reason) < minModerationReason {
		return nil, ErrValidation
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !rv.Status.CanTransitionTo(domain.ReviewStatusUnpublished) {
		return nil, ErrValidation
	}

	updated, err := s.reviews.SetStatus(ctx, reviewID, domain.ReviewStatusUnpublished, &reason)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *Service) ListByStatus(ctx context.Context, status domain.ReviewStatus) ([]domain.Review, error) {
	if !status.Valid() {
		return nil, ErrValidation
	}
	return s.reviews.ListByStatus(ctx, status)
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.ListByStatus(ctx, domain.ReviewStatusPending)
}

func (s *Service) ListPublished(ctx context.Context, categoryID *int64) ([]domain.Review, error) {
	return s.reviews.ListPublished(ctx, categoryID)
}

func (s *Service) ListPremium(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.ListPremiumPublished(ctx)
}

// Search returns published reviews only; moderation queues go through
// ListByStatus behind the admin surface.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultSearchLimit
	}
	if req.Limit > maxSearchLimit {
		req.Limit = maxSearchLimit
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, ErrValidation
	}
	switch req.Sort {
	case "", "date", "rating", "votes":
	default:
		return nil, ErrValidation
	}
	switch req.Order {
	case "", "asc", "desc":
	default:
		return nil, ErrValidation
	}

	rows, total, err := s.reviews.Search(ctx, repository.SearchOptions{
		Keyword:    req.Keyword,
		CategoryID: req.CategoryID,
		Rating:     req.Rating,
		Status:     domain.ReviewStatusPublished,
		IsPremium:  req.IsPremium,
		Sort:       req.Sort,
		Order:      req.Order,
		Page:       req.Page,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(req.Limit)
	if total%int64(req.Limit) != 0 {
		totalPages++
	}
	return &SearchResult{
		Reviews: rows,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// refreshRating keeps the product aggregate in step with review mutations.
// Failures are logged, not propagated: the review write already happened.
func (s *Service) refreshRating(ctx context.Context, productID int64) {
	if _, err := s.ratings.Recalculate(ctx, productID); err != nil {
		log.Printf("level=error msg=failed to refresh product rating product_id=%d err=%v", productID, err)
	}
}

func checkPremiumPrice(isPremium bool, price *float64) error {
	if isPremium {
		if price == nil || *price <= 0 {
			return ErrValidation
		}
		return nil
	}
	if price != nil {
		return ErrValidation
	}
	return nil
}

func redact(description string) string {
	runes := []rune(description)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes) + previewMarker
}
