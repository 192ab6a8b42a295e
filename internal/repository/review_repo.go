package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// UpdateFields applies a partial update. The caller builds the field map so
// cleared optional columns (comment, price) are written explicitly.
func (r *ReviewRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.Review, error) {
	fields["updated_at"] = time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// SetStatus writes a moderation transition. reason must be nil unless the
// target status is unpublished; passing nil clears the stored reason.
func (r *ReviewRepository) SetStatus(ctx context.Context, id int64, status domain.ReviewStatus, reason *string) (*domain.Review, error) {
	return r.UpdateFields(ctx, id, map[string]any{
		"status":            status,
		"moderation_reason": reason,
	})
}

// Delete removes the review and its vote ledger in one transaction, so a
// failed review delete cannot leave the counters pointing at an emptied
// ledger.
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&domain.Vote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Review{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ReviewRepository) ListByStatus(ctx context.Context, status domain.ReviewStatus) ([]domain.Review, error) {
	var rows []domain.Review
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *ReviewRepository) ListPublished(ctx context.Context, categoryID *int64) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("reviews.status = ?", domain.ReviewStatusPublished)
	if categoryID != nil {
		q = q.Joins("JOIN products ON products.id = reviews.product_id").
			Where("products.category_id = ?", *categoryID)
	}
	var rows []domain.Review
	err := q.Order("reviews.created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *ReviewRepository) ListPremiumPublished(ctx context.Context) ([]domain.Review, error) {
	var rows []domain.Review
	err := r.db.WithContext(ctx).
		Where("is_premium = ? AND status = ?", true, domain.ReviewStatusPublished).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

type SearchOptions struct {
	Keyword    string
	CategoryID *int64
	Rating     *int
	Status     domain.ReviewStatus
	IsPremium  *bool
	Sort       string // date | rating | votes
	Order      string // asc | desc
	Page       int
	Limit      int
}

func (r *ReviewRepository) Search(ctx context.Context, opts SearchOptions) ([]domain.Review, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("reviews.status = ?", opts.Status)

	if kw := strings.TrimSpace(opts.Keyword); kw != "" {
		pattern := "%" + strings.ToLower(kw) + "%"
		q = q.Where("LOWER(reviews.title) LIKE ? OR LOWER(reviews.description) LIKE ?", pattern, pattern)
	}
	if opts.CategoryID != nil {
		q = q.Joins("JOIN products ON products.id = reviews.product_id").
			Where("products.category_id = ?", *opts.CategoryID)
	}
	if opts.Rating != nil {
		q = q.Where("reviews.rating = ?", *opts.Rating)
	}
	if opts.IsPremium != nil {
		q = q.Where("reviews.is_premium = ?", *opts.IsPremium)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if strings.EqualFold(opts.Order, "asc") {
		dir = "ASC"
	}
	var sortCol string
	switch opts.Sort {
	case "rating":
		sortCol = "reviews.rating"
	case "votes":
		// Net score; matches the denormalized counters the vote module maintains.
		sortCol = "(reviews.upvote_count - reviews.downvote_count)"
	default:
		sortCol = "reviews.created_at"
	}

	var rows []domain.Review
	err := q.Order(sortCol + " " + dir).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&rows).Error
	return rows, total, err
}

// ProductStats returns the live review count and mean rating for a product,
// regardless of moderation status.
func (r *ReviewRepository) ProductStats(ctx context.Context, productID int64) (int64, float64, error) {
	var row struct {
		Cnt int64
		Avg float64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("COUNT(*) AS cnt, COALESCE(AVG(rating), 0) AS avg").
		Where("product_id = ?", productID).
		Scan(&row).Error
	return row.Cnt, row.Avg, err
}
