package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reviewhub/internal/domain"
)

// PaymentResolution describes the effect of a callback on the stored payment.
type PaymentResolution int

const (
	PaymentResolved PaymentResolution = iota
	PaymentAlreadyResolved
	PaymentOutcomeConflict
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ResolveTerminal moves a pending payment to a terminal outcome exactly once.
// Re-delivering the same outcome is a no-op; a different outcome leaves the
// stored row untouched and is reported as a conflict for the caller to log.
func (r *PaymentRepository) ResolveTerminal(ctx context.Context, transactionID string, outcome domain.PaymentStatus, payload string) (PaymentResolution, *domain.Payment, error) {
	var (
		resolution PaymentResolution
		stored     domain.Payment
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ?", transactionID).
			First(&stored).Error; err != nil {
			return err
		}

		if stored.Status.Terminal() {
			if stored.Status == outcome {
				resolution = PaymentAlreadyResolved
			} else {
				resolution = PaymentOutcomeConflict
			}
			return nil
		}

		res := tx.Model(&domain.Payment{}).
			Where("transaction_id = ?", transactionID).
			Updates(map[string]any{
				"status":          outcome,
				"gateway_payload": payload,
			})
		if res.Error != nil {
			return res.Error
		}
		stored.Status = outcome
		stored.GatewayPayload = payload
		resolution = PaymentResolved
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return resolution, &stored, nil
}

// HasPaid is the single predicate the premium gate depends on.
func (r *PaymentRepository) HasPaid(ctx context.Context, userID, reviewID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("user_id = ? AND review_id = ? AND status = ?", userID, reviewID, domain.PaymentStatusPaid).
		Count(&count).Error
	return count > 0, err
}

// PaymentWithReview is a history row with the purchased review's summary.
type PaymentWithReview struct {
	domain.Payment
	ReviewTitle   string   `json:"review_title"`
	ReviewPrice   *float64 `json:"review_price,omitempty"`
	ReviewPremium bool     `json:"review_premium"`
}

func (r *PaymentRepository) HistoryByUser(ctx context.Context, userID int64) ([]PaymentWithReview, error) {
	var rows []PaymentWithReview
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Select("payments.*, reviews.title AS review_title, reviews.price AS review_price, reviews.is_premium AS review_premium").
		Joins("LEFT JOIN reviews ON reviews.id = payments.review_id").
		Where("payments.user_id = ?", userID).
		Order("payments.created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *PaymentRepository) TotalEarnings(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", domain.PaymentStatusPaid).
		Scan(&total).Error
	return total, err
}

// ReviewEarnings is one row of the top-purchased-reviews analytics.
type ReviewEarnings struct {
	ReviewID    int64   `json:"review_id"`
	ReviewTitle string  `json:"review_title"`
	Purchases   int64   `json:"purchases"`
	TotalEarned float64 `json:"total_earned"`
}

func (r *PaymentRepository) TopReviews(ctx context.Context, limit int) ([]ReviewEarnings, error) {
	var rows []ReviewEarnings
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Select("payments.review_id AS review_id, reviews.title AS review_title, COUNT(*) AS purchases, SUM(payments.amount) AS total_earned").
		Joins("LEFT JOIN reviews ON reviews.id = payments.review_id").
		Where("payments.status = ?", domain.PaymentStatusPaid).
		Group("payments.review_id, reviews.title").
		Order("purchases DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
