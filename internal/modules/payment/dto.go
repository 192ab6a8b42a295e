package payment

import "reviewhub/internal/repository"

type InitiateRequest struct {
	ReviewID int64 `json:"review_id" validate:"required,gt=0"`
}

type InitiateResponse struct {
	TransactionID string `json:"transaction_id"`
	PaymentURL    string `json:"payment_url"`
}

type Analytics struct {
	TotalEarnings  float64                     `json:"total_earnings"`
	PopularReviews []repository.ReviewEarnings `json:"popular_reviews"`
}
