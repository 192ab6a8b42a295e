package review

import "reviewhub/internal/domain"

type CreateReviewRequest struct {
	ProductID      int64    `json:"product_id" validate:"required,gt=0"`
	Title          string   `json:"title" validate:"required,min=3,max=200"`
	Description    string   `json:"description" validate:"required,min=10"`
	Rating         int      `json:"rating" validate:"required,gte=1,lte=5"`
	Comment        *string  `json:"comment,omitempty"`
	Images         []string `json:"images,omitempty"`
	PurchaseSource *string  `json:"purchase_source,omitempty"`
	IsPremium      bool     `json:"is_premium"`
	Price          *float64 `json:"price,omitempty"`
}

// UpdateReviewRequest carries only the fields the owner may change; nil means
// "leave as is". Moderation status is never touched by an ordinary edit.
type UpdateReviewRequest struct {
	Title          *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description    *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Rating         *int     `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Comment        *string  `json:"comment,omitempty"`
	Images         []string `json:"images,omitempty"`
	PurchaseSource *string  `json:"purchase_source,omitempty"`
	IsPremium      *bool    `json:"is_premium,omitempty"`
	Price          *float64 `json:"price,omitempty"`
}

type UnpublishRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type SearchRequest struct {
	Keyword    string
	CategoryID *int64
	Rating     *int
	IsPremium  *bool
	Sort       string
	Order      string
	Page       int
	Limit      int
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type SearchResult struct {
	Reviews    []domain.Review `json:"reviews"`
	Pagination Pagination      `json:"pagination"`
}

// ReviewView is a single review as served to a viewer. For premium content
// the embedded description may be redacted, with IsPreview flagging it.
type ReviewView struct {
	domain.Review
	IsPreview bool `json:"is_preview,omitempty"`
}
