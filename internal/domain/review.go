package domain

import "time"

type ReviewStatus string

const (
	ReviewStatusPending     ReviewStatus = "pending"
	ReviewStatusPublished   ReviewStatus = "published"
	ReviewStatusUnpublished ReviewStatus = "unpublished"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusPublished, ReviewStatusUnpublished:
		return true
	}
	return false
}

// CanTransitionTo models the moderation state machine: pending exists only at
// creation and is never a transition target; published and unpublished are
// reachable from any state via moderation.
func (s ReviewStatus) CanTransitionTo(next ReviewStatus) bool {
	if !s.Valid() {
		return false
	}
	return next == ReviewStatusPublished || next == ReviewStatusUnpublished
}

type Review struct {
	ID               int64        `gorm:"primaryKey" json:"id"`
	ProductID        int64        `gorm:"index;not null" json:"product_id"`
	UserID           int64        `gorm:"index;not null" json:"user_id"`
	Title            string       `gorm:"type:varchar(200);not null" json:"title"`
	Description      string       `gorm:"type:text;not null" json:"description"`
	Rating           int          `gorm:"not null" json:"rating"`
	Comment          *string      `gorm:"type:text" json:"comment,omitempty"`
	Images           []string     `gorm:"type:text;serializer:json" json:"images,omitempty"`
	PurchaseSource   *string      `gorm:"type:varchar(120)" json:"purchase_source,omitempty"`
	Status           ReviewStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ModerationReason *string      `gorm:"type:text" json:"moderation_reason,omitempty"`
	IsPremium        bool         `gorm:"not null;default:false" json:"is_premium"`
	Price            *float64     `json:"price,omitempty"`
	UpvoteCount      int          `gorm:"not null;default:0" json:"upvote_count"`
	DownvoteCount    int          `gorm:"not null;default:0" json:"downvote_count"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }
