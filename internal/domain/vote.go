package domain

import "time"

type VoteType string

const (
	VoteTypeUp   VoteType = "upvote"
	VoteTypeDown VoteType = "downvote"
)

func (t VoteType) Valid() bool {
	return t == VoteTypeUp || t == VoteTypeDown
}

// Vote is the single mutable slot per (review, user) pair. The unique index
// is the arbiter for concurrent first votes.
type Vote struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ReviewID  int64     `gorm:"uniqueIndex:idx_votes_review_user;index:idx_votes_review_type;not null" json:"review_id"`
	UserID    int64     `gorm:"uniqueIndex:idx_votes_review_user;not null" json:"user_id"`
	VoteType  VoteType  `gorm:"type:varchar(10);index:idx_votes_review_type;not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Vote) TableName() string { return "votes" }
