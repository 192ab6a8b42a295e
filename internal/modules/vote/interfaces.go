package vote

import (
	"context"

	"reviewhub/internal/domain"
	"reviewhub/internal/repository"
)

type voteLedger interface {
	GetByReviewAndUser(ctx context.Context, reviewID, userID int64) (*domain.Vote, error)
	Cast(ctx context.Context, reviewID, userID int64, t domain.VoteType) (*domain.Vote, repository.VoteOutcome, error)
	Remove(ctx context.Context, reviewID, userID int64) error
	CountsByReview(ctx context.Context, reviewID int64) (int64, int64, error)
	ListByReview(ctx context.Context, reviewID int64) ([]repository.VoteWithVoter, error)
}
