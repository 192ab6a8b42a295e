package vote

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"reviewhub/internal/domain"
	"reviewhub/internal/repository"
)

type Service struct {
	ledger voteLedger
}

func NewService(ledger voteLedger) *Service {
	return &Service{ledger: ledger}
}

func (s *Service) Upvote(ctx context.Context, reviewID, userID int64) (*CastResult, error) {
	return s.cast(ctx, reviewID, userID, domain.VoteTypeUp)
}

func (s *Service) Downvote(ctx context.Context, reviewID, userID int64) (*CastResult, error) {
	return s.cast(ctx, reviewID, userID, domain.VoteTypeDown)
}

// cast drives the single mutable slot per (review, user): first vote inserts,
// opposite type retypes in place, same type is a conflict. The ledger recounts
// the review's counters as part of the same transaction.
func (s *Service) cast(ctx context.Context, reviewID, userID int64, t domain.VoteType) (*CastResult, error) {
	if reviewID <= 0 || userID <= 0 || !t.Valid() {
		return nil, ErrValidation
	}

	v, outcome, err := s.ledger.Cast(ctx, reviewID, userID, t)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		// Concurrent first votes race on the unique (review, user) index;
		// the loser lands here.
		if isUniqueViolation(err) {
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}

	switch outcome {
	case repository.VoteUnchanged:
		return nil, ErrAlreadyVoted
	case repository.VoteChanged:
		return &CastResult{Message: "Vote changed to " + string(t), Vote: v}, nil
	default:
		return &CastResult{Message: "Review " + pastTense(t) + " successfully", Vote: v}, nil
	}
}

func (s *Service) Remove(ctx context.Context, reviewID, userID int64) error {
	if reviewID <= 0 || userID <= 0 {
		return ErrValidation
	}
	if err := s.ledger.Remove(ctx, reviewID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Counts(ctx context.Context, reviewID int64) (*Counts, error) {
	if reviewID <= 0 {
		return nil, ErrValidation
	}
	up, down, err := s.ledger.CountsByReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	return &Counts{
		Upvotes:    up,
		Downvotes:  down,
		TotalVotes: up + down,
		Score:      up - down,
	}, nil
}

func (s *Service) UserVote(ctx context.Context, reviewID, userID int64) (*UserVote, error) {
	if reviewID <= 0 || userID <= 0 {
		return nil, ErrValidation
	}
	v, err := s.ledger.GetByReviewAndUser(ctx, reviewID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &UserVote{HasVoted: false}, nil
		}
		return nil, err
	}
	return &UserVote{HasVoted: true, Vote: v}, nil
}

func (s *Service) List(ctx context.Context, reviewID int64) ([]repository.VoteWithVoter, error) {
	if reviewID <= 0 {
		return nil, ErrValidation
	}
	return s.ledger.ListByReview(ctx, reviewID)
}

func pastTense(t domain.VoteType) string {
	if t == domain.VoteTypeUp {
		return "upvoted"
	}
	return "downvoted"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite in local development
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
