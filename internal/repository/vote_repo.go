package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reviewhub/internal/domain"
)

// VoteOutcome describes what a ledger mutation did to the (review, user) slot.
type VoteOutcome int

const (
	VoteCreated VoteOutcome = iota
	VoteChanged
	VoteUnchanged
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) GetByReviewAndUser(ctx context.Context, reviewID, userID int64) (*domain.Vote, error) {
	var v domain.Vote
	err := r.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Cast inserts or retypes the caller's vote and recounts the review's
// counters, all under a row lock on the review so that concurrent mutations
// cannot interleave the read-recount-write sequence. A same-type revote is
// reported as VoteUnchanged and writes nothing.
func (r *VoteRepository) Cast(ctx context.Context, reviewID, userID int64, t domain.VoteType) (*domain.Vote, VoteOutcome, error) {
	var (
		vote    domain.Vote
		outcome VoteOutcome
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rv domain.Review
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rv, reviewID).Error; err != nil {
			return err
		}

		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&vote).Error
		switch {
		case err == nil:
			if vote.VoteType == t {
				outcome = VoteUnchanged
				return nil
			}
			res := tx.Model(&domain.Vote{}).
				Where("id = ?", vote.ID).
				Update("vote_type", t)
			if res.Error != nil {
				return res.Error
			}
			vote.VoteType = t
			outcome = VoteChanged
		case err == gorm.ErrRecordNotFound:
			vote = domain.Vote{ReviewID: reviewID, UserID: userID, VoteType: t}
			// The unique (review_id, user_id) index arbitrates concurrent
			// first votes; the loser surfaces as a unique violation.
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			outcome = VoteCreated
		default:
			return err
		}

		return recountVotes(tx, reviewID)
	})
	if err != nil {
		return nil, 0, err
	}
	return &vote, outcome, nil
}

// Remove deletes the caller's vote and recounts under the same review lock.
func (r *VoteRepository) Remove(ctx context.Context, reviewID, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rv domain.Review
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rv, reviewID).Error; err != nil {
			return err
		}

		res := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).Delete(&domain.Vote{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return recountVotes(tx, reviewID)
	})
}

func (r *VoteRepository) CountsByReview(ctx context.Context, reviewID int64) (int64, int64, error) {
	var up, down int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Vote{}).
		Where("review_id = ? AND vote_type = ?", reviewID, domain.VoteTypeUp).
		Count(&up).Error; err != nil {
		return 0, 0, err
	}
	if err := db.Model(&domain.Vote{}).
		Where("review_id = ? AND vote_type = ?", reviewID, domain.VoteTypeDown).
		Count(&down).Error; err != nil {
		return 0, 0, err
	}
	return up, down, nil
}

// VoteWithVoter annotates a ledger row with minimal voter identity.
type VoteWithVoter struct {
	domain.Vote
	VoterName  string  `json:"voter_name"`
	VoterEmail string  `json:"voter_email"`
	VoterImage *string `json:"voter_image,omitempty"`
}

func (r *VoteRepository) ListByReview(ctx context.Context, reviewID int64) ([]VoteWithVoter, error) {
	var rows []VoteWithVoter
	err := r.db.WithContext(ctx).
		Model(&domain.Vote{}).
		Select("votes.*, users.name AS voter_name, users.email AS voter_email, users.image AS voter_image").
		Joins("JOIN users ON users.id = votes.user_id").
		Where("votes.review_id = ?", reviewID).
		Order("votes.created_at DESC").
		Find(&rows).Error
	return rows, err
}

// recountVotes recomputes both counters from the ledger and writes them onto
// the review. Idempotent given the ledger state.
func recountVotes(tx *gorm.DB, reviewID int64) error {
	var up, down int64
	if err := tx.Model(&domain.Vote{}).
		Where("review_id = ? AND vote_type = ?", reviewID, domain.VoteTypeUp).
		Count(&up).Error; err != nil {
		return err
	}
	if err := tx.Model(&domain.Vote{}).
		Where("review_id = ? AND vote_type = ?", reviewID, domain.VoteTypeDown).
		Count(&down).Error; err != nil {
		return err
	}
	return tx.Model(&domain.Review{}).
		Where("id = ?", reviewID).
		Updates(map[string]any{
			"upvote_count":   up,
			"downvote_count": down,
		}).Error
}
