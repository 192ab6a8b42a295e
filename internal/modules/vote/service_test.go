package vote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"reviewhub/internal/domain"
	"reviewhub/internal/repository"
)

// fakeLedger mirrors the repository semantics: one slot per (review, user),
// counters recounted after every write.
type fakeLedger struct {
	votes  map[[2]int64]*domain.Vote
	counts map[int64][2]int64 // reviewID -> {up, down}
	nextID int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{votes: map[[2]int64]*domain.Vote{}, counts: map[int64][2]int64{}, nextID: 1}
}

func (f *fakeLedger) GetByReviewAndUser(ctx context.Context, reviewID, userID int64) (*domain.Vote, error) {
	v, ok := f.votes[[2]int64{reviewID, userID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeLedger) Cast(ctx context.Context, reviewID, userID int64, t domain.VoteType) (*domain.Vote, repository.VoteOutcome, error) {
	key := [2]int64{reviewID, userID}
	if v, ok := f.votes[key]; ok {
		if v.VoteType == t {
			return v, repository.VoteUnchanged, nil
		}
		v.VoteType = t
		f.recount(reviewID)
		cp := *v
		return &cp, repository.VoteChanged, nil
	}
	v := &domain.Vote{ID: f.nextID, ReviewID: reviewID, UserID: userID, VoteType: t}
	f.nextID++
	f.votes[key] = v
	f.recount(reviewID)
	cp := *v
	return &cp, repository.VoteCreated, nil
}

func (f *fakeLedger) Remove(ctx context.Context, reviewID, userID int64) error {
	key := [2]int64{reviewID, userID}
	if _, ok := f.votes[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.votes, key)
	f.recount(reviewID)
	return nil
}

func (f *fakeLedger) CountsByReview(ctx context.Context, reviewID int64) (int64, int64, error) {
	c := f.counts[reviewID]
	return c[0], c[1], nil
}

func (f *fakeLedger) ListByReview(ctx context.Context, reviewID int64) ([]repository.VoteWithVoter, error) {
	var out []repository.VoteWithVoter
	for _, v := range f.votes {
		if v.ReviewID == reviewID {
			out = append(out, repository.VoteWithVoter{Vote: *v})
		}
	}
	return out, nil
}

func (f *fakeLedger) recount(reviewID int64) {
	var up, down int64
	for _, v := range f.votes {
		if v.ReviewID != reviewID {
			continue
		}
		if v.VoteType == domain.VoteTypeUp {
			up++
		} else {
			down++
		}
	}
	f.counts[reviewID] = [2]int64{up, down}
}

func TestCast_FirstVote(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger)
	ctx := context.Background()

	res, err := svc.Upvote(ctx, 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, "Review upvoted successfully", res.Message)
	assert.Equal(t, domain.VoteTypeUp, res.Vote.VoteType)

	counts, err := svc.Counts(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), counts.Upvotes)
	assert.Equal(t, int64(0), counts.Downvotes)
}

func TestCast_SameTypeConflicts(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger)
	ctx := context.Background()

	_, err := svc.Downvote(ctx, 1, 7)
	assert.NoError(t, err)

	_, err = svc.Downvote(ctx, 1, 7)
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	// The conflicting cast must not disturb the counters.
	counts, err := svc.Counts(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), counts.Upvotes)
	assert.Equal(t, int64(1), counts.Downvotes)
	assert.Equal(t, int64(1), counts.TotalVotes)
}

func TestCast_OppositeTypeRetypesInPlace(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger)
	ctx := context.Background()

	first, err := svc.Upvote(ctx, 1, 7)
	assert.NoError(t, err)

	changed, err := svc.Downvote(ctx, 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, "Vote changed to downvote", changed.Message)
	assert.Equal(t, first.Vote.ID, changed.Vote.ID)
	assert.Equal(t, domain.VoteTypeDown, changed.Vote.VoteType)

	counts, err := svc.Counts(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), counts.Upvotes)
	assert.Equal(t, int64(1), counts.Downvotes)
	assert.Equal(t, int64(-1), counts.Score)
}

func TestRemove(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger)
	ctx := context.Background()

	err := svc.Remove(ctx, 1, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Upvote(ctx, 1, 7)
	assert.NoError(t, err)

	err = svc.Remove(ctx, 1, 7)
	assert.NoError(t, err)

	counts, err := svc.Counts(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), counts.TotalVotes)
}

func TestCounts_ScoreAndTotals(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger)
	ctx := context.Background()

	_, _ = svc.Upvote(ctx, 1, 7)
	_, _ = svc.Upvote(ctx, 1, 8)
	_, _ = svc.Upvote(ctx, 1, 9)
	_, _ = svc.Downvote(ctx, 1, 10)

	counts, err := svc.Counts(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), counts.Upvotes)
	assert.Equal(t, int64(1), counts.Downvotes)
	assert.Equal(t, int64(4), counts.TotalVotes)
	assert.Equal(t, int64(2), counts.Score)
}

func TestUserVote_NoVoteIsNotAnError(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger)
	ctx := context.Background()

	uv, err := svc.UserVote(ctx, 1, 7)
	assert.NoError(t, err)
	assert.False(t, uv.HasVoted)
	assert.Nil(t, uv.Vote)

	_, _ = svc.Upvote(ctx, 1, 7)

	uv, err = svc.UserVote(ctx, 1, 7)
	assert.NoError(t, err)
	assert.True(t, uv.HasVoted)
	assert.Equal(t, domain.VoteTypeUp, uv.Vote.VoteType)
}

func TestCast_Validation(t *testing.T) {
	svc := NewService(newFakeLedger())

	_, err := svc.Upvote(context.Background(), 0, 7)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Downvote(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrValidation)
}
