package vote

import "reviewhub/internal/domain"

type CastResult struct {
	Message string       `json:"message"`
	Vote    *domain.Vote `json:"vote"`
}

type Counts struct {
	Upvotes    int64 `json:"upvotes"`
	Downvotes  int64 `json:"downvotes"`
	TotalVotes int64 `json:"total_votes"`
	Score      int64 `json:"score"`
}

// UserVote is an explicit "voted or not" answer; an absent vote is a normal
// result, not an error.
type UserVote struct {
	HasVoted bool         `json:"has_voted"`
	Vote     *domain.Vote `json:"vote,omitempty"`
}
