package domain

import "time"

// TargetType identifies what kind of post a vote targets.
type TargetType string

const (
	// TargetQuestion votes on a question.
	TargetQuestion TargetType = "question"
	// TargetAnswer votes on an answer.
	TargetAnswer TargetType = "answer"
)

// Valid reports whether the target type is known.
func (t TargetType) Valid() bool {
	return t == TargetQuestion || t == TargetAnswer
}

// VoteType is the direction of a vote.
type VoteType string

const (
	// VoteUp is an upvote.
	VoteUp VoteType = "upvote"
	// VoteDown is a downvote.
	VoteDown VoteType = "downvote"
)

// Valid reports whether the vote type is known.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Vote records one user's vote on one target. At most one Vote exists
// per (author, target, target type); casting the same vote again
// retracts it, casting the opposite vote switches it.
type Vote struct {
	ID         string     `json:"id"`
	AuthorID   string     `json:"author_id"`
	TargetID   string     `json:"target_id"`
	TargetType TargetType `json:"target_type"`
	VoteType   VoteType   `json:"vote_type"`
	CreatedAt  time.Time  `json:"created_at"`
}

// VoteStatus is the projection of a user's vote state on a target.
// No vote at all is represented by both flags false.
type VoteStatus struct {
	HasUpvoted   bool `json:"has_upvoted"`
	HasDownvoted bool `json:"has_downvoted"`
}
