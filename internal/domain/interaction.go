package domain

import "time"

// InteractionAction names something a user did to a post.
type InteractionAction string

const (
	// ActionView records a question view.
	ActionView InteractionAction = "view"
	// ActionUpvote records an upvote cast.
	ActionUpvote InteractionAction = "upvote"
	// ActionDownvote records a downvote cast.
	ActionDownvote InteractionAction = "downvote"
	// ActionPost records creating a question or answer.
	ActionPost InteractionAction = "post"
	// ActionSave records saving a question to a collection.
	ActionSave InteractionAction = "save"
)

// Interaction is an append-only activity record used for reputation
// and recommendations. Writes are best-effort: a failed interaction
// insert never fails the operation that produced it.
type Interaction struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	Action     InteractionAction `json:"action"`
	TargetID   string            `json:"target_id"`
	TargetType TargetType        `json:"target_type"`
	CreatedAt  time.Time         `json:"created_at"`
}
