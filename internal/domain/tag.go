package domain

import "time"

// Tag labels questions by topic. Tags are created lazily the first time
// a question uses the name and are never deleted, even when Questions
// drops to zero.
//
// Name keeps the casing the first author typed; matching is
// case-insensitive via the normalized key (see internal/normalize).
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Questions int64     `json:"questions"` // Count of questions carrying this tag
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagQuestion is the authoritative many-to-many link between a tag and
// a question. Position preserves the author's tag ordering.
type TagQuestion struct {
	TagID      string    `json:"tag_id"`
	QuestionID string    `json:"question_id"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
