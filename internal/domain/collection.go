package domain

import "time"

// Collection marks a question as saved by a user. Presence of the row
// means "saved"; absence means "not saved". At most one row exists per
// (author, question) pair.
type Collection struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	QuestionID string    `json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}
