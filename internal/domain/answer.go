package domain

import "time"

// Answer is a reply to a question. Creating one bumps the parent
// question's answers counter in the same transaction.
type Answer struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	QuestionID string    `json:"question_id"`
	Content    string    `json:"content"`
	Upvotes    int64     `json:"upvotes"`
	Downvotes  int64     `json:"downvotes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
