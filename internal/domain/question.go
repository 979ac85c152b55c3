package domain

import "time"

// Question is a post asking the community for help.
//
// Views, Answers, Upvotes, and Downvotes are denormalized counters
// maintained transactionally at write time; they are never recomputed
// by scanning on the hot path.
type Question struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []Tag     `json:"tags"`
	Views     int64     `json:"views"`
	Answers   int64     `json:"answers"`
	Upvotes   int64     `json:"upvotes"`
	Downvotes int64     `json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagNames returns the names of the question's tags in display order.
func (q *Question) TagNames() []string {
	names := make([]string, len(q.Tags))
	for i, t := range q.Tags {
		names[i] = t.Name
	}
	return names
}
