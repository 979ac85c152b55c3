package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/id"
	"github.com/devflowhq/devflow-server/internal/store"
)

// ToggleSavedQuestion flips whether a question is in the user's saved
// collection and reports the resulting state. A save of an already
// saved question removes it; two racing saves collapse to one row via
// the unique index.
func (s *Store) ToggleSavedQuestion(ctx context.Context, userID, questionID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// The question must exist; saving a deleted question is an error.
	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM questions WHERE id = ?`, questionID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, domainerrors.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("check question: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM collections WHERE author_id = ? AND question_id = ?`,
		userID, questionID)
	if err != nil {
		return false, fmt.Errorf("delete collection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	saved := false
	if n == 0 {
		collectionID, err := id.Generate("col")
		if err != nil {
			return false, fmt.Errorf("generate collection id: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO collections (id, author_id, question_id, created_at)
			VALUES (?, ?, ?, ?)`,
			collectionID, userID, questionID, formatTime(time.Now().UTC()))
		if err != nil {
			if isUniqueViolation(err) {
				// A concurrent toggle already saved it; the end state
				// is saved either way.
				saved = true
			} else {
				return false, fmt.Errorf("insert collection: %w", err)
			}
		} else {
			saved = true
		}
	}

	if err := s.commit(tx); err != nil {
		return false, fmt.Errorf("commit toggle save: %w", err)
	}
	return saved, nil
}

// HasSavedQuestion reports whether the user has the question in their
// saved collection.
func (s *Store) HasSavedQuestion(ctx context.Context, userID, questionID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM collections WHERE author_id = ? AND question_id = ?`,
		userID, questionID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query collection: %w", err)
	}
	return true, nil
}

// ListSavedQuestions returns a page of the user's saved questions,
// most recently saved first. Query matches the question title.
func (s *Store) ListSavedQuestions(ctx context.Context, userID string, params store.ListParams) (*store.Page[*domain.Question], error) {
	args := []any{userID}
	where := ""
	if params.Query != "" {
		where = ` AND q.title LIKE ? ESCAPE '\'`
		args = append(args, likePattern(params.Query))
	}

	return s.listQuestions(ctx, params,
		`SELECT COUNT(*) FROM collections c JOIN questions q ON q.id = c.question_id WHERE c.author_id = ?`+where,
		`SELECT q.id, q.author_id, q.title, q.content, q.views, q.answers, q.upvotes, q.downvotes, q.created_at, q.updated_at
		 FROM collections c JOIN questions q ON q.id = c.question_id
		 WHERE c.author_id = ?`+where+` ORDER BY c.created_at DESC LIMIT ? OFFSET ?`,
		args)
}
