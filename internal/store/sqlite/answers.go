package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/store"
)

const answerColumns = `id, author_id, question_id, content, upvotes, downvotes, created_at, updated_at`

func scanAnswer(scanner interface{ Scan(dest ...any) error }) (*domain.Answer, error) {
	var a domain.Answer

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&a.ID,
		&a.AuthorID,
		&a.QuestionID,
		&a.Content,
		&a.Upvotes,
		&a.Downvotes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// CreateAnswer inserts an answer and bumps the parent question's
// answer counter in the same transaction. Answering a question that
// does not exist fails with ErrNotFound and writes nothing.
func (s *Store) CreateAnswer(ctx context.Context, a *domain.Answer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE questions SET answers = answers + 1 WHERE id = ?`, a.QuestionID)
	if err != nil {
		return fmt.Errorf("increment answer count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domainerrors.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO answers (id, author_id, question_id, content, upvotes, downvotes, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, 0, ?, ?)`,
		a.ID,
		a.AuthorID,
		a.QuestionID,
		a.Content,
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert answer: %w", err)
	}

	if err := s.commit(tx); err != nil {
		return fmt.Errorf("commit create answer: %w", err)
	}
	return nil
}

// GetAnswer retrieves an answer by ID.
func (s *Store) GetAnswer(ctx context.Context, answerID string) (*domain.Answer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE id = ?`, answerID)

	a, err := scanAnswer(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnswersByQuestion returns a page of a question's answers. Filter
// "oldest" sorts ascending by creation, "popular" by upvotes; the
// default is newest first.
func (s *Store) ListAnswersByQuestion(ctx context.Context, questionID string, params store.ListParams) (*store.Page[*domain.Answer], error) {
	order := `created_at DESC`
	switch params.Filter {
	case "oldest":
		order = `created_at ASC`
	case "popular":
		order = `upvotes DESC, created_at DESC`
	}

	return s.listAnswers(ctx, params,
		`SELECT COUNT(*) FROM answers WHERE question_id = ?`,
		`SELECT `+answerColumns+` FROM answers WHERE question_id = ? ORDER BY `+order+` LIMIT ? OFFSET ?`,
		questionID)
}

// ListAnswersByAuthor returns a page of one user's answers, newest first.
func (s *Store) ListAnswersByAuthor(ctx context.Context, authorID string, params store.ListParams) (*store.Page[*domain.Answer], error) {
	return s.listAnswers(ctx, params,
		`SELECT COUNT(*) FROM answers WHERE author_id = ?`,
		`SELECT `+answerColumns+` FROM answers WHERE author_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		authorID)
}

func (s *Store) listAnswers(ctx context.Context, params store.ListParams, countSQL, pageSQL string, arg any) (*store.Page[*domain.Answer], error) {
	params.Normalize()

	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, arg).Scan(&total); err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, pageSQL, arg, params.PageSize, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var answers []*domain.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store.NewPage(answers, total, params), nil
}
