package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/normalize"
	"github.com/devflowhq/devflow-server/internal/store"
)

const questionColumns = `id, author_id, title, content, views, answers, upvotes, downvotes, created_at, updated_at`

func scanQuestion(scanner interface{ Scan(dest ...any) error }) (*domain.Question, error) {
	var q domain.Question

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&q.ID,
		&q.AuthorID,
		&q.Title,
		&q.Content,
		&q.Views,
		&q.Answers,
		&q.Upvotes,
		&q.Downvotes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	q.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &q, nil
}

// CreateQuestion inserts a question and links its tags in one
// transaction. Tags that don't exist yet are created; every linked
// tag's question count goes up by one. On any failure nothing is
// written.
func (s *Store) CreateQuestion(ctx context.Context, q *domain.Question, tagNames []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO questions (id, author_id, title, content, views, answers, upvotes, downvotes, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, 0, 0, 0, ?, ?)`,
		q.ID,
		q.AuthorID,
		q.Title,
		q.Content,
		formatTime(q.CreatedAt),
		formatTime(q.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert question: %w", err)
	}

	tags, err := s.linkTagsTx(ctx, tx, q.ID, tagNames, nil)
	if err != nil {
		return err
	}

	if err := s.commit(tx); err != nil {
		return fmt.Errorf("commit create question: %w", err)
	}

	q.Tags = tags
	return nil
}

// UpdateQuestion rewrites a question's title, content, and tag set in
// one transaction. Tags no longer used keep existing with a question
// count lowered by one (floored at zero); newly used tags are created
// or incremented. Positions are rewritten to the new order.
func (s *Store) UpdateQuestion(ctx context.Context, q *domain.Question, tagNames []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE questions SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		q.Title,
		q.Content,
		formatTime(q.UpdatedAt),
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domainerrors.ErrNotFound
	}

	// Current links keyed by normalized name, for the diff.
	current := map[string]string{} // tag key -> tag ID
	rows, err := tx.QueryContext(ctx, `
		SELECT t.id, t.name_lower FROM tags t
		JOIN question_tags qt ON qt.tag_id = t.id
		WHERE qt.question_id = ?`, q.ID)
	if err != nil {
		return fmt.Errorf("query question tags: %w", err)
	}
	for rows.Next() {
		var tagID, key string
		if err := rows.Scan(&tagID, &key); err != nil {
			rows.Close()
			return err
		}
		current[key] = tagID
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	tags, err := s.linkTagsTx(ctx, tx, q.ID, tagNames, current)
	if err != nil {
		return err
	}

	// Whatever is left in current was dropped by the edit.
	for _, tagID := range current {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM question_tags WHERE question_id = ? AND tag_id = ?`, q.ID, tagID); err != nil {
			return fmt.Errorf("unlink tag: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE tags SET questions = MAX(0, questions - 1), updated_at = ? WHERE id = ?`,
			formatTime(time.Now().UTC()), tagID); err != nil {
			return fmt.Errorf("decrement tag count: %w", err)
		}
	}

	if err := s.commit(tx); err != nil {
		return fmt.Errorf("commit update question: %w", err)
	}

	q.Tags = tags
	return nil
}

// linkTagsTx resolves tagNames to tag rows and links them to the
// question at their list positions. Names already present in current
// are treated as kept: their link position is refreshed, their count
// is untouched, and they are removed from current so the caller can
// treat the remainder as dropped. current may be nil for a fresh
// question.
func (s *Store) linkTagsTx(ctx context.Context, tx *sql.Tx, questionID string, tagNames []string, current map[string]string) ([]domain.Tag, error) {
	now := time.Now().UTC()
	seen := map[string]bool{}
	tags := make([]domain.Tag, 0, len(tagNames))

	for i, raw := range tagNames {
		name := normalize.TagName(raw)
		if name == "" {
			continue
		}
		key := normalize.TagKey(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		if tagID, ok := current[key]; ok {
			delete(current, key)
			if _, err := tx.ExecContext(ctx,
				`UPDATE question_tags SET position = ? WHERE question_id = ? AND tag_id = ?`,
				i, questionID, tagID); err != nil {
				return nil, fmt.Errorf("reorder tag link: %w", err)
			}
			t, err := getTagTx(ctx, tx, tagID)
			if err != nil {
				return nil, err
			}
			tags = append(tags, *t)
			continue
		}

		t, err := s.findOrCreateTagTx(ctx, tx, name, key, now)
		if err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO question_tags (question_id, tag_id, position, created_at)
			VALUES (?, ?, ?, ?)`,
			questionID, t.ID, i, formatTime(now)); err != nil {
			return nil, fmt.Errorf("link tag: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE tags SET questions = questions + 1, updated_at = ? WHERE id = ?`,
			formatTime(now), t.ID); err != nil {
			return nil, fmt.Errorf("increment tag count: %w", err)
		}
		t.Questions++
		tags = append(tags, *t)
	}

	return tags, nil
}

// GetQuestion retrieves a question with its tags.
func (s *Store) GetQuestion(ctx context.Context, questionID string) (*domain.Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ?`, questionID)

	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, []*domain.Question{q}); err != nil {
		return nil, err
	}
	return q, nil
}

// IncrementQuestionViews bumps the view counter by one and returns the
// new value.
func (s *Store) IncrementQuestionViews(ctx context.Context, questionID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET views = views + 1 WHERE id = ?`, questionID)
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domainerrors.ErrNotFound
	}

	var views int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT views FROM questions WHERE id = ?`, questionID).Scan(&views); err != nil {
		return 0, err
	}
	return views, nil
}

// ListQuestions returns a page of questions. Filter "newest" is the
// default; "unanswered" keeps only questions with no answers;
// "popular" sorts by upvotes. Query matches the title.
func (s *Store) ListQuestions(ctx context.Context, params store.ListParams) (*store.Page[*domain.Question], error) {
	var conds []string
	var args []any

	if params.Query != "" {
		conds = append(conds, `title LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(params.Query))
	}
	if params.Filter == "unanswered" {
		conds = append(conds, `answers = 0`)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	order := `created_at DESC`
	if params.Filter == "popular" {
		order = `upvotes DESC, created_at DESC`
	}

	return s.listQuestions(ctx, params,
		`SELECT COUNT(*) FROM questions`+where,
		`SELECT `+questionColumns+` FROM questions`+where+` ORDER BY `+order+` LIMIT ? OFFSET ?`,
		args)
}

// ListQuestionsByAuthor returns a page of one user's questions, newest first.
func (s *Store) ListQuestionsByAuthor(ctx context.Context, authorID string, params store.ListParams) (*store.Page[*domain.Question], error) {
	return s.listQuestions(ctx, params,
		`SELECT COUNT(*) FROM questions WHERE author_id = ?`,
		`SELECT `+questionColumns+` FROM questions WHERE author_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		[]any{authorID})
}

// ListQuestionsByTag returns a page of questions carrying a tag, newest first.
func (s *Store) ListQuestionsByTag(ctx context.Context, tagID string, params store.ListParams) (*store.Page[*domain.Question], error) {
	return s.listQuestions(ctx, params,
		`SELECT COUNT(*) FROM questions q JOIN question_tags qt ON qt.question_id = q.id WHERE qt.tag_id = ?`,
		`SELECT q.id, q.author_id, q.title, q.content, q.views, q.answers, q.upvotes, q.downvotes, q.created_at, q.updated_at
		 FROM questions q JOIN question_tags qt ON qt.question_id = q.id
		 WHERE qt.tag_id = ? ORDER BY q.created_at DESC LIMIT ? OFFSET ?`,
		[]any{tagID})
}

// listQuestions runs a count query plus a page query sharing the same
// leading args, then attaches tags to the page.
func (s *Store) listQuestions(ctx context.Context, params store.ListParams, countSQL, pageSQL string, args []any) (*store.Page[*domain.Question], error) {
	params.Normalize()

	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, pageSQL, append(args, params.PageSize, params.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, questions); err != nil {
		return nil, err
	}

	return store.NewPage(questions, total, params), nil
}

// attachTags loads the tags for a batch of questions in one query and
// fills each question's Tags slice in position order.
func (s *Store) attachTags(ctx context.Context, questions []*domain.Question) error {
	if len(questions) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Question, len(questions))
	args := make([]any, 0, len(questions))
	for _, q := range questions {
		q.Tags = []domain.Tag{}
		byID[q.ID] = q
		args = append(args, q.ID)
	}

	placeholders := strings.Repeat("?,", len(args))
	placeholders = placeholders[:len(placeholders)-1]

	rows, err := s.db.QueryContext(ctx, `
		SELECT qt.question_id, t.id, t.name, t.questions, t.created_at, t.updated_at
		FROM question_tags qt
		JOIN tags t ON t.id = qt.tag_id
		WHERE qt.question_id IN (`+placeholders+`)
		ORDER BY qt.question_id, qt.position`, args...)
	if err != nil {
		return fmt.Errorf("query question tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			questionID string
			t          domain.Tag
			createdAt  string
			updatedAt  string
		)
		if err := rows.Scan(&questionID, &t.ID, &t.Name, &t.Questions, &createdAt, &updatedAt); err != nil {
			return err
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return err
		}
		if q, ok := byID[questionID]; ok {
			q.Tags = append(q.Tags, t)
		}
	}
	return rows.Err()
}
