package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/id"
	"github.com/devflowhq/devflow-server/internal/normalize"
	"github.com/devflowhq/devflow-server/internal/store"
)

const tagColumns = `id, name, questions, created_at, updated_at`

func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Questions,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// getTagTx reads a tag by ID inside a transaction.
func getTagTx(ctx context.Context, tx *sql.Tx, tagID string) (*domain.Tag, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, tagID)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// findOrCreateTagTx finds a tag by its normalized key or creates it
// with the display name as typed. A concurrent insert losing the
// UNIQUE race falls back to reading the winner's row.
func (s *Store) findOrCreateTagTx(ctx context.Context, tx *sql.Tx, name, key string, now time.Time) (*domain.Tag, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name_lower = ?`, key)
	t, err := scanTag(row)
	if err == nil {
		return t, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, fmt.Errorf("generate tag id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tags (id, name, name_lower, questions, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)`,
		tagID, name, key, formatTime(now), formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			// Race: another transaction created it first.
			row := tx.QueryRowContext(ctx,
				`SELECT `+tagColumns+` FROM tags WHERE name_lower = ?`, key)
			return scanTag(row)
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}

	return &domain.Tag{
		ID:        tagID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, tagID)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagByName retrieves a tag by name, matched case-insensitively.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name_lower = ?`,
		normalize.TagKey(normalize.TagName(name)))

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns a page of tags. Filter "name" sorts alphabetically,
// "recent" by creation date descending; the default is question count
// descending. Query matches the tag name.
func (s *Store) ListTags(ctx context.Context, params store.ListParams) (*store.Page[*domain.Tag], error) {
	params.Normalize()

	where := ""
	var args []any
	if params.Query != "" {
		where = ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, likePattern(params.Query))
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count tags: %w", err)
	}

	order := `questions DESC, name ASC`
	switch params.Filter {
	case "name":
		order = `name ASC`
	case "recent":
		order = `created_at DESC`
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags`+where+
			` ORDER BY `+order+` LIMIT ? OFFSET ?`,
		append(args, params.PageSize, params.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store.NewPage(tags, total, params), nil
}

// ListUserTopTags returns the tags a user has asked about most often,
// counted across their questions.
func (s *Store) ListUserTopTags(ctx context.Context, userID string, limit int) ([]*domain.Tag, error) {
	if limit <= 0 {
		limit = 3
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.questions, t.created_at, t.updated_at
		FROM tags t
		JOIN question_tags qt ON qt.tag_id = t.id
		JOIN questions q ON q.id = qt.question_id
		WHERE q.author_id = ?
		GROUP BY t.id
		ORDER BY COUNT(*) DESC, t.name ASC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query user top tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}
