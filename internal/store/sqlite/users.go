package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, name, username, email, image, bio, location, portfolio, reputation, created_at, updated_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&u.ID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.Image,
		&u.Bio,
		&u.Location,
		&u.Portfolio,
		&u.Reputation,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser inserts a new user.
// Returns errors.ErrAlreadyExists when the username or email is taken.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, username, username_lower, email, email_lower, image, bio, location, portfolio, reputation, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Name,
		u.Username,
		strings.ToLower(u.Username),
		u.Email,
		strings.ToLower(u.Email),
		u.Image,
		u.Bio,
		u.Location,
		u.Portfolio,
		u.Reputation,
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, userID)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email, matched case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_lower = ?`, strings.ToLower(email))

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByUsername retrieves a user by username, matched case-insensitively.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username_lower = ?`, strings.ToLower(username))

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser updates a user's profile fields.
// Reputation is not written here; it only moves through atomic increments.
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, username = ?, username_lower = ?, image = ?, bio = ?, location = ?, portfolio = ?, updated_at = ?
		WHERE id = ?`,
		u.Name,
		u.Username,
		strings.ToLower(u.Username),
		u.Image,
		u.Bio,
		u.Location,
		u.Portfolio,
		formatTime(u.UpdatedAt),
		u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListUsers returns a page of users. Filter "newest" sorts by join
// date descending, "name" alphabetically; the default is reputation
// descending. Query matches name or username.
func (s *Store) ListUsers(ctx context.Context, params store.ListParams) (*store.Page[*domain.User], error) {
	params.Normalize()

	where := ""
	var args []any
	if params.Query != "" {
		where = ` WHERE (name LIKE ? ESCAPE '\' OR username LIKE ? ESCAPE '\')`
		p := likePattern(params.Query)
		args = append(args, p, p)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	order := `reputation DESC, created_at ASC`
	switch params.Filter {
	case "newest":
		order = `created_at DESC`
	case "name":
		order = `name ASC`
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users`+where+
			` ORDER BY `+order+` LIMIT ? OFFSET ?`,
		append(args, params.PageSize, params.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store.NewPage(users, total, params), nil
}

// CountQuestionsByAuthor returns how many questions a user has posted.
func (s *Store) CountQuestionsByAuthor(ctx context.Context, authorID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions WHERE author_id = ?`, authorID).Scan(&n)
	return n, err
}

// CountAnswersByAuthor returns how many answers a user has posted.
func (s *Store) CountAnswersByAuthor(ctx context.Context, authorID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM answers WHERE author_id = ?`, authorID).Scan(&n)
	return n, err
}
