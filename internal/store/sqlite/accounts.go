package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
)

const accountColumns = `id, user_id, name, provider, provider_account_id, image, password_hash, created_at, updated_at`

func scanAccount(scanner interface{ Scan(dest ...any) error }) (*domain.Account, error) {
	var a domain.Account

	var (
		passwordHash sql.NullString
		createdAt    string
		updatedAt    string
	)

	err := scanner.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Provider,
		&a.ProviderAccountID,
		&a.Image,
		&passwordHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.PasswordHash = passwordHash.String

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

// CreateAccount inserts a provider account for a user.
// Returns errors.ErrAlreadyExists when the provider identity is taken.
func (s *Store) CreateAccount(ctx context.Context, a *domain.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, name, provider, provider_account_id, image, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.UserID,
		a.Name,
		string(a.Provider),
		a.ProviderAccountID,
		a.Image,
		nullString(a.PasswordHash),
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetAccountByProvider retrieves the account matching a provider identity.
func (s *Store) GetAccountByProvider(ctx context.Context, provider domain.Provider, providerAccountID string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE provider = ? AND provider_account_id = ?`,
		string(provider), providerAccountID)

	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
