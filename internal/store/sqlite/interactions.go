package sqlite

import (
	"context"
	"fmt"

	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/store"
)

// CreateInteraction appends one activity record. Interactions are
// observational; callers treat failures here as non-fatal.
func (s *Store) CreateInteraction(ctx context.Context, in *domain.Interaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interactions (id, user_id, action, target_id, target_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID,
		in.UserID,
		string(in.Action),
		in.TargetID,
		string(in.TargetType),
		formatTime(in.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// ListInteractionsByUser returns a page of a user's activity, newest
// first.
func (s *Store) ListInteractionsByUser(ctx context.Context, userID string, params store.ListParams) (*store.Page[*domain.Interaction], error) {
	params.Normalize()

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM interactions WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("count interactions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, action, target_id, target_type, created_at
		FROM interactions WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var items []*domain.Interaction
	for rows.Next() {
		var in domain.Interaction
		var action, targetType, createdAt string
		if err := rows.Scan(&in.ID, &in.UserID, &action, &in.TargetID, &targetType, &createdAt); err != nil {
			return nil, err
		}
		in.Action = domain.InteractionAction(action)
		in.TargetType = domain.TargetType(targetType)
		if in.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse interaction time: %w", err)
		}
		items = append(items, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store.NewPage(items, total, params), nil
}
