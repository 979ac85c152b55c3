package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
)

// voteCounterTable maps a vote target type to the table carrying its
// denormalized counters.
func voteCounterTable(t domain.TargetType) (string, error) {
	switch t {
	case domain.TargetQuestion:
		return "questions", nil
	case domain.TargetAnswer:
		return "answers", nil
	}
	return "", domainerrors.Validation("unknown vote target type")
}

func voteCounterColumn(v domain.VoteType) string {
	if v == domain.VoteUp {
		return "upvotes"
	}
	return "downvotes"
}

// CreateVote applies one vote action atomically. The outcome depends
// on the author's existing vote on the target:
//
//   - no vote: the vote row is inserted and its counter goes up
//   - same vote: the row is deleted and its counter goes down (a retraction)
//   - opposite vote: the row flips and both counters move
//
// The vote row and every counter change commit together or not at all.
// Voting on a target that does not exist fails with ErrNotFound.
func (s *Store) CreateVote(ctx context.Context, v *domain.Vote) error {
	table, err := voteCounterTable(v.TargetType)
	if err != nil {
		return err
	}
	if !v.VoteType.Valid() {
		return domainerrors.Validation("unknown vote type")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existing domain.VoteType
	err = tx.QueryRowContext(ctx, `
		SELECT vote_type FROM votes
		WHERE author_id = ? AND target_id = ? AND target_type = ?`,
		v.AuthorID, v.TargetID, string(v.TargetType)).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		// Fresh vote: insert and count it.
		_, err := tx.ExecContext(ctx, `
			INSERT INTO votes (id, author_id, target_id, target_type, vote_type, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			v.ID, v.AuthorID, v.TargetID, string(v.TargetType), string(v.VoteType), formatTime(v.CreatedAt))
		if err != nil {
			if isUniqueViolation(err) {
				// Lost a race with a concurrent vote on the same target.
				return domainerrors.ErrConflict
			}
			return fmt.Errorf("insert vote: %w", err)
		}
		if err := adjustVoteCounter(ctx, tx, table, v.TargetID, voteCounterColumn(v.VoteType), +1); err != nil {
			return err
		}

	case err != nil:
		return fmt.Errorf("query existing vote: %w", err)

	case existing == v.VoteType:
		// Same vote again: retract it.
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM votes WHERE author_id = ? AND target_id = ? AND target_type = ?`,
			v.AuthorID, v.TargetID, string(v.TargetType)); err != nil {
			return fmt.Errorf("delete vote: %w", err)
		}
		if err := adjustVoteCounter(ctx, tx, table, v.TargetID, voteCounterColumn(v.VoteType), -1); err != nil {
			return err
		}

	default:
		// Opposite vote: switch direction, move both counters.
		if _, err := tx.ExecContext(ctx, `
			UPDATE votes SET vote_type = ?, created_at = ?
			WHERE author_id = ? AND target_id = ? AND target_type = ?`,
			string(v.VoteType), formatTime(v.CreatedAt),
			v.AuthorID, v.TargetID, string(v.TargetType)); err != nil {
			return fmt.Errorf("switch vote: %w", err)
		}
		if err := adjustVoteCounter(ctx, tx, table, v.TargetID, voteCounterColumn(existing), -1); err != nil {
			return err
		}
		if err := adjustVoteCounter(ctx, tx, table, v.TargetID, voteCounterColumn(v.VoteType), +1); err != nil {
			return err
		}
	}

	if err := s.commit(tx); err != nil {
		return fmt.Errorf("commit vote: %w", err)
	}
	return nil
}

// adjustVoteCounter moves one vote counter on the target row. Delta is
// +1 or -1; decrements floor at zero. A missing target aborts the
// transaction with ErrNotFound.
func adjustVoteCounter(ctx context.Context, tx *sql.Tx, table, targetID, column string, delta int) error {
	var stmt string
	if delta > 0 {
		stmt = `UPDATE ` + table + ` SET ` + column + ` = ` + column + ` + 1 WHERE id = ?`
	} else {
		stmt = `UPDATE ` + table + ` SET ` + column + ` = MAX(0, ` + column + ` - 1) WHERE id = ?`
	}

	res, err := tx.ExecContext(ctx, stmt, targetID)
	if err != nil {
		return fmt.Errorf("adjust %s.%s: %w", table, column, err)
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

// GetVoteStatus returns the caller's vote state on a target. A target
// with no vote row reports both flags false.
func (s *Store) GetVoteStatus(ctx context.Context, authorID, targetID string, targetType domain.TargetType) (domain.VoteStatus, error) {
	var voteType string
	err := s.db.QueryRowContext(ctx, `
		SELECT vote_type FROM votes
		WHERE author_id = ? AND target_id = ? AND target_type = ?`,
		authorID, targetID, string(targetType)).Scan(&voteType)
	if err == sql.ErrNoRows {
		return domain.VoteStatus{}, nil
	}
	if err != nil {
		return domain.VoteStatus{}, fmt.Errorf("query vote status: %w", err)
	}

	return domain.VoteStatus{
		HasUpvoted:   voteType == string(domain.VoteUp),
		HasDownvoted: voteType == string(domain.VoteDown),
	}, nil
}
