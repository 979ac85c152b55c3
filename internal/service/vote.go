package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/id"
	"github.com/devflowhq/devflow-server/internal/store"
	"github.com/devflowhq/devflow-server/internal/validation"
)

// VoteService applies the vote state machine to questions and answers.
type VoteService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewVoteService creates a new vote service.
func NewVoteService(st store.Store, validator *validation.Validator, logger *slog.Logger) *VoteService {
	return &VoteService{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// VoteRequest identifies a vote target and direction.
type VoteRequest struct {
	TargetID   string `json:"target_id" validate:"required"`
	TargetType string `json:"target_type" validate:"required,oneof=question answer"`
	VoteType   string `json:"vote_type" validate:"required,oneof=upvote downvote"`
}

// Vote casts, retracts, or switches the caller's vote on a target and
// returns the resulting state on that target.
func (s *VoteService) Vote(ctx context.Context, authorID string, req VoteRequest) (domain.VoteStatus, error) {
	if err := s.validator.Validate(req); err != nil {
		return domain.VoteStatus{}, err
	}

	targetType := domain.TargetType(req.TargetType)
	voteType := domain.VoteType(req.VoteType)

	voteID, err := id.Generate("vote")
	if err != nil {
		return domain.VoteStatus{}, fmt.Errorf("generate vote ID: %w", err)
	}

	v := &domain.Vote{
		ID:         voteID,
		AuthorID:   authorID,
		TargetID:   req.TargetID,
		TargetType: targetType,
		VoteType:   voteType,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.store.CreateVote(ctx, v); err != nil {
		if domainerrors.Is(err, domainerrors.ErrNotFound) {
			return domain.VoteStatus{}, domainerrors.NotFound("vote target not found")
		}
		return domain.VoteStatus{}, err
	}

	status, err := s.store.GetVoteStatus(ctx, authorID, req.TargetID, targetType)
	if err != nil {
		return domain.VoteStatus{}, fmt.Errorf("read vote status: %w", err)
	}

	// A repeat of the standing vote retracts it; only actual casts
	// belong in the activity log.
	if status.HasUpvoted || status.HasDownvoted {
		action := domain.ActionUpvote
		if voteType == domain.VoteDown {
			action = domain.ActionDownvote
		}
		recordInteraction(ctx, s.store, s.logger, authorID, action, req.TargetID, targetType)
	}

	s.logger.Info("vote applied",
		"author_id", authorID,
		"target_id", req.TargetID,
		"target_type", req.TargetType,
		"vote_type", req.VoteType,
	)

	return status, nil
}

// Status returns the caller's vote state on a target.
func (s *VoteService) Status(ctx context.Context, authorID, targetID string, targetType domain.TargetType) (domain.VoteStatus, error) {
	if !targetType.Valid() {
		return domain.VoteStatus{}, domainerrors.Validation("unknown vote target type")
	}
	return s.store.GetVoteStatus(ctx, authorID, targetID, targetType)
}
