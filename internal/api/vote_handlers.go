package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/service"
)

func (s *Server) registerVoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "castVote",
		Method:      http.MethodPost,
		Path:        "/api/v1/votes",
		Summary:     "Cast vote",
		Description: "Casts, retracts, or switches the caller's vote on a question or answer",
		Tags:        []string{"Votes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCastVote)

	huma.Register(s.api, huma.Operation{
		OperationID: "getVoteStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/votes/{targetType}/{targetId}",
		Summary:     "Get vote status",
		Description: "Returns the caller's vote state on a target",
		Tags:        []string{"Votes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetVoteStatus)
}

// === DTOs ===

// CastVoteInput wraps the vote request for Huma.
type CastVoteInput struct {
	Authorization string `header:"Authorization"`
	Body          service.VoteRequest
}

// VoteStatusOutput wraps the vote status for Huma.
type VoteStatusOutput struct {
	Body domain.VoteStatus
}

// GetVoteStatusInput contains parameters for reading vote status.
type GetVoteStatusInput struct {
	Authorization string `header:"Authorization"`
	TargetType    string `path:"targetType" enum:"question,answer" doc:"Vote target type"`
	TargetID      string `path:"targetId" doc:"Vote target ID"`
}

// === Handlers ===

func (s *Server) handleCastVote(ctx context.Context, input *CastVoteInput) (*VoteStatusOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	status, err := s.services.Votes.Vote(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}
	return &VoteStatusOutput{Body: status}, nil
}

func (s *Server) handleGetVoteStatus(ctx context.Context, input *GetVoteStatusInput) (*VoteStatusOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	status, err := s.services.Votes.Status(ctx, userID, input.TargetID, domain.TargetType(input.TargetType))
	if err != nil {
		return nil, err
	}
	return &VoteStatusOutput{Body: status}, nil
}
