package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/service"
	"github.com/devflowhq/devflow-server/internal/store"
)

func (s *Server) registerAnswerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createAnswer",
		Method:      http.MethodPost,
		Path:        "/api/v1/questions/{id}/answers",
		Summary:     "Create answer",
		Description: "Posts an answer to a question",
		Tags:        []string{"Answers"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateAnswer)

	huma.Register(s.api, huma.Operation{
		OperationID: "listQuestionAnswers",
		Method:      http.MethodGet,
		Path:        "/api/v1/questions/{id}/answers",
		Summary:     "List question answers",
		Description: "Returns a page of a question's answers; filter by newest, oldest, or popular",
		Tags:        []string{"Answers"},
	}, s.handleListQuestionAnswers)
}

// === DTOs ===

// CreateAnswerInput wraps the create answer request for Huma.
type CreateAnswerInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Question ID"`
	Body          service.CreateAnswerRequest
}

// AnswerOutput wraps a single answer for Huma.
type AnswerOutput struct {
	Body domain.Answer
}

// ListQuestionAnswersInput contains parameters for listing a question's answers.
type ListQuestionAnswersInput struct {
	ID string `path:"id" doc:"Question ID"`
	ListInput
}

// AnswersPageOutput wraps a page of answers for Huma.
type AnswersPageOutput struct {
	Body store.Page[*domain.Answer]
}

// === Handlers ===

func (s *Server) handleCreateAnswer(ctx context.Context, input *CreateAnswerInput) (*AnswerOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	a, err := s.services.Answers.Create(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &AnswerOutput{Body: *a}, nil
}

func (s *Server) handleListQuestionAnswers(ctx context.Context, input *ListQuestionAnswersInput) (*AnswersPageOutput, error) {
	page, err := s.services.Answers.ListByQuestion(ctx, input.ID, input.listParams())
	if err != nil {
		return nil, err
	}
	return &AnswersPageOutput{Body: *page}, nil
}
