package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/service"
	"github.com/devflowhq/devflow-server/internal/store"
)

func (s *Server) registerQuestionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listQuestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/questions",
		Summary:     "List questions",
		Description: "Returns a page of questions; filter by newest, unanswered, or popular",
		Tags:        []string{"Questions"},
	}, s.handleListQuestions)

	huma.Register(s.api, huma.Operation{
		OperationID: "createQuestion",
		Method:      http.MethodPost,
		Path:        "/api/v1/questions",
		Summary:     "Create question",
		Description: "Posts a new question with one to three tags",
		Tags:        []string{"Questions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateQuestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "getQuestion",
		Method:      http.MethodGet,
		Path:        "/api/v1/questions/{id}",
		Summary:     "Get question",
		Description: "Returns a question with its tags and the caller's vote and save state",
		Tags:        []string{"Questions"},
	}, s.handleGetQuestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateQuestion",
		Method:      http.MethodPut,
		Path:        "/api/v1/questions/{id}",
		Summary:     "Update question",
		Description: "Edits a question's title, content, and tags (author only)",
		Tags:        []string{"Questions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateQuestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "recordQuestionView",
		Method:      http.MethodPost,
		Path:        "/api/v1/questions/{id}/views",
		Summary:     "Record question view",
		Description: "Increments the question's view counter",
		Tags:        []string{"Questions"},
	}, s.handleRecordQuestionView)
}

// === DTOs ===

// CreateQuestionInput wraps the create question request for Huma.
type CreateQuestionInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreateQuestionRequest
}

// UpdateQuestionInput wraps the update question request for Huma.
type UpdateQuestionInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Question ID"`
	Body          service.UpdateQuestionRequest
}

// QuestionOutput wraps a single question for Huma.
type QuestionOutput struct {
	Body domain.Question
}

// GetQuestionInput contains parameters for getting a question.
type GetQuestionInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Question ID"`
}

// QuestionDetailResponse is a question with the caller's state on it.
type QuestionDetailResponse struct {
	Question *domain.Question  `json:"question"`
	Votes    domain.VoteStatus `json:"votes"`
	Saved    bool              `json:"saved"`
}

// QuestionDetailOutput wraps the question detail response for Huma.
type QuestionDetailOutput struct {
	Body QuestionDetailResponse
}

// ListQuestionsInput contains parameters for listing questions.
type ListQuestionsInput struct {
	ListInput
}

// QuestionsPageOutput wraps a page of questions for Huma.
type QuestionsPageOutput struct {
	Body store.Page[*domain.Question]
}

// RecordViewInput contains parameters for recording a view.
type RecordViewInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Question ID"`
}

// ViewsResponse contains the question's updated view count.
type ViewsResponse struct {
	Views int64 `json:"views" doc:"Total view count"`
}

// ViewsOutput wraps the views response for Huma.
type ViewsOutput struct {
	Body ViewsResponse
}

// === Handlers ===

func (s *Server) handleListQuestions(ctx context.Context, input *ListQuestionsInput) (*QuestionsPageOutput, error) {
	page, err := s.services.Questions.List(ctx, input.listParams())
	if err != nil {
		return nil, err
	}
	return &QuestionsPageOutput{Body: *page}, nil
}

func (s *Server) handleCreateQuestion(ctx context.Context, input *CreateQuestionInput) (*QuestionOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	q, err := s.services.Questions.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}
	return &QuestionOutput{Body: *q}, nil
}

func (s *Server) handleGetQuestion(ctx context.Context, input *GetQuestionInput) (*QuestionDetailOutput, error) {
	q, err := s.services.Questions.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := QuestionDetailResponse{Question: q}

	// Vote and save state are personal; anonymous callers see neither.
	if userID := s.optionalAuthenticate(input.Authorization); userID != "" {
		resp.Votes, err = s.services.Votes.Status(ctx, userID, q.ID, domain.TargetQuestion)
		if err != nil {
			return nil, err
		}
		resp.Saved, err = s.services.Collections.HasSaved(ctx, userID, q.ID)
		if err != nil {
			return nil, err
		}
	}

	return &QuestionDetailOutput{Body: resp}, nil
}

func (s *Server) handleUpdateQuestion(ctx context.Context, input *UpdateQuestionInput) (*QuestionOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	q, err := s.services.Questions.Update(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &QuestionOutput{Body: *q}, nil
}

func (s *Server) handleRecordQuestionView(ctx context.Context, input *RecordViewInput) (*ViewsOutput, error) {
	viewerID := s.optionalAuthenticate(input.Authorization)

	views, err := s.services.Questions.RecordView(ctx, viewerID, input.ID)
	if err != nil {
		return nil, err
	}
	return &ViewsOutput{Body: ViewsResponse{Views: views}}, nil
}
