package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/store"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns a page of tags, by default ordered by question count",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTagQuestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}/questions",
		Summary:     "List questions for tag",
		Description: "Returns the tag together with a page of questions carrying it",
		Tags:        []string{"Tags"},
	}, s.handleListTagQuestions)
}

// === DTOs ===

// ListTagsInput contains tag listing parameters.
type ListTagsInput struct {
	ListInput
}

// TagsPageOutput wraps a page of tags for Huma.
type TagsPageOutput struct {
	Body store.Page[*domain.Tag]
}

// GetTagInput contains parameters for fetching one tag.
type GetTagInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// TagOutput wraps a single tag for Huma.
type TagOutput struct {
	Body domain.Tag
}

// ListTagQuestionsInput contains parameters for listing a tag's questions.
type ListTagQuestionsInput struct {
	ID string `path:"id" doc:"Tag ID"`
	ListInput
}

// TagQuestionsResponse bundles a tag with a page of its questions.
type TagQuestionsResponse struct {
	Tag       *domain.Tag                  `json:"tag"`
	Questions store.Page[*domain.Question] `json:"questions"`
}

// TagQuestionsOutput wraps the tag questions response for Huma.
type TagQuestionsOutput struct {
	Body TagQuestionsResponse
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*TagsPageOutput, error) {
	page, err := s.services.Tags.List(ctx, input.listParams())
	if err != nil {
		return nil, err
	}
	return &TagsPageOutput{Body: *page}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *GetTagInput) (*TagOutput, error) {
	tag, err := s.services.Tags.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: *tag}, nil
}

func (s *Server) handleListTagQuestions(ctx context.Context, input *ListTagQuestionsInput) (*TagQuestionsOutput, error) {
	tag, page, err := s.services.Tags.ListQuestions(ctx, input.ID, input.listParams())
	if err != nil {
		return nil, err
	}
	return &TagQuestionsOutput{Body: TagQuestionsResponse{Tag: tag, Questions: *page}}, nil
}
