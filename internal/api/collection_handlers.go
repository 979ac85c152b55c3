package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerCollectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleSavedQuestion",
		Method:      http.MethodPost,
		Path:        "/api/v1/collection/questions/{id}",
		Summary:     "Toggle saved question",
		Description: "Saves the question to the caller's collection, or removes it if already saved",
		Tags:        []string{"Collection"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleSavedQuestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSavedQuestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/collection/questions",
		Summary:     "List saved questions",
		Description: "Returns a page of the caller's saved questions",
		Tags:        []string{"Collection"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSavedQuestions)
}

// === DTOs ===

// ToggleSavedInput contains parameters for toggling a saved question.
type ToggleSavedInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Question ID"`
}

// ToggleSavedResponse reports the resulting save state.
type ToggleSavedResponse struct {
	Saved bool `json:"saved" doc:"Whether the question is now saved"`
}

// ToggleSavedOutput wraps the toggle response for Huma.
type ToggleSavedOutput struct {
	Body ToggleSavedResponse
}

// ListSavedInput contains parameters for listing saved questions.
type ListSavedInput struct {
	Authorization string `header:"Authorization"`
	ListInput
}

// === Handlers ===

func (s *Server) handleToggleSavedQuestion(ctx context.Context, input *ToggleSavedInput) (*ToggleSavedOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	saved, err := s.services.Collections.ToggleSave(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &ToggleSavedOutput{Body: ToggleSavedResponse{Saved: saved}}, nil
}

func (s *Server) handleListSavedQuestions(ctx context.Context, input *ListSavedInput) (*QuestionsPageOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Collections.ListSaved(ctx, userID, input.listParams())
	if err != nil {
		return nil, err
	}
	return &QuestionsPageOutput{Body: *page}, nil
}
