package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/service"
	"github.com/devflowhq/devflow-server/internal/store"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns a page of community members, by default ordered by reputation",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user profile",
		Description: "Returns the user together with their activity stats and top tags",
		Tags:        []string{"Users"},
	}, s.handleGetUserProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUserProfile",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/{id}",
		Summary:     "Update user profile",
		Description: "Updates the caller's own profile fields",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateUserProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUserQuestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/questions",
		Summary:     "List a user's questions",
		Tags:        []string{"Users"},
	}, s.handleListUserQuestions)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUserAnswers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/answers",
		Summary:     "List a user's answers",
		Tags:        []string{"Users"},
	}, s.handleListUserAnswers)
}

// === DTOs ===

// ListUsersInput contains user listing parameters.
type ListUsersInput struct {
	ListInput
}

// UsersPageOutput wraps a page of users for Huma.
type UsersPageOutput struct {
	Body store.Page[*domain.User]
}

// GetUserProfileInput contains parameters for fetching a profile.
type GetUserProfileInput struct {
	ID string `path:"id" doc:"User ID"`
}

// ProfileOutput wraps a user profile for Huma.
type ProfileOutput struct {
	Body service.Profile
}

// UpdateUserProfileInput contains the profile update payload.
type UpdateUserProfileInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
	Body          service.UpdateProfileRequest
}

// UserOutput wraps a single user for Huma.
type UserOutput struct {
	Body domain.User
}

// UserItemsInput contains parameters for listing a user's content.
type UserItemsInput struct {
	ID string `path:"id" doc:"User ID"`
	ListInput
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*UsersPageOutput, error) {
	page, err := s.services.Users.List(ctx, input.listParams())
	if err != nil {
		return nil, err
	}
	return &UsersPageOutput{Body: *page}, nil
}

func (s *Server) handleGetUserProfile(ctx context.Context, input *GetUserProfileInput) (*ProfileOutput, error) {
	profile, err := s.services.Users.GetProfile(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *profile}, nil
}

func (s *Server) handleUpdateUserProfile(ctx context.Context, input *UpdateUserProfileInput) (*UserOutput, error) {
	callerID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Users.UpdateProfile(ctx, callerID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: *user}, nil
}

func (s *Server) handleListUserQuestions(ctx context.Context, input *UserItemsInput) (*QuestionsPageOutput, error) {
	page, err := s.services.Questions.ListByAuthor(ctx, input.ID, input.listParams())
	if err != nil {
		return nil, err
	}
	return &QuestionsPageOutput{Body: *page}, nil
}

func (s *Server) handleListUserAnswers(ctx context.Context, input *UserItemsInput) (*AnswersPageOutput, error) {
	page, err := s.services.Answers.ListByAuthor(ctx, input.ID, input.listParams())
	if err != nil {
		return nil, err
	}
	return &AnswersPageOutput{Body: *page}, nil
}
