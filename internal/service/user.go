package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/store"
	"github.com/devflowhq/devflow-server/internal/validation"
)

// UserService manages community member profiles.
type UserService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(st store.Store, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// UpdateProfileRequest contains the editable profile fields.
type UpdateProfileRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Username  string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Bio       string `json:"bio" validate:"max=500"`
	Location  string `json:"location" validate:"max=100"`
	Portfolio string `json:"portfolio" validate:"omitempty,url"`
	Image     string `json:"image" validate:"omitempty,url"`
}

// Profile is a user together with their activity stats.
type Profile struct {
	User      *domain.User  `json:"user"`
	Questions int           `json:"questions"`
	Answers   int           `json:"answers"`
	TopTags   []*domain.Tag `json:"top_tags"`
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.GetUser(ctx, userID)
}

// GetProfile returns a user with question/answer counts and their
// most-used tags.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	questions, err := s.store.CountQuestionsByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	answers, err := s.store.CountAnswersByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}
	topTags, err := s.store.ListUserTopTags(ctx, userID, 3)
	if err != nil {
		return nil, fmt.Errorf("list top tags: %w", err)
	}

	return &Profile{
		User:      user,
		Questions: questions,
		Answers:   answers,
		TopTags:   topTags,
	}, nil
}

// UpdateProfile edits the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, userID string, req UpdateProfileRequest) (*domain.User, error) {
	if callerID != userID {
		return nil, domainerrors.Forbidden("cannot edit another user's profile")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Username = req.Username
	user.Bio = req.Bio
	user.Location = req.Location
	user.Portfolio = req.Portfolio
	user.Image = req.Image
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("username already in use")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("profile updated", "user_id", userID)

	return user, nil
}

// List returns a page of community members.
func (s *UserService) List(ctx context.Context, params store.ListParams) (*store.Page[*domain.User], error) {
	return s.store.ListUsers(ctx, params)
}
