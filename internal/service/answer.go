package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/id"
	"github.com/devflowhq/devflow-server/internal/store"
	"github.com/devflowhq/devflow-server/internal/validation"
)

// AnswerService orchestrates answering questions.
type AnswerService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAnswerService creates a new answer service.
func NewAnswerService(st store.Store, validator *validation.Validator, logger *slog.Logger) *AnswerService {
	return &AnswerService{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// CreateAnswerRequest contains the fields for a new answer.
type CreateAnswerRequest struct {
	Content string `json:"content" validate:"required,min=20"`
}

// Create posts an answer to a question. The answer and the question's
// answer counter move together.
func (s *AnswerService) Create(ctx context.Context, authorID, questionID string, req CreateAnswerRequest) (*domain.Answer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	answerID, err := id.Generate("ans")
	if err != nil {
		return nil, fmt.Errorf("generate answer ID: %w", err)
	}

	now := time.Now().UTC()
	a := &domain.Answer{
		ID:         answerID,
		AuthorID:   authorID,
		QuestionID: questionID,
		Content:    req.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateAnswer(ctx, a); err != nil {
		return nil, err
	}

	recordInteraction(ctx, s.store, s.logger, authorID, domain.ActionPost, a.ID, domain.TargetAnswer)
	s.logger.Info("answer created", "answer_id", a.ID, "question_id", questionID, "author_id", authorID)

	return a, nil
}

// Get returns an answer by ID.
func (s *AnswerService) Get(ctx context.Context, answerID string) (*domain.Answer, error) {
	return s.store.GetAnswer(ctx, answerID)
}

// ListByQuestion returns a page of a question's answers.
func (s *AnswerService) ListByQuestion(ctx context.Context, questionID string, params store.ListParams) (*store.Page[*domain.Answer], error) {
	return s.store.ListAnswersByQuestion(ctx, questionID, params)
}

// ListByAuthor returns a page of a user's answers.
func (s *AnswerService) ListByAuthor(ctx context.Context, authorID string, params store.ListParams) (*store.Page[*domain.Answer], error) {
	return s.store.ListAnswersByAuthor(ctx, authorID, params)
}
