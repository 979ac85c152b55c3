package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/id"
	"github.com/devflowhq/devflow-server/internal/normalize"
	"github.com/devflowhq/devflow-server/internal/store"
	"github.com/devflowhq/devflow-server/internal/validation"
)

// QuestionService orchestrates question creation, editing, and listing.
type QuestionService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewQuestionService creates a new question service.
func NewQuestionService(st store.Store, validator *validation.Validator, logger *slog.Logger) *QuestionService {
	return &QuestionService{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// CreateQuestionRequest contains the fields for a new question.
type CreateQuestionRequest struct {
	Title   string   `json:"title" validate:"required,min=5,max=130"`
	Content string   `json:"content" validate:"required,min=20"`
	Tags    []string `json:"tags" validate:"required,min=1,max=3,dive,required,min=1,max=30"`
}

// UpdateQuestionRequest contains the fields for editing a question.
type UpdateQuestionRequest struct {
	Title   string   `json:"title" validate:"required,min=5,max=130"`
	Content string   `json:"content" validate:"required,min=20"`
	Tags    []string `json:"tags" validate:"required,min=1,max=3,dive,required,min=1,max=30"`
}

// Create posts a new question on behalf of authorID. The question, its
// tags, and the tag links land atomically.
func (s *QuestionService) Create(ctx context.Context, authorID string, req CreateQuestionRequest) (*domain.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	questionID, err := id.Generate("q")
	if err != nil {
		return nil, fmt.Errorf("generate question ID: %w", err)
	}

	now := time.Now().UTC()
	q := &domain.Question{
		ID:        questionID,
		AuthorID:  authorID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateQuestion(ctx, q, req.Tags); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	s.recordInteraction(ctx, authorID, domain.ActionPost, q.ID, domain.TargetQuestion)
	s.logger.Info("question created", "question_id", q.ID, "author_id", authorID, "tags", len(q.Tags))

	return q, nil
}

// Update edits a question's title, content, and tags. Only the author
// may edit; the tag set is reconciled atomically with the text change.
func (s *QuestionService) Update(ctx context.Context, userID, questionID string, req UpdateQuestionRequest) (*domain.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != userID {
		return nil, domainerrors.Forbidden("only the author can edit this question")
	}

	// An edit that changes nothing is not written, so updated_at only
	// moves on real changes.
	if existing.Title == req.Title && existing.Content == req.Content && tagsUnchanged(existing.Tags, req.Tags) {
		return existing, nil
	}

	existing.Title = req.Title
	existing.Content = req.Content
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateQuestion(ctx, existing, req.Tags); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}

	s.logger.Info("question updated", "question_id", questionID, "author_id", userID)

	return existing, nil
}

// Get returns a question by ID.
func (s *QuestionService) Get(ctx context.Context, questionID string) (*domain.Question, error) {
	return s.store.GetQuestion(ctx, questionID)
}

// RecordView bumps a question's view counter and returns the new
// count. The viewer's interaction is recorded best-effort when known.
func (s *QuestionService) RecordView(ctx context.Context, viewerID, questionID string) (int64, error) {
	views, err := s.store.IncrementQuestionViews(ctx, questionID)
	if err != nil {
		return 0, err
	}

	if viewerID != "" {
		s.recordInteraction(ctx, viewerID, domain.ActionView, questionID, domain.TargetQuestion)
	}

	return views, nil
}

// List returns a page of questions.
func (s *QuestionService) List(ctx context.Context, params store.ListParams) (*store.Page[*domain.Question], error) {
	return s.store.ListQuestions(ctx, params)
}

// ListByAuthor returns a page of a user's questions.
func (s *QuestionService) ListByAuthor(ctx context.Context, authorID string, params store.ListParams) (*store.Page[*domain.Question], error) {
	return s.store.ListQuestionsByAuthor(ctx, authorID, params)
}

// tagsUnchanged reports whether the requested tag names match the
// question's current tags, position by position, under the same
// case-insensitive identity the store uses.
func tagsUnchanged(current []domain.Tag, requested []string) bool {
	if len(current) != len(requested) {
		return false
	}
	for i, name := range requested {
		if normalize.TagKey(name) != normalize.TagKey(current[i].Name) {
			return false
		}
	}
	return true
}

// recordInteraction appends an activity record, logging but never
// propagating failures.
func (s *QuestionService) recordInteraction(ctx context.Context, userID string, action domain.InteractionAction, targetID string, targetType domain.TargetType) {
	recordInteraction(ctx, s.store, s.logger, userID, action, targetID, targetType)
}

// recordInteraction is the shared best-effort interaction writer used
// by every service.
func recordInteraction(ctx context.Context, st store.Store, logger *slog.Logger, userID string, action domain.InteractionAction, targetID string, targetType domain.TargetType) {
	interactionID, err := id.Generate("int")
	if err != nil {
		logger.Warn("skip interaction: id generation failed", "error", err)
		return
	}
	in := &domain.Interaction{
		ID:         interactionID,
		UserID:     userID,
		Action:     action,
		TargetID:   targetID,
		TargetType: targetType,
		CreatedAt:  time.Now().UTC(),
	}
	if err := st.CreateInteraction(ctx, in); err != nil {
		logger.Warn("failed to record interaction", "action", string(action), "error", err)
	}
}
