package service

import (
	"context"
	"log/slog"

	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/store"
)

// CollectionService manages each user's saved questions.
type CollectionService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(st store.Store, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		store:  st,
		logger: logger,
	}
}

// ToggleSave flips whether the question is in the user's collection
// and reports the resulting state.
func (s *CollectionService) ToggleSave(ctx context.Context, userID, questionID string) (bool, error) {
	saved, err := s.store.ToggleSavedQuestion(ctx, userID, questionID)
	if err != nil {
		return false, err
	}

	if saved {
		recordInteraction(ctx, s.store, s.logger, userID, domain.ActionSave, questionID, domain.TargetQuestion)
	}

	s.logger.Info("save toggled", "user_id", userID, "question_id", questionID, "saved", saved)

	return saved, nil
}

// HasSaved reports whether the user has the question saved.
func (s *CollectionService) HasSaved(ctx context.Context, userID, questionID string) (bool, error) {
	return s.store.HasSavedQuestion(ctx, userID, questionID)
}

// ListSaved returns a page of the user's saved questions.
func (s *CollectionService) ListSaved(ctx context.Context, userID string, params store.ListParams) (*store.Page[*domain.Question], error) {
	return s.store.ListSavedQuestions(ctx, userID, params)
}
