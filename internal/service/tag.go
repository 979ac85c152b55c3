package service

import (
	"context"
	"log/slog"

	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/store"
)

// TagService exposes read access to the community tag vocabulary.
// Tags are only ever written through question create and edit.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(st store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  st,
		logger: logger,
	}
}

// List returns a page of tags.
func (s *TagService) List(ctx context.Context, params store.ListParams) (*store.Page[*domain.Tag], error) {
	return s.store.ListTags(ctx, params)
}

// Get returns a tag by ID.
func (s *TagService) Get(ctx context.Context, tagID string) (*domain.Tag, error) {
	return s.store.GetTag(ctx, tagID)
}

// ListQuestions returns a page of the questions carrying a tag. The
// tag is returned alongside so callers can show its display name.
func (s *TagService) ListQuestions(ctx context.Context, tagID string, params store.ListParams) (*domain.Tag, *store.Page[*domain.Question], error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		return nil, nil, err
	}

	page, err := s.store.ListQuestionsByTag(ctx, tagID, params)
	if err != nil {
		return nil, nil, err
	}

	return tag, page, nil
}
