package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/store"
)

func TestCreateAnswerBumpsQuestionCounter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")
	mustCreateQuestion(t, s, "q1", u.ID)

	mustCreateAnswer(t, s, "a1", u.ID, "q1")
	mustCreateAnswer(t, s, "a2", u.ID, "q1")

	q, err := s.GetQuestion(ctx, "q1")
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if q.Answers != 2 {
		t.Errorf("Answers: got %d, want 2", q.Answers)
	}

	got, err := s.GetAnswer(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAnswer: %v", err)
	}
	if got.QuestionID != "q1" {
		t.Errorf("QuestionID: got %q, want q1", got.QuestionID)
	}
}

func TestCreateAnswerMissingQuestion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")

	now := time.Now()
	a := &domain.Answer{
		ID:         "a1",
		AuthorID:   u.ID,
		QuestionID: "missing",
		Content:    "Answering the void.",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.CreateAnswer(ctx, a)
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := countRows(t, s, "answers", ""); got != 0 {
		t.Errorf("answer rows: got %d, want 0", got)
	}
}

func TestListAnswersByQuestionFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")
	mustCreateQuestion(t, s, "q1", u.ID)
	mustCreateAnswer(t, s, "a1", u.ID, "q1")
	mustCreateAnswer(t, s, "a2", u.ID, "q1")

	if _, err := s.db.Exec(`UPDATE answers SET upvotes = 5 WHERE id = 'a1'`); err != nil {
		t.Fatalf("seed upvotes: %v", err)
	}

	popular, err := s.ListAnswersByQuestion(ctx, "q1", store.ListParams{Filter: "popular"})
	if err != nil {
		t.Fatalf("ListAnswersByQuestion popular: %v", err)
	}
	if popular.Items[0].ID != "a1" {
		t.Errorf("popular first: got %q, want a1", popular.Items[0].ID)
	}

	oldest, err := s.ListAnswersByQuestion(ctx, "q1", store.ListParams{Filter: "oldest"})
	if err != nil {
		t.Fatalf("ListAnswersByQuestion oldest: %v", err)
	}
	if len(oldest.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(oldest.Items))
	}
	if oldest.Total != 2 {
		t.Errorf("total: got %d, want 2", oldest.Total)
	}
}

func TestListAnswersByAuthor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")
	other := mustCreateUser(t, s, "u2")
	mustCreateQuestion(t, s, "q1", u.ID)
	mustCreateAnswer(t, s, "a1", u.ID, "q1")
	mustCreateAnswer(t, s, "a2", other.ID, "q1")

	page, err := s.ListAnswersByAuthor(ctx, u.ID, store.ListParams{})
	if err != nil {
		t.Fatalf("ListAnswersByAuthor: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "a1" {
		t.Errorf("by author: got %d items, want just a1", len(page.Items))
	}
}

func TestCreateAnswerRollsBackOnFault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")
	mustCreateQuestion(t, s, "q1", u.ID)

	withCommitFault(t, s)

	now := time.Now()
	a := &domain.Answer{
		ID:         "a1",
		AuthorID:   u.ID,
		QuestionID: "q1",
		Content:    "Should not persist.",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.CreateAnswer(ctx, a)
	if !errors.Is(err, injectedErr) {
		t.Fatalf("expected injected fault, got %v", err)
	}

	// Neither the answer nor the counter bump survived.
	if got := countRows(t, s, "answers", ""); got != 0 {
		t.Errorf("answer rows: got %d, want 0", got)
	}
	q, err := s.GetQuestion(ctx, "q1")
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if q.Answers != 0 {
		t.Errorf("Answers: got %d, want 0", q.Answers)
	}
}

func TestGetAnswerNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAnswer(context.Background(), "missing")
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
