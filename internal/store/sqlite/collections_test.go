package sqlite

import (
	"context"
	"errors"
	"testing"

	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/store"
)

func TestToggleSavedQuestionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")
	mustCreateQuestion(t, s, "q1", u.ID)

	saved, err := s.ToggleSavedQuestion(ctx, u.ID, "q1")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !saved {
		t.Error("first toggle: expected saved=true")
	}

	has, err := s.HasSavedQuestion(ctx, u.ID, "q1")
	if err != nil {
		t.Fatalf("HasSavedQuestion: %v", err)
	}
	if !has {
		t.Error("expected question to be saved")
	}

	saved, err = s.ToggleSavedQuestion(ctx, u.ID, "q1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if saved {
		t.Error("second toggle: expected saved=false")
	}

	has, err = s.HasSavedQuestion(ctx, u.ID, "q1")
	if err != nil {
		t.Fatalf("HasSavedQuestion: %v", err)
	}
	if has {
		t.Error("expected question to be unsaved after round trip")
	}
	if got := countRows(t, s, "collections", ""); got != 0 {
		t.Errorf("collection rows: got %d, want 0", got)
	}
}

func TestToggleSavedQuestionMissingQuestion(t *testing.T) {
	s := newTestStore(t)

	u := mustCreateUser(t, s, "u1")

	_, err := s.ToggleSavedQuestion(context.Background(), u.ID, "missing")
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleSavedQuestionPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u1 := mustCreateUser(t, s, "u1")
	u2 := mustCreateUser(t, s, "u2")
	mustCreateQuestion(t, s, "q1", u1.ID)

	if _, err := s.ToggleSavedQuestion(ctx, u1.ID, "q1"); err != nil {
		t.Fatalf("toggle u1: %v", err)
	}

	// u2's view is independent of u1's save.
	has, err := s.HasSavedQuestion(ctx, u2.ID, "q1")
	if err != nil {
		t.Fatalf("HasSavedQuestion: %v", err)
	}
	if has {
		t.Error("u2 should not have the question saved")
	}
}

func TestListSavedQuestions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")
	mustCreateQuestion(t, s, "q1", u.ID, "Go")
	mustCreateQuestion(t, s, "q2", u.ID, "Rust")
	mustCreateQuestion(t, s, "q3", u.ID)

	if _, err := s.ToggleSavedQuestion(ctx, u.ID, "q1"); err != nil {
		t.Fatalf("save q1: %v", err)
	}
	if _, err := s.ToggleSavedQuestion(ctx, u.ID, "q2"); err != nil {
		t.Fatalf("save q2: %v", err)
	}

	page, err := s.ListSavedQuestions(ctx, u.ID, store.ListParams{})
	if err != nil {
		t.Fatalf("ListSavedQuestions: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(page.Items))
	}
	if page.Total != 2 {
		t.Errorf("total: got %d, want 2", page.Total)
	}
	// Tags ride along on saved listings.
	for _, q := range page.Items {
		if q.ID == "q1" && len(q.Tags) != 1 {
			t.Errorf("q1 tags: got %d, want 1", len(q.Tags))
		}
	}
}

func TestListSavedQuestionsQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")
	q1 := makeTestQuestion("q1", u.ID)
	q1.Title = "Goroutine leaks in production"
	if err := s.CreateQuestion(ctx, q1, nil); err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	mustCreateQuestion(t, s, "q2", u.ID)

	if _, err := s.ToggleSavedQuestion(ctx, u.ID, "q1"); err != nil {
		t.Fatalf("save q1: %v", err)
	}
	if _, err := s.ToggleSavedQuestion(ctx, u.ID, "q2"); err != nil {
		t.Fatalf("save q2: %v", err)
	}

	page, err := s.ListSavedQuestions(ctx, u.ID, store.ListParams{Query: "leaks"})
	if err != nil {
		t.Fatalf("ListSavedQuestions: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "q1" {
		t.Errorf("query: got %d items, want just q1", len(page.Items))
	}
}
