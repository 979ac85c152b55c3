package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser("u1")
	u.Bio = "I write Go."
	u.Location = "Berlin"
	u.Portfolio = "https://example.com"
	u.Reputation = 42

	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != u.Name {
		t.Errorf("Name: got %q, want %q", got.Name, u.Name)
	}
	if got.Username != u.Username {
		t.Errorf("Username: got %q, want %q", got.Username, u.Username)
	}
	if got.Email != u.Email {
		t.Errorf("Email: got %q, want %q", got.Email, u.Email)
	}
	if got.Bio != u.Bio {
		t.Errorf("Bio: got %q, want %q", got.Bio, u.Bio)
	}
	if got.Reputation != 42 {
		t.Errorf("Reputation: got %d, want 42", got.Reputation)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "missing")
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "u1")

	dup := makeTestUser("u2")
	dup.Email = "U1@Example.COM" // same email, different case
	err := s.CreateUser(ctx, dup)
	if !errors.Is(err, domainerrors.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "u1")

	dup := makeTestUser("u2")
	dup.Username = "USER_u1"
	err := s.CreateUser(ctx, dup)
	if !errors.Is(err, domainerrors.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetUserByEmailCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")

	got, err := s.GetUserByEmail(ctx, "U1@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("ID: got %q, want %q", got.ID, u.ID)
	}
	// Original casing survives.
	if got.Email != u.Email {
		t.Errorf("Email: got %q, want %q", got.Email, u.Email)
	}
}

func TestGetUserByUsernameCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")

	got, err := s.GetUserByUsername(ctx, "USER_U1")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("ID: got %q, want %q", got.ID, u.ID)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")
	u.Name = "Renamed"
	u.Bio = "New bio"
	u.UpdatedAt = time.Now()

	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("Name: got %q, want Renamed", got.Name)
	}
	if got.Bio != "New bio" {
		t.Errorf("Bio: got %q, want New bio", got.Bio)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	s := newTestStore(t)

	u := makeTestUser("ghost")
	err := s.UpdateUser(context.Background(), u)
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListUsersPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreateUser(t, s, string(rune('a'+i)))
	}

	page, err := s.ListUsers(ctx, store.ListParams{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("items: got %d, want 2", len(page.Items))
	}
	if page.Total != 5 {
		t.Errorf("total: got %d, want 5", page.Total)
	}
	if !page.IsNext {
		t.Error("expected IsNext on page 1 of 3")
	}

	last, err := s.ListUsers(ctx, store.ListParams{Page: 3, PageSize: 2})
	if err != nil {
		t.Fatalf("ListUsers page 3: %v", err)
	}
	if len(last.Items) != 1 {
		t.Errorf("last page items: got %d, want 1", len(last.Items))
	}
	if last.IsNext {
		t.Error("expected no IsNext on the last page")
	}
}

func TestListUsersQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := makeTestUser("u1")
	alice.Name = "Alice Cooper"
	alice.Username = "alice"
	if err := s.CreateUser(ctx, alice); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	bob := makeTestUser("u2")
	bob.Name = "Bob Dylan"
	bob.Username = "bob"
	if err := s.CreateUser(ctx, bob); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	page, err := s.ListUsers(ctx, store.ListParams{Query: "Alice"})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("items: got %d, want 1", len(page.Items))
	}
	if page.Items[0].ID != "u1" {
		t.Errorf("item: got %q, want u1", page.Items[0].ID)
	}
}

func TestCountsByAuthor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "u1")
	other := mustCreateUser(t, s, "u2")

	mustCreateQuestion(t, s, "q1", u.ID)
	mustCreateQuestion(t, s, "q2", u.ID)
	mustCreateQuestion(t, s, "q3", other.ID)
	mustCreateAnswer(t, s, "a1", u.ID, "q3")

	nq, err := s.CountQuestionsByAuthor(ctx, u.ID)
	if err != nil {
		t.Fatalf("CountQuestionsByAuthor: %v", err)
	}
	if nq != 2 {
		t.Errorf("questions: got %d, want 2", nq)
	}

	na, err := s.CountAnswersByAuthor(ctx, u.ID)
	if err != nil {
		t.Fatalf("CountAnswersByAuthor: %v", err)
	}
	if na != 1 {
		t.Errorf("answers: got %d, want 1", na)
	}
}
