package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devflowhq/devflow-server/internal/auth"
	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/store"
	"github.com/devflowhq/devflow-server/internal/store/sqlite"
	"github.com/devflowhq/devflow-server/internal/validation"
)

const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// testEnv bundles the services under test, all backed by one
// temporary SQLite store.
type testEnv struct {
	store       store.Store
	auth        *AuthService
	questions   *QuestionService
	answers     *AnswerService
	votes       *VoteService
	collections *CollectionService
	tags        *TagService
	users       *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	logger := slog.New(slog.DiscardHandler)
	v := validation.New()

	tokenService, err := auth.NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	return &testEnv{
		store:       s,
		auth:        NewAuthService(s, tokenService, v, logger),
		questions:   NewQuestionService(s, v, logger),
		answers:     NewAnswerService(s, v, logger),
		votes:       NewVoteService(s, v, logger),
		collections: NewCollectionService(s, logger),
		tags:        NewTagService(s, logger),
		users:       NewUserService(s, v, logger),
	}
}

// signUpTestUser registers a user through the auth service and returns it.
func signUpTestUser(t *testing.T, env *testEnv, username string) *domain.User {
	t.Helper()

	resp, err := env.auth.SignUp(context.Background(), SignUpRequest{
		Name:     "Test " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	return resp.User
}

// askTestQuestion posts a valid question and returns it.
func askTestQuestion(t *testing.T, env *testEnv, authorID string, tags ...string) *domain.Question {
	t.Helper()

	if len(tags) == 0 {
		tags = []string{"go"}
	}
	q, err := env.questions.Create(context.Background(), authorID, CreateQuestionRequest{
		Title:   "How do I structure a Go service layer?",
		Content: "I keep mixing transport and business logic. What is the idiomatic split?",
		Tags:    tags,
	})
	require.NoError(t, err)
	return q
}
