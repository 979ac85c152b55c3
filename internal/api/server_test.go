package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devflowhq/devflow-server/internal/auth"
	"github.com/devflowhq/devflow-server/internal/config"
	"github.com/devflowhq/devflow-server/internal/service"
	"github.com/devflowhq/devflow-server/internal/store"
	"github.com/devflowhq/devflow-server/internal/store/sqlite"
	"github.com/devflowhq/devflow-server/internal/validation"
)

const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// testServer wraps the API server with a humatest client and direct
// store access for seeding.
type testServer struct {
	*Server
	api   humatest.TestAPI
	store store.Store
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{
			Name:        "Test Server",
			CORSOrigins: []string{"*"},
			RateLimit:   1000,
			RateBurst:   1000,
		},
		Auth: config.AuthConfig{
			AccessTokenKey:      testKeyHex,
			AccessTokenDuration: time.Hour,
		},
	}

	tokenService, err := auth.NewTokenService(cfg.Auth.AccessTokenKey, cfg.Auth.AccessTokenDuration)
	require.NoError(t, err)

	v := validation.New()
	services := &Services{
		Auth:        service.NewAuthService(st, tokenService, v, logger),
		Questions:   service.NewQuestionService(st, v, logger),
		Answers:     service.NewAnswerService(st, v, logger),
		Votes:       service.NewVoteService(st, v, logger),
		Collections: service.NewCollectionService(st, logger),
		Tags:        service.NewTagService(st, logger),
		Users:       service.NewUserService(st, v, logger),
	}

	s := NewServer(cfg, services, tokenService, logger)
	t.Cleanup(s.Close)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		store:  st,
	}
}

// signUp registers a user through the API and returns the token and user ID.
func (ts *testServer) signUp(t *testing.T, username string) (token string, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/sign-up", map[string]any{
		"name":     "Test " + username,
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, resp.Code, "sign-up failed: %s", resp.Body.String())

	var body service.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	require.NotNil(t, body.User)

	return body.AccessToken, body.User.ID
}

// askQuestion posts a question through the API and returns its ID.
func (ts *testServer) askQuestion(t *testing.T, token, title string, tags ...string) string {
	t.Helper()

	if len(tags) == 0 {
		tags = []string{"go"}
	}
	resp := ts.api.Post("/api/v1/questions",
		map[string]any{
			"title":   title,
			"content": "A question body long enough to pass validation.",
			"tags":    tags,
		},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, "create question failed: %s", resp.Body.String())

	var q struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &q))
	require.NotEmpty(t, q.ID)
	return q.ID
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
}

func TestSignUpAndSignIn(t *testing.T) {
	ts := setupTestServer(t)

	token, userID := ts.signUp(t, "gopher")
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, userID)

	resp := ts.api.Post("/api/v1/auth/sign-in", map[string]any{
		"email":    "gopher@example.com",
		"password": "correct-horse-battery",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var body service.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, userID, body.User.ID)
	assert.NotEmpty(t, body.AccessToken)
}

func TestSignInWrongPassword(t *testing.T) {
	ts := setupTestServer(t)
	ts.signUp(t, "gopher")

	resp := ts.api.Post("/api/v1/auth/sign-in", map[string]any{
		"email":    "gopher@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	ts.signUp(t, "gopher")

	resp := ts.api.Post("/api/v1/auth/sign-up", map[string]any{
		"name":     "Other",
		"username": "other",
		"email":    "GOPHER@example.com",
		"password": "correct-horse-battery",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestAuthRequired(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/questions", map[string]any{
		"title":   "A question without a token attached",
		"content": "A question body long enough to pass validation.",
		"tags":    []string{"go"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/v1/questions",
		map[string]any{
			"title":   "A question with a garbage token",
			"content": "A question body long enough to pass validation.",
			"tags":    []string{"go"},
		},
		"Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
