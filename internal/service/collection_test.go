package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/store"
)

func TestToggleSaveRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := signUpTestUser(t, env, "ada")
	q := askTestQuestion(t, env, u.ID)

	saved, err := env.collections.ToggleSave(ctx, u.ID, q.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	has, err := env.collections.HasSaved(ctx, u.ID, q.ID)
	require.NoError(t, err)
	assert.True(t, has)

	saved, err = env.collections.ToggleSave(ctx, u.ID, q.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	has, err = env.collections.HasSaved(ctx, u.ID, q.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestToggleSaveMissingQuestion(t *testing.T) {
	env := newTestEnv(t)

	u := signUpTestUser(t, env, "ada")

	_, err := env.collections.ToggleSave(context.Background(), u.ID, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestListSaved(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := signUpTestUser(t, env, "ada")
	q1 := askTestQuestion(t, env, u.ID, "go")
	q2 := askTestQuestion(t, env, u.ID, "rust")
	askTestQuestion(t, env, u.ID, "zig") // not saved

	_, err := env.collections.ToggleSave(ctx, u.ID, q1.ID)
	require.NoError(t, err)
	_, err = env.collections.ToggleSave(ctx, u.ID, q2.ID)
	require.NoError(t, err)

	page, err := env.collections.ListSaved(ctx, u.ID, store.ListParams{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)
}

func TestUserProfileStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := signUpTestUser(t, env, "ada")
	q := askTestQuestion(t, env, u.ID, "go", "testing")
	askTestQuestion(t, env, u.ID, "go")
	_, err := env.answers.Create(ctx, u.ID, q.ID, CreateAnswerRequest{
		Content: "Answering my own question after figuring it out.",
	})
	require.NoError(t, err)

	profile, err := env.users.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Questions)
	assert.Equal(t, 1, profile.Answers)
	require.NotEmpty(t, profile.TopTags)
	assert.Equal(t, "go", profile.TopTags[0].Name)
}

func TestUpdateProfileSelfOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ada := signUpTestUser(t, env, "ada")
	mallory := signUpTestUser(t, env, "mallory")

	req := UpdateProfileRequest{
		Name:     "Ada Lovelace",
		Username: "ada",
		Bio:      "First programmer.",
	}

	_, err := env.users.UpdateProfile(ctx, mallory.ID, ada.ID, req)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := env.users.UpdateProfile(ctx, ada.ID, ada.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "First programmer.", updated.Bio)
}
