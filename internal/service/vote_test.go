package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/store"
)

func TestVoteLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := signUpTestUser(t, env, "ada")
	q := askTestQuestion(t, env, u.ID)

	upvote := VoteRequest{TargetID: q.ID, TargetType: "question", VoteType: "upvote"}

	// Cast.
	status, err := env.votes.Vote(ctx, u.ID, upvote)
	require.NoError(t, err)
	assert.True(t, status.HasUpvoted)
	assert.False(t, status.HasDownvoted)

	got, err := env.questions.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Upvotes)

	// Switch.
	status, err = env.votes.Vote(ctx, u.ID, VoteRequest{TargetID: q.ID, TargetType: "question", VoteType: "downvote"})
	require.NoError(t, err)
	assert.False(t, status.HasUpvoted)
	assert.True(t, status.HasDownvoted)

	got, err = env.questions.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Upvotes)
	assert.Equal(t, int64(1), got.Downvotes)

	// Retract by repeating.
	status, err = env.votes.Vote(ctx, u.ID, VoteRequest{TargetID: q.ID, TargetType: "question", VoteType: "downvote"})
	require.NoError(t, err)
	assert.False(t, status.HasUpvoted)
	assert.False(t, status.HasDownvoted)

	got, err = env.questions.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Upvotes)
	assert.Equal(t, int64(0), got.Downvotes)
}

func TestVoteRetractionNotLoggedAsCast(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := signUpTestUser(t, env, "ada")
	q := askTestQuestion(t, env, u.ID)

	up := VoteRequest{TargetID: q.ID, TargetType: "question", VoteType: "upvote"}
	down := VoteRequest{TargetID: q.ID, TargetType: "question", VoteType: "downvote"}

	// Cast, retract by repeating, then cast the other way.
	_, err := env.votes.Vote(ctx, u.ID, up)
	require.NoError(t, err)
	_, err = env.votes.Vote(ctx, u.ID, up)
	require.NoError(t, err)
	_, err = env.votes.Vote(ctx, u.ID, down)
	require.NoError(t, err)

	page, err := env.store.ListInteractionsByUser(ctx, u.ID, store.DefaultListParams())
	require.NoError(t, err)

	var upvotes, downvotes int
	for _, in := range page.Items {
		switch in.Action {
		case domain.ActionUpvote:
			upvotes++
		case domain.ActionDownvote:
			downvotes++
		}
	}
	// The retraction must not appear as a second upvote.
	assert.Equal(t, 1, upvotes)
	assert.Equal(t, 1, downvotes)
}

func TestVoteOnAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := signUpTestUser(t, env, "ada")
	q := askTestQuestion(t, env, u.ID)
	a, err := env.answers.Create(ctx, u.ID, q.ID, CreateAnswerRequest{
		Content: "Use interfaces at consumption sites, return concrete types.",
	})
	require.NoError(t, err)

	status, err := env.votes.Vote(ctx, u.ID, VoteRequest{TargetID: a.ID, TargetType: "answer", VoteType: "upvote"})
	require.NoError(t, err)
	assert.True(t, status.HasUpvoted)

	got, err := env.answers.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Upvotes)
}

func TestVoteValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := signUpTestUser(t, env, "ada")

	_, err := env.votes.Vote(ctx, u.ID, VoteRequest{TargetID: "x", TargetType: "post", VoteType: "upvote"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.votes.Vote(ctx, u.ID, VoteRequest{TargetID: "x", TargetType: "question", VoteType: "sideways"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestVoteMissingTarget(t *testing.T) {
	env := newTestEnv(t)

	u := signUpTestUser(t, env, "ada")

	_, err := env.votes.Vote(context.Background(), u.ID, VoteRequest{
		TargetID: "missing", TargetType: "question", VoteType: "upvote",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVoteStatusForOtherUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	voter := signUpTestUser(t, env, "ada")
	watcher := signUpTestUser(t, env, "grace")
	q := askTestQuestion(t, env, voter.ID)

	_, err := env.votes.Vote(ctx, voter.ID, VoteRequest{TargetID: q.ID, TargetType: "question", VoteType: "upvote"})
	require.NoError(t, err)

	status, err := env.votes.Status(ctx, watcher.ID, q.ID, domain.TargetQuestion)
	require.NoError(t, err)
	assert.False(t, status.HasUpvoted, "votes are per user")
	assert.False(t, status.HasDownvoted)
}
