// Package store defines the persistence interface for the DevFlow server.
// The SQLite implementation lives in store/sqlite.
package store

import (
	"context"

	"github.com/devflowhq/devflow-server/internal/domain"
)

// Store is the persistence surface consumed by the service layer.
//
// Every mutating method that touches more than one row runs in a single
// transaction: either all of its writes commit or none do. Counter
// fields (votes, answers, views, tag question counts) are only ever
// mutated with atomic in-database increments, never read-modify-write.
type Store interface {
	// Users and accounts
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	ListUsers(ctx context.Context, params ListParams) (*Page[*domain.User], error)
	CountQuestionsByAuthor(ctx context.Context, authorID string) (int, error)
	CountAnswersByAuthor(ctx context.Context, authorID string) (int, error)

	CreateAccount(ctx context.Context, a *domain.Account) error
	GetAccountByProvider(ctx context.Context, provider domain.Provider, providerAccountID string) (*domain.Account, error)

	// Questions (tag reconciliation happens inside Create/Update)
	CreateQuestion(ctx context.Context, q *domain.Question, tagNames []string) error
	GetQuestion(ctx context.Context, questionID string) (*domain.Question, error)
	UpdateQuestion(ctx context.Context, q *domain.Question, tagNames []string) error
	ListQuestions(ctx context.Context, params ListParams) (*Page[*domain.Question], error)
	ListQuestionsByAuthor(ctx context.Context, authorID string, params ListParams) (*Page[*domain.Question], error)
	ListQuestionsByTag(ctx context.Context, tagID string, params ListParams) (*Page[*domain.Question], error)
	IncrementQuestionViews(ctx context.Context, questionID string) (int64, error)

	// Answers
	CreateAnswer(ctx context.Context, a *domain.Answer) error
	GetAnswer(ctx context.Context, answerID string) (*domain.Answer, error)
	ListAnswersByQuestion(ctx context.Context, questionID string, params ListParams) (*Page[*domain.Answer], error)
	ListAnswersByAuthor(ctx context.Context, authorID string, params ListParams) (*Page[*domain.Answer], error)

	// Votes
	CreateVote(ctx context.Context, v *domain.Vote) error
	GetVoteStatus(ctx context.Context, authorID, targetID string, targetType domain.TargetType) (domain.VoteStatus, error)

	// Saved questions
	ToggleSavedQuestion(ctx context.Context, userID, questionID string) (saved bool, err error)
	HasSavedQuestion(ctx context.Context, userID, questionID string) (bool, error)
	ListSavedQuestions(ctx context.Context, userID string, params ListParams) (*Page[*domain.Question], error)

	// Tags
	GetTag(ctx context.Context, tagID string) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	ListTags(ctx context.Context, params ListParams) (*Page[*domain.Tag], error)
	ListUserTopTags(ctx context.Context, userID string, limit int) ([]*domain.Tag, error)

	// Interactions
	CreateInteraction(ctx context.Context, in *domain.Interaction) error
	ListInteractionsByUser(ctx context.Context, userID string, params ListParams) (*Page[*domain.Interaction], error)

	Close() error
}
