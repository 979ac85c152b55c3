// Package main provides a tool to seed the database with sample data.
//
// It creates a handful of users, questions, answers, and votes so the
// listing and profile endpoints have something to show during development.
//
// Usage:
//
//	DB_PATH=~/DevFlow/devflow.db go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/devflowhq/devflow-server/internal/auth"
	"github.com/devflowhq/devflow-server/internal/domain"
	"github.com/devflowhq/devflow-server/internal/service"
	"github.com/devflowhq/devflow-server/internal/store/sqlite"
	"github.com/devflowhq/devflow-server/internal/validation"
)

type seedQuestion struct {
	title   string
	content string
	tags    []string
}

var seedQuestions = []seedQuestion{
	{
		title:   "How do I cancel a long-running database query?",
		content: "I pass a context with a timeout but the query keeps running on the server after the client gives up. What am I missing?",
		tags:    []string{"go", "database", "context"},
	},
	{
		title:   "What is the idiomatic way to wrap errors with extra context?",
		content: "Should I use fmt.Errorf with %w everywhere, or define my own error types? When does each approach pay off?",
		tags:    []string{"go", "errors"},
	},
	{
		title:   "Why does my JSON response drop zero-valued fields?",
		content: "Some integer fields disappear from my API responses when they are zero. I suspect omitempty but I am not sure how to keep the field without losing the tag.",
		tags:    []string{"go", "json"},
	},
	{
		title:   "How should I structure integration tests against SQLite?",
		content: "I want each test to get a clean database without mocking the storage layer. Is a temp file per test reasonable, or should tests share one database?",
		tags:    []string{"testing", "database"},
	},
	{
		title:   "When is a buffered channel the wrong choice?",
		content: "I keep reaching for buffered channels to avoid goroutine blocking, but reviews keep flagging it. What failure modes should I watch for?",
		tags:    []string{"go", "concurrency"},
	},
}

var seedAnswers = []string{
	"Pass the request context all the way down to the driver call instead of creating a new background context in the storage layer.",
	"Wrap with %w when the caller might inspect the cause, and switch to a typed error once more than one call site needs to branch on it.",
	"Drop omitempty from numeric fields that are meaningful at zero. The tag exists for optional fields, not for every field.",
	"A temp file per test keeps tests independent and still exercises the real driver. Shared databases couple test order to results.",
}

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "DevFlow", "devflow.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	st, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	key, err := auth.LoadOrGenerateKey(filepath.Dir(dbPath))
	if err != nil {
		log.Fatalf("Failed to load auth key: %v", err)
	}
	tokenService, err := auth.NewTokenService(key, time.Hour)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	v := validation.New()
	authService := service.NewAuthService(st, tokenService, v, logger)
	questionService := service.NewQuestionService(st, v, logger)
	answerService := service.NewAnswerService(st, v, logger)
	voteService := service.NewVoteService(st, v, logger)

	ctx := context.Background()

	// Users. Sign-up fails on re-runs once the emails exist, which is fine.
	usernames := []string{"adalovelace", "grace", "kenthompson", "robpike"}
	var userIDs []string
	for _, username := range usernames {
		user, err := st.GetUserByUsername(ctx, username)
		if err == nil {
			userIDs = append(userIDs, user.ID)
			continue
		}

		resp, err := authService.SignUp(ctx, service.SignUpRequest{
			Name:     "Seed " + username,
			Username: username,
			Email:    username + "@devflow.local",
			Password: "seed-password-1234",
		})
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", username, err)
		}
		userIDs = append(userIDs, resp.User.ID)
		fmt.Printf("Created user %s (%s)\n", username, resp.User.ID)
	}

	rng := rand.New(rand.NewSource(42))

	// Questions and answers.
	for _, sq := range seedQuestions {
		authorID := userIDs[rng.Intn(len(userIDs))]

		q, err := questionService.Create(ctx, authorID, service.CreateQuestionRequest{
			Title:   sq.title,
			Content: sq.content,
			Tags:    sq.tags,
		})
		if err != nil {
			log.Fatalf("Failed to create question: %v", err)
		}
		fmt.Printf("Created question %s\n", q.ID)

		// A random subset of the other users answers and votes.
		for _, userID := range userIDs {
			if userID == authorID || rng.Intn(2) == 0 {
				continue
			}

			if _, err := answerService.Create(ctx, userID, q.ID, service.CreateAnswerRequest{
				Content: seedAnswers[rng.Intn(len(seedAnswers))],
			}); err != nil {
				log.Fatalf("Failed to create answer: %v", err)
			}

			voteType := domain.VoteUp
			if rng.Intn(4) == 0 {
				voteType = domain.VoteDown
			}
			if _, err := voteService.Vote(ctx, userID, service.VoteRequest{
				TargetID:   q.ID,
				TargetType: string(domain.TargetQuestion),
				VoteType:   string(voteType),
			}); err != nil {
				log.Fatalf("Failed to vote: %v", err)
			}
		}
	}

	fmt.Println("Seeding complete")
}
