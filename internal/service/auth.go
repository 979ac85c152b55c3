// Package service contains the application's business logic, one
// service per domain area. Services validate input, enforce
// authorization, and orchestrate the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/devflowhq/devflow-server/internal/auth"
	"github.com/devflowhq/devflow-server/internal/domain"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
	"github.com/devflowhq/devflow-server/internal/id"
	"github.com/devflowhq/devflow-server/internal/store"
	"github.com/devflowhq/devflow-server/internal/validation"
)

// AuthService handles sign-up and sign-in for both credentials and
// OAuth providers.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(st store.Store, tokenService *auth.TokenService, validator *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        st,
		tokenService: tokenService,
		validator:    validator,
		logger:       logger,
	}
}

// SignUpRequest contains credentials registration data.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// SignInRequest contains credentials sign-in data.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OAuthSignInRequest contains the identity asserted by an OAuth provider.
// The provider's assertion is trusted; the caller has already completed
// the OAuth dance.
type OAuthSignInRequest struct {
	Provider          string `json:"provider" validate:"required,oneof=github google"`
	ProviderAccountID string `json:"provider_account_id" validate:"required"`
	Name              string `json:"name" validate:"required,max=100"`
	Username          string `json:"username" validate:"required,min=3,max=50"`
	Email             string `json:"email" validate:"required,email"`
	Image             string `json:"image" validate:"omitempty,url"`
}

// AuthResponse contains the access token and the signed-in user.
type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"` // Seconds until the token expires
}

// SignUp registers a new user with email and password. The user row
// and its credentials account are created together; a duplicate email
// or username rejects the whole sign-up.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        userID,
		Name:      req.Name,
		Username:  req.Username,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("username or email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	accountID, err := id.Generate("acc")
	if err != nil {
		return nil, fmt.Errorf("generate account ID: %w", err)
	}
	account := &domain.Account{
		ID:                accountID,
		UserID:            userID,
		Name:              req.Name,
		Provider:          domain.ProviderCredentials,
		ProviderAccountID: strings.ToLower(req.Email),
		PasswordHash:      passwordHash,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("account already exists for this email")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("user signed up", "user_id", userID, "username", req.Username)

	return s.issueToken(user)
}

// SignIn authenticates with email and password. A wrong email and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	account, err := s.store.GetAccountByProvider(ctx, domain.ProviderCredentials, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}

	ok, err := auth.VerifyPassword(account.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.Warn("failed sign-in attempt", "email", req.Email)
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	user, err := s.store.GetUser(ctx, account.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	s.logger.Info("user signed in", "user_id", user.ID)

	return s.issueToken(user)
}

// SignInWithOAuth signs a user in through a provider identity,
// creating the user and account on first contact. An existing user
// with the same email gets the new provider linked instead of a
// duplicate user.
func (s *AuthService) SignInWithOAuth(ctx context.Context, req OAuthSignInRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	provider := domain.Provider(req.Provider)

	// Fast path: the provider identity is already linked.
	account, err := s.store.GetAccountByProvider(ctx, provider, req.ProviderAccountID)
	if err == nil {
		user, err := s.store.GetUser(ctx, account.UserID)
		if err != nil {
			return nil, fmt.Errorf("load user: %w", err)
		}
		s.logger.Info("oauth sign-in", "user_id", user.ID, "provider", req.Provider)
		return s.issueToken(user)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, fmt.Errorf("look up account: %w", err)
	}

	// Link to an existing user by email, or create a fresh one.
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, domainerrors.ErrNotFound) {
		user, err = s.createOAuthUser(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	accountID, err := id.Generate("acc")
	if err != nil {
		return nil, fmt.Errorf("generate account ID: %w", err)
	}
	account = &domain.Account{
		ID:                accountID,
		UserID:            user.ID,
		Name:              req.Name,
		Provider:          provider,
		ProviderAccountID: req.ProviderAccountID,
		Image:             req.Image,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.CreateAccount(ctx, account); err != nil && !errors.Is(err, domainerrors.ErrAlreadyExists) {
		return nil, fmt.Errorf("link account: %w", err)
	}

	s.logger.Info("oauth sign-in", "user_id", user.ID, "provider", req.Provider)

	return s.issueToken(user)
}

// createOAuthUser registers a user from a provider assertion. Username
// collisions get a random suffix instead of failing the sign-in.
func (s *AuthService) createOAuthUser(ctx context.Context, req OAuthSignInRequest) (*domain.User, error) {
	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        userID,
		Name:      req.Name,
		Username:  req.Username,
		Email:     req.Email,
		Image:     req.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.CreateUser(ctx, user)
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		suffix, serr := id.Generate("")
		if serr != nil {
			return nil, fmt.Errorf("generate username suffix: %w", serr)
		}
		user.Username = req.Username + suffix[1:6]
		err = s.store.CreateUser(ctx, user)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResponse, error) {
	token, err := s.tokenService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &AuthResponse{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.tokenService.AccessTokenDuration().Seconds()),
	}, nil
}
