package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/devflowhq/devflow-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "signUp",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/sign-up",
		Summary:     "Sign up",
		Description: "Registers a new user with email and password",
		Tags:        []string{"Auth"},
	}, s.handleSignUp)

	huma.Register(s.api, huma.Operation{
		OperationID: "signIn",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/sign-in",
		Summary:     "Sign in",
		Description: "Authenticates with email and password",
		Tags:        []string{"Auth"},
	}, s.handleSignIn)

	huma.Register(s.api, huma.Operation{
		OperationID: "oauthSignIn",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/oauth",
		Summary:     "OAuth sign in",
		Description: "Signs in through a provider identity, creating the user on first contact",
		Tags:        []string{"Auth"},
	}, s.handleOAuthSignIn)
}

// === DTOs ===

// SignUpInput wraps the sign-up request for Huma.
type SignUpInput struct {
	Body service.SignUpRequest
}

// SignInInput wraps the sign-in request for Huma.
type SignInInput struct {
	Body service.SignInRequest
}

// OAuthSignInInput wraps the OAuth sign-in request for Huma.
type OAuthSignInInput struct {
	Body service.OAuthSignInRequest
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body service.AuthResponse
}

// === Handlers ===

func (s *Server) handleSignUp(ctx context.Context, input *SignUpInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.SignUp(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: *resp}, nil
}

func (s *Server) handleSignIn(ctx context.Context, input *SignInInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.SignIn(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: *resp}, nil
}

func (s *Server) handleOAuthSignIn(ctx context.Context, input *OAuthSignInInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.SignInWithOAuth(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: *resp}, nil
}
