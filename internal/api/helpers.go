package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/devflowhq/devflow-server/internal/store"
)

// authenticateRequest validates the Authorization header and returns the user ID.
func (s *Server) authenticateRequest(authHeader string) (string, error) {
	if authHeader == "" {
		return "", huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", huma.Error401Unauthorized("Invalid authorization header format")
	}

	claims, err := s.tokenService.VerifyAccessToken(parts[1])
	if err != nil {
		return "", huma.Error401Unauthorized("Invalid or expired token")
	}

	return claims.UserID, nil
}

// optionalAuthenticate returns the user ID from the Authorization
// header, or "" when no valid token is present. Used on read endpoints
// that personalize but do not require sign-in.
func (s *Server) optionalAuthenticate(authHeader string) string {
	userID, err := s.authenticateRequest(authHeader)
	if err != nil {
		return ""
	}
	return userID
}

// ListInput carries the shared pagination, search, and sort query
// parameters used by listing endpoints.
type ListInput struct {
	Page     int    `query:"page" minimum:"0" doc:"1-based page number"`
	PageSize int    `query:"page_size" minimum:"0" maximum:"100" doc:"Items per page (max 100)"`
	Query    string `query:"query" doc:"Substring filter"`
	Filter   string `query:"filter" doc:"Named sort order"`
}

// listParams converts query inputs to store list parameters.
func (in ListInput) listParams() store.ListParams {
	p := store.ListParams{
		Page:     in.Page,
		PageSize: in.PageSize,
		Query:    in.Query,
		Filter:   in.Filter,
	}
	p.Normalize()
	return p
}
