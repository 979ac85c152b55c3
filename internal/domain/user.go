// Package domain defines the core entities of the DevFlow question-and-answer platform.
package domain

import "time"

// User represents a community member.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Image      string    `json:"image,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Location   string    `json:"location,omitempty"`
	Portfolio  string    `json:"portfolio,omitempty"`
	Reputation int64     `json:"reputation"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Provider identifies how an account authenticates.
type Provider string

const (
	// ProviderCredentials is email + password sign-in.
	ProviderCredentials Provider = "credentials"
	// ProviderGitHub is GitHub OAuth.
	ProviderGitHub Provider = "github"
	// ProviderGoogle is Google OAuth.
	ProviderGoogle Provider = "google"
)

// Valid reports whether the provider is one we support.
func (p Provider) Valid() bool {
	switch p {
	case ProviderCredentials, ProviderGitHub, ProviderGoogle:
		return true
	}
	return false
}

// Account links a User to an authentication provider.
// A user has one account per provider; the credentials provider
// carries an Argon2id password hash, OAuth providers do not.
type Account struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	Provider          Provider  `json:"provider"`
	ProviderAccountID string    `json:"provider_account_id"`
	Image             string    `json:"image,omitempty"`
	PasswordHash      string    `json:"-"` // Never serialized
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
