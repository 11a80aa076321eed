// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"aliascore/internal/domain/entity"
)

// --- Input DTOs ---

// SignInInput defines the data required to sign in with Google.
type SignInInput struct {
	IDToken string
}

// --- Output DTOs ---

// SignInOutput returns the access token and the signed-in user.
type SignInOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *entity.User
	IsNewUser   bool
}

// SessionUsecase defines the interface for sign-in and sign-out.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type SessionUsecase interface {
	SignInWithGoogle(ctx context.Context, input SignInInput) (*SignInOutput, error)
	CurrentUser(ctx context.Context, userID string) (*entity.User, error)
	SignOut(ctx context.Context, userID string) error
}
