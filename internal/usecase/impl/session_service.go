// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"aliascore/internal/domain/entity"
	"aliascore/internal/errors"
	"aliascore/internal/mock/interceptor"
	"aliascore/internal/usecase"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	api    *interceptor.Interceptor
	logger *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(api *interceptor.Interceptor, logger *slog.Logger) usecase.SessionUsecase {
	return &sessionService{
		api:    api,
		logger: logger,
	}
}

// SignInWithGoogle exchanges a Google ID token for an access token.
func (srv *sessionService) SignInWithGoogle(ctx context.Context, input usecase.SignInInput) (*usecase.SignInOutput, error) {
	result, err := srv.api.AuthenticateWithGoogle(ctx, input.IDToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign in with google")
	}

	srv.logger.InfoContext(ctx, "User signed in", slog.String("userId", result.User.ID))

	return &usecase.SignInOutput{
		AccessToken: result.Token,
		ExpiresAt:   result.ExpiresAt,
		User:        result.User,
		IsNewUser:   result.IsNewUser,
	}, nil
}

// CurrentUser returns the profile behind an access token.
func (srv *sessionService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.api.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get current user")
	}

	return user, nil
}

// SignOut ends the session and drops the fixtures.
func (srv *sessionService) SignOut(ctx context.Context, userID string) error {
	if err := srv.api.SignOut(ctx); err != nil {
		return errors.Wrap(err, "failed to sign out")
	}

	srv.logger.InfoContext(ctx, "User signed out", slog.String("userId", userID))

	return nil
}
