package impl

import (
	"context"
	"log/slog"

	"aliascore/internal/domain/entity"
	"aliascore/internal/errors"
	"aliascore/internal/mock/interceptor"
	"aliascore/internal/usecase"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	api    *interceptor.Interceptor
	logger *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(api *interceptor.Interceptor, logger *slog.Logger) usecase.ProfileUsecase {
	return &profileService{
		api:    api,
		logger: logger,
	}
}

// UpdateProfile changes the display name and/or avatar of the user.
func (srv *profileService) UpdateProfile(ctx context.Context, userID string, input usecase.UpdateProfileInput) (*entity.User, error) {
	srv.logger.DebugContext(ctx, "Updating user profile",
		slog.String("userId", userID),
		slog.Bool("displayName", input.DisplayName != nil),
		slog.Bool("avatarUrl", input.AvatarURL != nil),
	)

	user, err := srv.api.UpdateUserProfile(ctx, userID, interceptor.ProfileUpdate{
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user profile")
	}

	return user, nil
}
