package usecase

import (
	"context"

	"aliascore/internal/domain/entity"
)

// UpdateProfileInput defines the user fields a profile update may change. Nil fields are kept.
type UpdateProfileInput struct {
	DisplayName *string
	AvatarURL   *string
}

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error)
}
