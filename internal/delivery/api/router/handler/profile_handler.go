package handler

import (
	"net/http"

	"aliascore/internal/delivery/api/middleware"
	"aliascore/internal/delivery/api/response"
	"aliascore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler serves profile updates.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(profileUC usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUC: profileUC}
}

// UpdateProfileRequest is the body of PUT /api/profile. Omitted fields are kept;
// an empty avatarUrl removes the avatar.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,max=64"`
	AvatarURL   *string `json:"avatarUrl" validate:"omitempty,max=2048"`
}

// UpdateProfile changes the signed-in user's display name and avatar.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserResponse{User: user})
}
