package handler

import (
	"log/slog"
	"net/http"
	"time"

	"aliascore/internal/delivery/api/middleware"
	"aliascore/internal/delivery/api/response"
	"aliascore/internal/domain/entity"
	"aliascore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// AuthHandler serves sign-in, the current user and sign-out.
type AuthHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// GoogleSignInRequest is the body of POST /api/auth/google.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// SignInResponse is returned by a successful sign-in.
type SignInResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *entity.User `json:"user"`
	IsNewUser bool         `json:"isNewUser"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User *entity.User `json:"user"`
}

// GoogleSignIn exchanges a Google ID token for an access token.
func (h *AuthHandler) GoogleSignIn(c echo.Context) error {
	var req GoogleSignInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid sign-in input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.sessionUC.SignInWithGoogle(c.Request().Context(), usecase.SignInInput{IDToken: req.IDToken})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, SignInResponse{
		Token:     out.AccessToken,
		ExpiresAt: out.ExpiresAt,
		User:      out.User,
		IsNewUser: out.IsNewUser,
	})
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	user, err := h.sessionUC.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, UserResponse{User: user})
}

// SignOut ends the session.
func (h *AuthHandler) SignOut(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.sessionUC.SignOut(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Successfully signed out")
}
