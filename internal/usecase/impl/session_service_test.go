package impl

import (
	"context"
	"testing"

	domainerrors "aliascore/internal/domain/errors"
	"aliascore/internal/mock/fixture"
	"aliascore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_SignInWithGoogle(t *testing.T) {
	fx := createTestBackend(t)
	svc := NewSessionService(fx.api, fx.logger)

	out, err := svc.SignInWithGoogle(context.Background(), usecase.SignInInput{IDToken: "google-id-token"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.False(t, out.IsNewUser)
	assert.Equal(t, testUserID, out.User.ID)
	assert.True(t, out.ExpiresAt.After(out.User.CreatedAt))
}

func TestSessionService_SignInWithGoogle_MissingToken(t *testing.T) {
	fx := createTestBackend(t)
	svc := NewSessionService(fx.api, fx.logger)

	_, err := svc.SignInWithGoogle(context.Background(), usecase.SignInInput{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "failed to sign in with google")
}

func TestSessionService_CurrentUser(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := NewSessionService(fx.api, fx.logger)

	user, err := svc.CurrentUser(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, testUserID, user.ID)

	_, err = svc.CurrentUser(context.Background(), "someone-else")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestSessionService_CurrentUser_NotInitialized(t *testing.T) {
	fx := createTestBackend(t)
	svc := NewSessionService(fx.api, fx.logger)

	_, err := svc.CurrentUser(context.Background(), testUserID)

	assert.ErrorIs(t, err, domainerrors.ErrNotInitialized)
}

func TestSessionService_SignOut_ClearsFixtures(t *testing.T) {
	fx := createTestBackend(t)
	fx.initialize(t)
	svc := NewSessionService(fx.api, fx.logger)

	require.NoError(t, svc.SignOut(context.Background(), testUserID))

	assert.Equal(t, fixture.StateUninitialized, fx.fixtures.State())
}
