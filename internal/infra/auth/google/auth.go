// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"log/slog"

	"aliascore/config"
	domainerrors "aliascore/internal/domain/errors"
	"aliascore/internal/domain/service"
	"aliascore/internal/errors"

	"google.golang.org/api/idtoken"
)

// validateFunc checks an ID token's signature, expiry and audience.
type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// Verifier implements service.IDTokenVerifier against Google's published keys.
type Verifier struct {
	clientID string
	validate validateFunc
	logger   *slog.Logger
}

// NewVerifier creates a Verifier for the configured OAuth client.
func NewVerifier(cfg *config.Config, logger *slog.Logger) service.IDTokenVerifier {
	var clientID string
	if cfg.GoogleOAuth != nil {
		clientID = cfg.GoogleOAuth.ClientID
	}

	return &Verifier{
		clientID: clientID,
		validate: idtoken.Validate,
		logger:   logger,
	}
}

// VerifyIDToken validates idToken and extracts the user identity.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	if v.clientID == "" {
		return nil, errors.Wrap(domainerrors.ErrOAuthTokenInvalid, "google client id is not configured")
	}

	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		v.logger.WarnContext(ctx, "Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrOAuthTokenInvalid, err.Error())
	}

	user := &service.OAuthUser{
		ID:            payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		Name:          claimString(payload.Claims, "name"),
		AvatarURL:     claimString(payload.Claims, "picture"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
	}
	if user.ID == "" {
		return nil, errors.Wrap(domainerrors.ErrOAuthTokenInvalid, "token has no subject")
	}

	v.logger.DebugContext(ctx, "Google ID token verified", slog.String("subject", user.ID))

	return user, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)

	return s
}

// claimBool accepts both JSON booleans and the "true" string some issuers emit.
func claimBool(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
