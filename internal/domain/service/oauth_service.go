package service

import "context"

// OAuthUser represents the identity carried by a verified Google ID token.
type OAuthUser struct {
	ID            string // Google's 'sub' claim
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
}

// IDTokenVerifier verifies ID tokens handed over by the Google Sign-In client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
}
