package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeAccess tags access tokens in Claims.Type.
const TokenTypeAccess = "access"

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID string `json:"uid"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for userID and reports its expiry.
	GenerateAccessToken(userID string) (token string, expiresAt time.Time, err error)

	// ValidateToken checks the signature, expiry and type of an access token.
	ValidateToken(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured lifetime of access tokens.
	AccessTokenDuration() time.Duration
}
