// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair represents an access and refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims represents the identity carried by a JWT.
type TokenClaims struct {
	UserID        uuid.UUID
	Email         string
	EmailVerified bool
	ExpiresAt     time.Time
}

// TokenService issues the JWTs behind sessions and email verification.
// Refresh tokens are also tracked server side so they can be revoked.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, emailVerified bool) (*TokenPair, error)

	// ValidateAccessToken checks signature, issuer, type and expiry.
	// Expired tokens fail with domainerror.ErrExpiredToken, anything else with ErrInvalidToken.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// IsRefreshTokenLive reports whether the refresh token was issued here and not revoked.
	IsRefreshTokenLive(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error

	// RevokeUserSessions revokes every refresh token of the user.
	RevokeUserSessions(ctx context.Context, userID uuid.UUID) error

	// DeleteAllUserTokens removes every stored refresh and reset token of a user.
	DeleteAllUserTokens(ctx context.Context, userID uuid.UUID) error

	// GenerateVerificationToken issues a signed, stateless email verification token.
	GenerateVerificationToken(ctx context.Context, userID uuid.UUID, email string) (string, error)
	ValidateVerificationToken(ctx context.Context, token string) (*TokenClaims, error)
}

// PasswordResetToken is an issued reset token. Token is the raw value and
// is only known to the caller that generated or presented it.
type PasswordResetToken struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// PasswordResetTokenService issues single-use password reset tokens.
type PasswordResetTokenService interface {
	GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*PasswordResetToken, error)

	// LookupResetToken returns an unused token, expired or not.
	// Unknown and used tokens fail with domainerror.ErrInvalidResetToken.
	LookupResetToken(ctx context.Context, token string) (*PasswordResetToken, error)

	// ConsumeResetToken marks the token used. Only the first call succeeds,
	// later ones fail with domainerror.ErrInvalidResetToken.
	ConsumeResetToken(ctx context.Context, token string) error
}
