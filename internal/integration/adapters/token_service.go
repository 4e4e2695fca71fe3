// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dompet/ledger/config"
	"github.com/dompet/ledger/internal/application/adapter"
	domainerror "github.com/dompet/ledger/internal/domain/error"
	"github.com/dompet/ledger/internal/integration/persistence"
)

const tokenIssuer = "dompet-ledger"

type tokenKind string

const (
	kindAccess      tokenKind = "access"
	kindRefresh     tokenKind = "refresh"
	kindVerifyEmail tokenKind = "verify_email"
)

type ledgerClaims struct {
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Kind          tokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret   []byte
	lifetime map[tokenKind]time.Duration
	parser   *jwt.Parser
	tokens   persistence.TokenRepository
	now      func() time.Time
}

// NewTokenService creates the HS256 token service.
func NewTokenService(cfg config.JWTConfig, tokens persistence.TokenRepository) adapter.TokenService {
	return &tokenService{
		secret: []byte(cfg.Secret),
		lifetime: map[tokenKind]time.Duration{
			kindAccess:      cfg.AccessTokenExpiry,
			kindRefresh:     cfg.RefreshTokenExpiry,
			kindVerifyEmail: cfg.VerifyTokenExpiry,
		},
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
		),
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, emailVerified bool) (*adapter.TokenPair, error) {
	access, _, err := s.sign(userID, email, emailVerified, kindAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, expiresAt, err := s.sign(userID, email, emailVerified, kindRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.tokens.SaveRefreshToken(ctx, digest(refresh), userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &adapter.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *tokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, kindAccess)
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, kindRefresh)
}

// GenerateVerificationToken is stateless: nothing is stored.
func (s *tokenService) GenerateVerificationToken(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	token, _, err := s.sign(userID, email, false, kindVerifyEmail)
	return token, err
}

func (s *tokenService) ValidateVerificationToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, kindVerifyEmail)
}

func (s *tokenService) IsRefreshTokenLive(ctx context.Context, token string) (bool, error) {
	return s.tokens.RefreshTokenLive(ctx, digest(token), s.now())
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	return s.tokens.RevokeRefreshToken(ctx, digest(token))
}

func (s *tokenService) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.RevokeUserRefreshTokens(ctx, userID)
}

func (s *tokenService) DeleteAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.DeleteUserTokens(ctx, userID)
}

func (s *tokenService) sign(userID uuid.UUID, email string, emailVerified bool, kind tokenKind) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.lifetime[kind])
	claims := ledgerClaims{
		UserID:        userID.String(),
		Email:         email,
		EmailVerified: emailVerified,
		Kind:          kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// The ID keeps two refresh tokens issued in the same second distinct.
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return signed, expiresAt, err
}

func (s *tokenService) verify(token string, want tokenKind) (*adapter.TokenClaims, error) {
	var claims ledgerClaims
	_, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domainerror.ErrExpiredToken
	case err != nil:
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	case claims.Kind != want:
		return nil, fmt.Errorf("%w: %q token used as %q", domainerror.ErrInvalidToken, claims.Kind, want)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || claims.Subject != claims.UserID {
		return nil, fmt.Errorf("%w: bad subject", domainerror.ErrInvalidToken)
	}

	return &adapter.TokenClaims{
		UserID:        userID,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		ExpiresAt:     claims.ExpiresAt.Time,
	}, nil
}

// digest is the form a token is stored and looked up in.
func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
