package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	domainerror "github.com/dompet/ledger/internal/domain/error"
	"github.com/dompet/ledger/internal/integration/persistence"
)

const (
	resetTokenBytes    = 32
	resetTokenLifetime = time.Hour
)

type passwordResetTokenService struct {
	tokens persistence.TokenRepository
	now    func() time.Time
}

// NewPasswordResetTokenService creates a reset token service backed by the token store.
func NewPasswordResetTokenService(tokens persistence.TokenRepository) adapter.PasswordResetTokenService {
	return &passwordResetTokenService{
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *passwordResetTokenService) GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	token := hex.EncodeToString(raw)
	expiresAt := s.now().Add(resetTokenLifetime)

	if err := s.tokens.SaveResetToken(ctx, digest(token), userID, email, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to save reset token: %w", err)
	}

	return &adapter.PasswordResetToken{
		Token:     token,
		UserID:    userID,
		Email:     email,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *passwordResetTokenService) LookupResetToken(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	row, err := s.tokens.FindUnusedResetToken(ctx, digest(token))
	if err != nil {
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}
	if row == nil {
		return nil, domainerror.ErrInvalidResetToken
	}

	return &adapter.PasswordResetToken{
		Token:     token,
		UserID:    row.UserID,
		Email:     row.Email,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

func (s *passwordResetTokenService) ConsumeResetToken(ctx context.Context, token string) error {
	ok, err := s.tokens.ConsumeResetToken(ctx, digest(token), s.now())
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if !ok {
		return domainerror.ErrInvalidResetToken
	}
	return nil
}
