// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dompet/ledger/internal/application/adapter"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// ConfirmPasswordResetInput represents the input for completing a password reset.
type ConfirmPasswordResetInput struct {
	Token       string
	NewPassword string
}

// ConfirmPasswordResetOutput represents the output of a completed password reset.
type ConfirmPasswordResetOutput struct {
	Message string
}

// ConfirmPasswordResetUseCase sets a new password from a reset token.
type ConfirmPasswordResetUseCase struct {
	userRepo          adapter.UserRepository
	passwords         adapter.PasswordHasher
	tokenService      adapter.TokenService
	resetTokenService adapter.PasswordResetTokenService
}

// NewConfirmPasswordResetUseCase creates a new ConfirmPasswordResetUseCase instance.
func NewConfirmPasswordResetUseCase(
	userRepo adapter.UserRepository,
	passwords adapter.PasswordHasher,
	tokenService adapter.TokenService,
	resetTokenService adapter.PasswordResetTokenService,
) *ConfirmPasswordResetUseCase {
	return &ConfirmPasswordResetUseCase{
		userRepo:          userRepo,
		passwords:         passwords,
		tokenService:      tokenService,
		resetTokenService: resetTokenService,
	}
}

// Execute performs the password reset and signs the user out everywhere.
func (uc *ConfirmPasswordResetUseCase) Execute(ctx context.Context, input ConfirmPasswordResetInput) (*ConfirmPasswordResetOutput, error) {
	if input.Token == "" || input.NewPassword == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"token and new_password are required",
			domainerror.ErrMissingAuthFields,
		)
	}

	resetToken, err := uc.resetTokenService.LookupResetToken(ctx, input.Token)
	if err != nil {
		return nil, invalidResetToken(err)
	}
	if resetToken.Expired(time.Now().UTC()) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeExpiredResetToken,
			"password reset token has expired",
			domainerror.ErrInvalidResetToken,
		)
	}

	if err := checkPassword(input.NewPassword); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, resetToken.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash, err := uc.passwords.Hash(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Two requests racing on one token: only the one that consumes it proceeds.
	if err := uc.resetTokenService.ConsumeResetToken(ctx, input.Token); err != nil {
		return nil, invalidResetToken(err)
	}

	user.ChangePassword(passwordHash)
	if err := uc.userRepo.UpdateAccount(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user password: %w", err)
	}

	if err := uc.tokenService.RevokeUserSessions(ctx, user.ID); err != nil {
		slog.Warn("Failed to revoke sessions after password reset", "error", err, "userID", user.ID)
	}

	slog.Info("Password reset completed", "userID", user.ID)

	return &ConfirmPasswordResetOutput{
		Message: "Password has been successfully reset",
	}, nil
}

func invalidResetToken(err error) error {
	if !errors.Is(err, domainerror.ErrInvalidResetToken) {
		return fmt.Errorf("failed to check reset token: %w", err)
	}
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidResetToken,
		"invalid or expired password reset token",
		domainerror.ErrInvalidResetToken,
	)
}
