// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dompet/ledger/internal/application/adapter"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// VerifyEmailInput represents the input for email verification.
type VerifyEmailInput struct {
	Token string
}

// VerifyEmailOutput represents the output of email verification.
type VerifyEmailOutput struct {
	Message string
}

// VerifyEmailUseCase marks a user's email as verified from a signed link.
type VerifyEmailUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewVerifyEmailUseCase creates a new VerifyEmailUseCase instance.
func NewVerifyEmailUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute performs the email verification. Verifying twice is not an error.
func (uc *VerifyEmailUseCase) Execute(ctx context.Context, input VerifyEmailInput) (*VerifyEmailOutput, error) {
	if input.Token == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingToken,
			"verification token is required",
			domainerror.ErrInvalidToken,
		)
	}

	claims, err := uc.tokenService.ValidateVerificationToken(ctx, input.Token)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidVerificationToken,
			"invalid or expired verification token",
			err,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// A token issued for an address the user no longer has must not verify the new one.
	if !strings.EqualFold(user.Email, claims.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidVerificationToken,
			"invalid or expired verification token",
			domainerror.ErrInvalidToken,
		)
	}

	if !user.EmailVerified {
		user.MarkVerified()
		if err := uc.userRepo.UpdateAccount(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to verify user: %w", err)
		}
		slog.Info("Email verified", "userID", user.ID)
	}

	return &VerifyEmailOutput{
		Message: "Email verified successfully",
	}, nil
}
