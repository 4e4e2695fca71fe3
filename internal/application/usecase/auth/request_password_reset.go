// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// RequestPasswordResetInput represents the input for a password reset request.
type RequestPasswordResetInput struct {
	UserID uuid.UUID
}

// RequestPasswordResetOutput represents the output of a password reset request.
type RequestPasswordResetOutput struct {
	Message string
}

// RequestPasswordResetUseCase emails a reset link to the authenticated user.
type RequestPasswordResetUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	mailer            adapter.AccountMailer
	appBaseURL        string
}

// NewRequestPasswordResetUseCase creates a new RequestPasswordResetUseCase instance.
func NewRequestPasswordResetUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	mailer adapter.AccountMailer,
	appBaseURL string,
) *RequestPasswordResetUseCase {
	return &RequestPasswordResetUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		mailer:            mailer,
		appBaseURL:        appBaseURL,
	}
}

// Execute performs the password reset request.
func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, input RequestPasswordResetInput) (*RequestPasswordResetOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
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

	resetToken, err := uc.resetTokenService.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", uc.appBaseURL, url.QueryEscape(resetToken.Token))

	if uc.mailer == nil {
		slog.Info("Password reset link generated, no mailer configured",
			"userID", user.ID,
			"resetURL", resetURL,
		)
		return &RequestPasswordResetOutput{Message: "Password reset email sent"}, nil
	}

	err = uc.mailer.Enqueue(ctx, adapter.AccountEmail{
		Kind:     entity.EmailResetPassword,
		To:       user.Email,
		Link:     resetURL,
		ValidFor: time.Until(resetToken.ExpiresAt),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to queue password reset email: %w", err)
	}
	slog.Info("Password reset email queued", "userID", user.ID)

	return &RequestPasswordResetOutput{
		Message: "Password reset email sent",
	}, nil
}
