// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email    string
	Password string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	UserID uuid.UUID
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo       adapter.UserRepository
	passwords      adapter.PasswordHasher
	tokenService   adapter.TokenService
	mailer         adapter.AccountMailer
	verifyBaseURL  string
	verifyValidFor time.Duration
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
// verifyBaseURL is the address of the verify-email endpoint; the token is appended as a query parameter.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwords adapter.PasswordHasher,
	tokenService adapter.TokenService,
	mailer adapter.AccountMailer,
	verifyBaseURL string,
	verifyValidFor time.Duration,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:       userRepo,
		passwords:      passwords,
		tokenService:   tokenService,
		mailer:         mailer,
		verifyBaseURL:  verifyBaseURL,
		verifyValidFor: verifyValidFor,
	}
}

// Execute performs the user registration. The account stays unverified until
// the emailed link is followed.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"email and password are required",
			domainerror.ErrMissingAuthFields,
		)
	}

	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if err := checkPassword(input.Password); err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	passwordHash, err := uc.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, passwordHash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.sendVerification(ctx, user)

	slog.Info("User registered", "userID", user.ID)

	return &RegisterUserOutput{UserID: user.ID}, nil
}

// sendVerification queues the verification email. Failures are logged and do
// not fail the registration.
func (uc *RegisterUserUseCase) sendVerification(ctx context.Context, user *entity.User) {
	token, err := uc.tokenService.GenerateVerificationToken(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("Failed to generate verification token", "error", err, "userID", user.ID)
		return
	}

	verifyURL := fmt.Sprintf("%s?token=%s", uc.verifyBaseURL, url.QueryEscape(token))

	if uc.mailer == nil {
		slog.Info("Verification link generated, no mailer configured",
			"userID", user.ID,
			"verifyURL", verifyURL,
		)
		return
	}

	err = uc.mailer.Enqueue(ctx, adapter.AccountEmail{
		Kind:     entity.EmailVerifyAccount,
		To:       user.Email,
		Link:     verifyURL,
		ValidFor: uc.verifyValidFor,
	})
	if err != nil {
		slog.Error("Failed to queue verification email", "error", err, "userID", user.ID)
		return
	}
	slog.Info("Verification email queued", "userID", user.ID)
}

// isValidEmail validates email format using a simple regex.
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
