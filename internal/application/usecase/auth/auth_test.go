package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

type authFixture struct {
	users    *memoryUserRepo
	tokens   *stubTokenService
	resets   *stubResetTokenService
	mail     *recordingMailer
	register *RegisterUserUseCase
	login    *LoginUserUseCase
	verify   *VerifyEmailUseCase
	refresh  *RefreshTokenUseCase
	logout   *LogoutUserUseCase
	request  *RequestPasswordResetUseCase
	confirm  *ConfirmPasswordResetUseCase
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  newMemoryUserRepo(),
		tokens: newStubTokenService(),
		resets: newStubResetTokenService(),
		mail:   &recordingMailer{},
	}
	passwords := prefixHasher{}
	f.register = NewRegisterUserUseCase(f.users, passwords, f.tokens, f.mail, "http://api.test/api/v1/verify-email", 24*time.Hour)
	f.login = NewLoginUserUseCase(f.users, passwords, f.tokens)
	f.verify = NewVerifyEmailUseCase(f.users, f.tokens)
	f.refresh = NewRefreshTokenUseCase(f.users, f.tokens)
	f.logout = NewLogoutUserUseCase(f.tokens)
	f.request = NewRequestPasswordResetUseCase(f.users, f.resets, f.mail, "http://app.test")
	f.confirm = NewConfirmPasswordResetUseCase(f.users, passwords, f.tokens, f.resets)
	return f
}

// verificationToken extracts the token from the most recently queued verification link.
func (f *authFixture) verificationToken(t *testing.T) string {
	t.Helper()
	sent := f.mail.ofKind(entity.EmailVerifyAccount)
	require.NotEmpty(t, sent)
	link, err := url.Parse(sent[len(sent)-1].Link)
	require.NoError(t, err)
	return link.Query().Get("token")
}

func TestRegister_Validation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.register.Execute(ctx, RegisterUserInput{Email: "taken@example.com", Password: "password123"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input RegisterUserInput
		want  error
		kind  error
	}{
		{"missing email", RegisterUserInput{Password: "password123"}, domainerror.ErrMissingAuthFields, domainerror.ErrValidation},
		{"missing password", RegisterUserInput{Email: "a@example.com"}, domainerror.ErrMissingAuthFields, domainerror.ErrValidation},
		{"invalid email", RegisterUserInput{Email: "not-an-email", Password: "password123"}, domainerror.ErrInvalidEmail, domainerror.ErrValidation},
		{"weak password", RegisterUserInput{Email: "a@example.com", Password: "short"}, domainerror.ErrWeakPassword, domainerror.ErrConflict},
		{"multibyte short password", RegisterUserInput{Email: "a@example.com", Password: "ééééééé"}, domainerror.ErrWeakPassword, domainerror.ErrConflict},
		{"password past bcrypt limit", RegisterUserInput{Email: "a@example.com", Password: strings.Repeat("x", 73)}, domainerror.ErrWeakPassword, domainerror.ErrConflict},
		{"existing email", RegisterUserInput{Email: "Taken@Example.com", Password: "password123"}, domainerror.ErrEmailAlreadyExists, domainerror.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.register.Execute(ctx, tt.input)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, errors.Is(err, tt.kind))

			var authErr *domainerror.AuthError
			assert.True(t, errors.As(err, &authErr))
		})
	}
	assert.Len(t, f.users.users, 1)
}

func TestRegisterVerifyLogin(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: " New@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", f.users.users[reg.UserID].Email)
	assert.False(t, f.users.users[reg.UserID].EmailVerified)
	sent := f.mail.ofKind(entity.EmailVerifyAccount)
	require.Len(t, sent, 1)
	assert.Equal(t, "new@example.com", sent[0].To)
	assert.Equal(t, 24*time.Hour, sent[0].ValidFor)

	_, err = f.login.Execute(ctx, LoginUserInput{Email: "new@example.com", Password: "password123"})
	assert.True(t, errors.Is(err, domainerror.ErrEmailNotVerified))

	out, err := f.verify.Execute(ctx, VerifyEmailInput{Token: f.verificationToken(t)})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Message)
	assert.True(t, f.users.users[reg.UserID].EmailVerified)

	_, err = f.verify.Execute(ctx, VerifyEmailInput{Token: f.verificationToken(t)})
	require.NoError(t, err, "verifying twice is idempotent")

	_, err = f.login.Execute(ctx, LoginUserInput{Email: "new@example.com", Password: "wrong-password"})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidCredentials))

	_, err = f.login.Execute(ctx, LoginUserInput{Email: "ghost@example.com", Password: "password123"})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidCredentials))

	_, err = f.login.Execute(ctx, LoginUserInput{Email: "new@example.com"})
	assert.True(t, errors.Is(err, domainerror.ErrMissingAuthFields))

	login, err := f.login.Execute(ctx, LoginUserInput{Email: "NEW@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, reg.UserID, login.User.ID)
}

func TestVerifyEmail_RejectsBadTokens(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.verify.Execute(ctx, VerifyEmailInput{})
	assert.True(t, errors.Is(err, domainerror.ErrUnauthenticated))

	_, err = f.verify.Execute(ctx, VerifyEmailInput{Token: "garbage"})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))
}

func TestRefreshAndLogout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: "r@example.com", Password: "password123"})
	require.NoError(t, err)
	_, err = f.verify.Execute(ctx, VerifyEmailInput{Token: f.verificationToken(t)})
	require.NoError(t, err)
	login, err := f.login.Execute(ctx, LoginUserInput{Email: "r@example.com", Password: "password123"})
	require.NoError(t, err)

	rotated, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	claims, err := f.tokens.ValidateAccessToken(ctx, rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.UserID)
	assert.True(t, claims.EmailVerified)

	_, err = f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidToken), "a rotated token cannot be reused")

	_, err = f.logout.Execute(ctx, LogoutUserInput{RefreshToken: rotated.RefreshToken})
	require.NoError(t, err)
	_, err = f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: rotated.RefreshToken})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))

	_, err = f.logout.Execute(ctx, LogoutUserInput{RefreshToken: rotated.RefreshToken})
	require.NoError(t, err, "logging out twice is harmless")

	_, err = f.logout.Execute(ctx, LogoutUserInput{})
	assert.Error(t, err)
}

func TestRefresh_DeletedAccount(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: "gone@example.com", Password: "password123"})
	require.NoError(t, err)
	_, err = f.verify.Execute(ctx, VerifyEmailInput{Token: f.verificationToken(t)})
	require.NoError(t, err)
	login, err := f.login.Execute(ctx, LoginUserInput{Email: "gone@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(ctx, reg.UserID))

	_, err = f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))
}

func TestPasswordReset(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: "p@example.com", Password: "password123"})
	require.NoError(t, err)

	out, err := f.request.Execute(ctx, RequestPasswordResetInput{UserID: reg.UserID})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Message)
	resets := f.mail.ofKind(entity.EmailResetPassword)
	require.Len(t, resets, 1)
	assert.Equal(t, "p@example.com", resets[0].To)

	link, err := url.Parse(resets[0].Link)
	require.NoError(t, err)
	token := link.Query().Get("token")
	require.NotEmpty(t, token)

	_, err = f.confirm.Execute(ctx, ConfirmPasswordResetInput{Token: token, NewPassword: "short"})
	assert.True(t, errors.Is(err, domainerror.ErrWeakPassword))

	_, err = f.confirm.Execute(ctx, ConfirmPasswordResetInput{Token: "unknown", NewPassword: "brand-new-pass"})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidResetToken))

	_, err = f.confirm.Execute(ctx, ConfirmPasswordResetInput{Token: token, NewPassword: "brand-new-pass"})
	require.NoError(t, err)
	assert.Equal(t, "hashed:brand-new-pass", f.users.users[reg.UserID].PasswordHash)
	assert.Contains(t, f.tokens.revokedUsers, reg.UserID)

	_, err = f.confirm.Execute(ctx, ConfirmPasswordResetInput{Token: token, NewPassword: "another-pass"})
	assert.True(t, errors.Is(err, domainerror.ErrInvalidResetToken), "reset tokens are single use")
}

func TestPasswordReset_ExpiredToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: "late@example.com", Password: "password123"})
	require.NoError(t, err)
	issued, err := f.resets.GenerateResetToken(ctx, reg.UserID, "late@example.com")
	require.NoError(t, err)
	issued.ExpiresAt = time.Now().UTC().Add(-time.Minute)

	_, err = f.confirm.Execute(ctx, ConfirmPasswordResetInput{Token: issued.Token, NewPassword: "brand-new-pass"})
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domainerror.ErrCodeExpiredResetToken, authErr.Code)
	assert.Equal(t, "hashed:password123", f.users.users[reg.UserID].PasswordHash)
}
