// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dompet/ledger/internal/application/usecase/auth"
	domainerror "github.com/dompet/ledger/internal/domain/error"
	"github.com/dompet/ledger/internal/integration/entrypoint/dto"
	"github.com/dompet/ledger/internal/integration/entrypoint/middleware"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	registerUseCase             *auth.RegisterUserUseCase
	verifyEmailUseCase          *auth.VerifyEmailUseCase
	loginUseCase                *auth.LoginUserUseCase
	refreshTokenUseCase         *auth.RefreshTokenUseCase
	logoutUseCase               *auth.LogoutUserUseCase
	requestPasswordResetUseCase *auth.RequestPasswordResetUseCase
	confirmPasswordResetUseCase *auth.ConfirmPasswordResetUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	verifyEmailUseCase *auth.VerifyEmailUseCase,
	loginUseCase *auth.LoginUserUseCase,
	refreshTokenUseCase *auth.RefreshTokenUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
	requestPasswordResetUseCase *auth.RequestPasswordResetUseCase,
	confirmPasswordResetUseCase *auth.ConfirmPasswordResetUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:             registerUseCase,
		verifyEmailUseCase:          verifyEmailUseCase,
		loginUseCase:                loginUseCase,
		refreshTokenUseCase:         refreshTokenUseCase,
		logoutUseCase:               logoutUseCase,
		requestPasswordResetUseCase: requestPasswordResetUseCase,
		confirmPasswordResetUseCase: confirmPasswordResetUseCase,
	}
}

// Register handles POST /register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingFields),
			Details: dto.BindingDetails(err),
		})
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterResponse{UID: output.UserID.String()})
}

// VerifyEmail handles GET /verify-email?token= requests.
func (c *AuthController) VerifyEmail(ctx *gin.Context) {
	output, err := c.verifyEmailUseCase.Execute(ctx.Request.Context(), auth.VerifyEmailInput{
		Token: ctx.Query("token"),
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// Login handles POST /login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingFields),
			Details: dto.BindingDetails(err),
		})
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Token:        output.AccessToken,
		RefreshToken: output.RefreshToken,
		UID:          output.User.ID.String(),
	})
}

// RefreshToken handles POST /refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingToken),
			Details: dto.BindingDetails(err),
		})
		return
	}

	output, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), auth.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		Token:        output.AccessToken,
		RefreshToken: output.RefreshToken,
	})
}

// Logout handles POST /logout requests.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		// Even with invalid body, return success for logout
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
		return
	}

	output, err := c.logoutUseCase.Execute(ctx.Request.Context(), auth.LogoutUserInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// RequestPasswordReset handles POST /reset-password requests for the authenticated user.
func (c *AuthController) RequestPasswordReset(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.requestPasswordResetUseCase.Execute(ctx.Request.Context(), auth.RequestPasswordResetInput{
		UserID: userID,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: output.Message})
}

// ConfirmPasswordReset handles POST /reset-password/confirm requests.
func (c *AuthController) ConfirmPasswordReset(ctx *gin.Context) {
	var req dto.ConfirmPasswordResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingFields),
			Details: dto.BindingDetails(err),
		})
		return
	}

	output, err := c.confirmPasswordResetUseCase.Execute(ctx.Request.Context(), auth.ConfirmPasswordResetInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// handleAuthError handles authentication errors and returns appropriate HTTP responses.
// Internal failures are logged but never described to the client on auth paths.
func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusForError(authErr), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.Error("Auth request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
