// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dompet/ledger/internal/application/usecase/user"
	domainerror "github.com/dompet/ledger/internal/domain/error"
	"github.com/dompet/ledger/internal/integration/entrypoint/dto"
	"github.com/dompet/ledger/internal/integration/entrypoint/middleware"
)

// UserController handles the current user's profile endpoints.
type UserController struct {
	getUseCase    *user.GetUserUseCase
	deleteUseCase *user.DeleteUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(getUseCase *user.GetUserUseCase, deleteUseCase *user.DeleteUserUseCase) *UserController {
	return &UserController{
		getUseCase:    getUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Get handles GET /user requests.
func (c *UserController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), user.GetUserInput{UserID: userID})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output))
}

// Delete handles DELETE /user requests.
func (c *UserController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), user.DeleteUserInput{UserID: userID})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// handleUserError handles profile errors and returns appropriate HTTP responses.
func (c *UserController) handleUserError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusForError(authErr), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	var recordErr *domainerror.RecordError
	if errors.As(err, &recordErr) {
		ctx.JSON(statusForError(recordErr), dto.ErrorResponse{
			Error: recordErr.Message,
			Code:  string(recordErr.Code),
		})
		return
	}

	slog.Error("User request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
