// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/usecase/asset"
	domainerror "github.com/dompet/ledger/internal/domain/error"
	"github.com/dompet/ledger/internal/integration/entrypoint/dto"
	"github.com/dompet/ledger/internal/integration/entrypoint/middleware"
)

// AssetController handles asset endpoints.
type AssetController struct {
	createUseCase *asset.CreateAssetUseCase
	listUseCase   *asset.ListAssetsUseCase
	getUseCase    *asset.GetAssetUseCase
	updateUseCase *asset.UpdateAssetUseCase
	deleteUseCase *asset.DeleteAssetUseCase
}

// NewAssetController creates a new asset controller instance.
func NewAssetController(
	createUseCase *asset.CreateAssetUseCase,
	listUseCase *asset.ListAssetsUseCase,
	getUseCase *asset.GetAssetUseCase,
	updateUseCase *asset.UpdateAssetUseCase,
	deleteUseCase *asset.DeleteAssetUseCase,
) *AssetController {
	return &AssetController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /assets requests.
func (c *AssetController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	var req dto.AssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.invalidBody(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), asset.CreateAssetInput{
		UserID:      userID,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Amount:      req.Amount,
	})
	if err != nil {
		c.handleAssetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreatedResponse{
		Message: "Asset created with id " + output.Asset.ID.String(),
		ID:      output.Asset.ID.String(),
	})
}

// List handles GET /assets requests. ?groupBy=category returns a map keyed by category.
func (c *AssetController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), asset.ListAssetsInput{
		UserID:  userID,
		GroupBy: ctx.Query("groupBy"),
	})
	if err != nil {
		c.handleAssetError(ctx, err)
		return
	}

	if output.Grouped != nil {
		ctx.JSON(http.StatusOK, dto.ToGroupedAssetResponse(output.Grouped))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToAssetListResponse(output.Assets))
}

// Get handles GET /assets/:assetId requests.
func (c *AssetController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	assetID, ok := c.assetIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), asset.GetAssetInput{
		UserID:  userID,
		AssetID: assetID,
	})
	if err != nil {
		c.handleAssetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetResponse(output.Asset))
}

// Update handles PUT /assets/:assetId requests.
func (c *AssetController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	assetID, ok := c.assetIDParam(ctx)
	if !ok {
		return
	}

	var req dto.AssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.invalidBody(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), asset.UpdateAssetInput{
		UserID:      userID,
		AssetID:     assetID,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Amount:      req.Amount,
	})
	if err != nil {
		c.handleAssetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetResponse(output.Asset))
}

// Delete handles DELETE /assets/:assetId requests.
func (c *AssetController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	assetID, ok := c.assetIDParam(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), asset.DeleteAssetInput{
		UserID:  userID,
		AssetID: assetID,
	})
	if err != nil {
		c.handleAssetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Asset deleted successfully"})
}

// assetIDParam parses the path id. An id that is not a uuid cannot exist, so it is reported as not found.
func (c *AssetController) assetIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("assetId"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "asset not found",
			Code:  string(domainerror.ErrCodeAssetNotFound),
		})
		return uuid.Nil, false
	}
	return id, true
}

func (c *AssetController) unauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

func (c *AssetController) invalidBody(ctx *gin.Context, err error) {
	code := domainerror.ErrCodeMissingAssetFields
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "oneof" {
		code = domainerror.ErrCodeInvalidAssetCategory
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(code),
		Details: dto.BindingDetails(err),
	})
}

// handleAssetError handles asset errors and returns appropriate HTTP responses.
func (c *AssetController) handleAssetError(ctx *gin.Context, err error) {
	var assetErr *domainerror.AssetError
	if errors.As(err, &assetErr) {
		ctx.JSON(statusForError(assetErr), dto.ErrorResponse{
			Error: assetErr.Message,
			Code:  string(assetErr.Code),
		})
		return
	}

	slog.Error("Asset request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "An internal error occurred",
		Details: err.Error(),
	})
}
