// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/usecase/record"
	domainerror "github.com/dompet/ledger/internal/domain/error"
	"github.com/dompet/ledger/internal/integration/entrypoint/dto"
	"github.com/dompet/ledger/internal/integration/entrypoint/middleware"
)

// RecordController handles record endpoints.
type RecordController struct {
	createUseCase *record.CreateRecordUseCase
	listUseCase   *record.ListRecordsUseCase
	getUseCase    *record.GetRecordUseCase
	updateUseCase *record.UpdateRecordUseCase
	deleteUseCase *record.DeleteRecordUseCase
}

// NewRecordController creates a new record controller instance.
func NewRecordController(
	createUseCase *record.CreateRecordUseCase,
	listUseCase *record.ListRecordsUseCase,
	getUseCase *record.GetRecordUseCase,
	updateUseCase *record.UpdateRecordUseCase,
	deleteUseCase *record.DeleteRecordUseCase,
) *RecordController {
	return &RecordController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /records requests.
func (c *RecordController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	var req dto.RecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.invalidBody(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), record.CreateRecordInput{
		UserID:  userID,
		Payload: req.ToPayload(),
	})
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	resp := dto.CreateRecordResponse{
		Message: "Record created with id " + output.Record.ID.String(),
		ID:      output.Record.ID.String(),
	}
	if output.FeeRecord != nil {
		resp.FeeID = output.FeeRecord.ID.String()
	}
	ctx.JSON(http.StatusCreated, resp)
}

// List handles GET /records requests. Records come back grouped by month, then by day.
func (c *RecordController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	var query dto.RecordQueryRequest
	if err := ctx.ShouldBindQuery(&query); err != nil {
		c.invalidBody(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), record.ListRecordsInput{
		UserID: userID,
		Query:  query.ToRawQuery(),
	})
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGroupedRecordResponse(output.Groups))
}

// Get handles GET /records/:recordId requests.
func (c *RecordController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	recordID, ok := c.recordIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), record.GetRecordInput{
		UserID:   userID,
		RecordID: recordID,
	})
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecordResponse(output.Record))
}

// Update handles PUT /records/:recordId requests.
func (c *RecordController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	recordID, ok := c.recordIDParam(ctx)
	if !ok {
		return
	}

	var req dto.RecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.invalidBody(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), record.UpdateRecordInput{
		UserID:   userID,
		RecordID: recordID,
		Payload:  req.ToPayload(),
	})
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecordResponse(output.Record))
}

// Delete handles DELETE /records/:recordId requests.
func (c *RecordController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		c.unauthenticated(ctx)
		return
	}

	recordID, ok := c.recordIDParam(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), record.DeleteRecordInput{
		UserID:   userID,
		RecordID: recordID,
	})
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Record deleted successfully"})
}

func (c *RecordController) recordIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("recordId"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "record not found",
			Code:  string(domainerror.ErrCodeRecordNotFound),
		})
		return uuid.Nil, false
	}
	return id, true
}

func (c *RecordController) unauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

func (c *RecordController) invalidBody(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(domainerror.ErrCodeMissingRecordFields),
		Details: dto.BindingDetails(err),
	})
}

// handleRecordError handles record errors and returns appropriate HTTP responses.
func (c *RecordController) handleRecordError(ctx *gin.Context, err error) {
	var recordErr *domainerror.RecordError
	if errors.As(err, &recordErr) {
		ctx.JSON(statusForError(recordErr), dto.ErrorResponse{
			Error: recordErr.Message,
			Code:  string(recordErr.Code),
		})
		return
	}

	slog.Error("Record request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "An internal error occurred",
		Details: err.Error(),
	})
}
