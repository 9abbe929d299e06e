// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/application/usecase/deduction"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
	"github.com/fiscalops/backend/internal/integration/entrypoint/dto"
	"github.com/fiscalops/backend/internal/integration/entrypoint/middleware"
)

// DeductionController handles deduction record endpoints.
type DeductionController struct {
	createUseCase *deduction.CreateDeductionUseCase
	listUseCase   *deduction.ListDeductionsUseCase
	reviewUseCase *deduction.ReviewDeductionUseCase
	deleteUseCase *deduction.DeleteDeductionUseCase
}

// NewDeductionController creates a new deduction controller instance.
func NewDeductionController(
	createUseCase *deduction.CreateDeductionUseCase,
	listUseCase *deduction.ListDeductionsUseCase,
	reviewUseCase *deduction.ReviewDeductionUseCase,
	deleteUseCase *deduction.DeleteDeductionUseCase,
) *DeductionController {
	return &DeductionController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		reviewUseCase: reviewUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /deductions requests.
func (c *DeductionController) Create(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateDeductionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingRecordFields),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidRecordDate),
		})
		return
	}

	// Amounts arrive as strings so they never round-trip through float64
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeNegativeRecordAmount),
		})
		return
	}

	var taxCodeID *uuid.UUID
	if req.TaxCodeID != nil && *req.TaxCodeID != "" {
		id, err := uuid.Parse(*req.TaxCodeID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid tax code ID format",
			})
			return
		}
		taxCodeID = &id
	}

	input := deduction.CreateDeductionInput{
		OwnerID:     ownerID,
		Description: req.Description,
		Amount:      amount,
		TaxCodeID:   taxCodeID,
		Date:        date,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDeductionResponse(output.Record))
}

// List handles GET /deductions requests.
func (c *DeductionController) List(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := deduction.ListDeductionsInput{
		OwnerID: ownerID,
	}

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.DeductionStatus(statusStr)
		input.Status = &status
	}
	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err == nil {
			input.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err == nil {
			input.EndDate = &endDate
		}
	}
	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDeductionListResponse(output.Result))
}

// Review handles PATCH /deductions/:id/review requests.
func (c *DeductionController) Review(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	recordID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid deduction record ID format",
		})
		return
	}

	var req dto.ReviewDeductionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Review decision must be 'approved' or 'rejected'",
			Code:  string(domainerror.ErrCodeInvalidDeductionStatus),
		})
		return
	}

	input := deduction.ReviewDeductionInput{
		OwnerID:  ownerID,
		RecordID: recordID,
		Decision: entity.DeductionStatus(req.Decision),
	}

	output, err := c.reviewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDeductionResponse(output.Record))
}

// Delete handles DELETE /deductions/:id requests.
func (c *DeductionController) Delete(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	recordID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid deduction record ID format",
		})
		return
	}

	input := deduction.DeleteDeductionInput{
		OwnerID:  ownerID,
		RecordID: recordID,
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleRecordError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleRecordError handles record errors and returns appropriate HTTP responses.
func (c *DeductionController) handleRecordError(ctx *gin.Context, err error) {
	var recordErr *domainerror.RecordError
	if errors.As(err, &recordErr) {
		ctx.JSON(getStatusCodeForRecordError(recordErr.Code), dto.ErrorResponse{
			Error: recordErr.Message,
			Code:  string(recordErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecordError maps record error codes to HTTP status codes.
func getStatusCodeForRecordError(code domainerror.RecordErrorCode) int {
	switch code {
	case domainerror.ErrCodeNegativeRecordAmount,
		domainerror.ErrCodeInvalidDeductionStatus,
		domainerror.ErrCodeRecordDescriptionTooLong,
		domainerror.ErrCodeMissingRecordFields,
		domainerror.ErrCodeInvalidRecordDate:
		return http.StatusBadRequest
	case domainerror.ErrCodeDeductionNotFound,
		domainerror.ErrCodeIncomeNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedRecord:
		return http.StatusForbidden
	case domainerror.ErrCodeDeductionAlreadyReviewed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
