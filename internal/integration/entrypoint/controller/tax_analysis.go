// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fiscalops/backend/internal/application/usecase/taxanalysis"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
	"github.com/fiscalops/backend/internal/integration/entrypoint/dto"
	"github.com/fiscalops/backend/internal/integration/entrypoint/middleware"
)

// TaxAnalysisController handles tax analysis endpoints.
type TaxAnalysisController struct {
	calculateUseCase *taxanalysis.CalculateAndRecordUseCase
	listUseCase      *taxanalysis.ListSnapshotsUseCase
	getUseCase       *taxanalysis.GetSnapshotUseCase
	advisoryUseCase  *taxanalysis.RequestAdvisoryUseCase
}

// NewTaxAnalysisController creates a new tax analysis controller instance.
func NewTaxAnalysisController(
	calculateUseCase *taxanalysis.CalculateAndRecordUseCase,
	listUseCase *taxanalysis.ListSnapshotsUseCase,
	getUseCase *taxanalysis.GetSnapshotUseCase,
	advisoryUseCase *taxanalysis.RequestAdvisoryUseCase,
) *TaxAnalysisController {
	return &TaxAnalysisController{
		calculateUseCase: calculateUseCase,
		listUseCase:      listUseCase,
		getUseCase:       getUseCase,
		advisoryUseCase:  advisoryUseCase,
	}
}

// Run handles POST /tax/analyses requests. Each call runs the full pipeline
// and records a new snapshot; nothing is ever overwritten.
func (c *TaxAnalysisController) Run(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.RunTaxAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := taxanalysis.CalculateAndRecordInput{
		OwnerID:      ownerID,
		Jurisdiction: req.Jurisdiction,
		TaxYear:      req.TaxYear,
	}

	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidAnalysisPeriod),
			})
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidAnalysisPeriod),
			})
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.calculateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTaxAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTaxAnalysisSnapshotResponse(output.Snapshot))
}

// List handles GET /tax/analyses requests.
func (c *TaxAnalysisController) List(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := taxanalysis.ListSnapshotsInput{
		OwnerID: ownerID,
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
		c.handleTaxAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSnapshotListResponse(output.Result))
}

// Get handles GET /tax/analyses/:id requests.
func (c *TaxAnalysisController) Get(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	snapshotID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid snapshot ID format",
		})
		return
	}

	input := taxanalysis.GetSnapshotInput{
		OwnerID:    ownerID,
		SnapshotID: snapshotID,
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTaxAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaxAnalysisSnapshotResponse(output.Snapshot))
}

// RequestAdvisory handles POST /tax/analyses/:id/advisory requests.
func (c *TaxAnalysisController) RequestAdvisory(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	snapshotID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid snapshot ID format",
		})
		return
	}

	input := taxanalysis.RequestAdvisoryInput{
		OwnerID:    ownerID,
		SnapshotID: snapshotID,
	}

	output, err := c.advisoryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTaxAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRiskAdvisoryResponse(output.Advisory))
}

// handleTaxAnalysisError handles tax analysis errors and returns appropriate HTTP responses.
func (c *TaxAnalysisController) handleTaxAnalysisError(ctx *gin.Context, err error) {
	var taxErr *domainerror.TaxAnalysisError
	if errors.As(err, &taxErr) {
		ctx.JSON(getStatusCodeForTaxAnalysisError(taxErr.Code), dto.ErrorResponse{
			Error: taxErr.Message,
			Code:  string(taxErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTaxAnalysisError maps tax analysis error codes to HTTP status codes.
func getStatusCodeForTaxAnalysisError(code domainerror.TaxAnalysisErrorCode) int {
	switch code {
	case domainerror.ErrCodeNegativeTaxableIncome,
		domainerror.ErrCodeInvalidAnalysisPeriod:
		return http.StatusBadRequest
	case domainerror.ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAdvisoryUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeSnapshotWriteFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
