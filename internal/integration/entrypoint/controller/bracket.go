// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/application/usecase/bracket"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
	"github.com/fiscalops/backend/internal/integration/entrypoint/dto"
)

// BracketController handles tax bracket reference data endpoints.
type BracketController struct {
	importUseCase *bracket.ImportBracketTableUseCase
	listUseCase   *bracket.ListBracketsUseCase
}

// NewBracketController creates a new bracket controller instance.
func NewBracketController(
	importUseCase *bracket.ImportBracketTableUseCase,
	listUseCase *bracket.ListBracketsUseCase,
) *BracketController {
	return &BracketController{
		importUseCase: importUseCase,
		listUseCase:   listUseCase,
	}
}

// Import handles PUT /tax/brackets/:jurisdiction/:year requests. The whole
// table for the pair is replaced in one call; there is no row-level edit.
func (c *BracketController) Import(ctx *gin.Context) {
	jurisdiction := ctx.Param("jurisdiction")

	taxYear, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid tax year",
			Code:  string(domainerror.ErrCodeInvalidTaxYear),
		})
		return
	}

	var req dto.ImportBracketTableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeEmptyBracketTable),
		})
		return
	}

	rows := make([]bracket.BracketRow, len(req.Brackets))
	for i, row := range req.Brackets {
		minIncome, err := decimal.NewFromString(row.MinIncome)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid bracket minimum income format",
				Code:  string(domainerror.ErrCodeNegativeBracketBound),
			})
			return
		}
		rate, err := decimal.NewFromString(row.Rate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid bracket rate format",
				Code:  string(domainerror.ErrCodeInvalidBracketRate),
			})
			return
		}

		rows[i] = bracket.BracketRow{
			MinIncome: minIncome,
			Rate:      rate,
		}
		if row.MaxIncome != nil {
			maxIncome, err := decimal.NewFromString(*row.MaxIncome)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "Invalid bracket maximum income format",
					Code:  string(domainerror.ErrCodeNegativeBracketBound),
				})
				return
			}
			rows[i].MaxIncome = &maxIncome
		}
	}

	input := bracket.ImportBracketTableInput{
		Jurisdiction: jurisdiction,
		TaxYear:      taxYear,
		Brackets:     rows,
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBracketError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBracketTableResponse(jurisdiction, taxYear, output.Brackets))
}

// List handles GET /tax/brackets/:jurisdiction/:year requests.
func (c *BracketController) List(ctx *gin.Context) {
	jurisdiction := ctx.Param("jurisdiction")

	taxYear, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid tax year",
			Code:  string(domainerror.ErrCodeInvalidTaxYear),
		})
		return
	}

	input := bracket.ListBracketsInput{
		Jurisdiction: jurisdiction,
		TaxYear:      taxYear,
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBracketError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBracketTableResponse(jurisdiction, taxYear, output.Brackets))
}

// handleBracketError handles bracket errors and returns appropriate HTTP responses.
func (c *BracketController) handleBracketError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrBracketTableNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "No bracket table defined for jurisdiction and tax year",
			Code:  string(domainerror.ErrCodeBracketTableNotFound),
		})
		return
	}

	var bracketErr *domainerror.BracketError
	if errors.As(err, &bracketErr) {
		ctx.JSON(getStatusCodeForBracketError(bracketErr.Code), dto.ErrorResponse{
			Error: bracketErr.Message,
			Code:  string(bracketErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBracketError maps bracket error codes to HTTP status codes.
func getStatusCodeForBracketError(code domainerror.BracketErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmptyBracketTable,
		domainerror.ErrCodeBracketTableGap,
		domainerror.ErrCodeBracketTableOverlap,
		domainerror.ErrCodeMissingTopBracket,
		domainerror.ErrCodeUnboundedBracketNotLast,
		domainerror.ErrCodeInvalidBracketRate,
		domainerror.ErrCodeNegativeBracketBound,
		domainerror.ErrCodeInvalidTaxYear:
		return http.StatusBadRequest
	case domainerror.ErrCodeBracketTableNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
