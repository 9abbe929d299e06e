// Package taxanalysis contains the tax calculation pipeline use cases.
package taxanalysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
	"github.com/fiscalops/backend/internal/domain/valueobject"
)

// CalculateAndRecordInput represents the input for a tax calculation run.
type CalculateAndRecordInput struct {
	OwnerID      uuid.UUID
	Jurisdiction string
	TaxYear      int
	StartDate    *time.Time
	EndDate      *time.Time
}

// CalculateAndRecordOutput represents the output of a tax calculation run.
type CalculateAndRecordOutput struct {
	Snapshot   *entity.TaxAnalysisSnapshot
	Aggregates *RecordAggregates
}

// CalculateAndRecordUseCase is the single entry point of the tax pipeline:
// aggregate records, apply the bracket table by marginal-rate integration,
// and persist the result as an append-only snapshot. Between the aggregation
// read and the snapshot write the computation is pure. Concurrent runs for
// the same owner are safe because the recorder never updates in place; two
// runs simply produce two snapshots ordered by created_at.
type CalculateAndRecordUseCase struct {
	aggregateUseCase *AggregateRecordsUseCase
	bracketRepo      adapter.TaxBracketRepository
	snapshotRepo     adapter.SnapshotRepository
	userRepo         adapter.UserRepository
	emailSender      adapter.EmailSender
	fallbackRate     decimal.Decimal
}

// NewCalculateAndRecordUseCase creates a new CalculateAndRecordUseCase instance.
// emailSender may be nil when notifications are not configured.
func NewCalculateAndRecordUseCase(
	aggregateUseCase *AggregateRecordsUseCase,
	bracketRepo adapter.TaxBracketRepository,
	snapshotRepo adapter.SnapshotRepository,
	userRepo adapter.UserRepository,
	emailSender adapter.EmailSender,
	fallbackRate decimal.Decimal,
) *CalculateAndRecordUseCase {
	return &CalculateAndRecordUseCase{
		aggregateUseCase: aggregateUseCase,
		bracketRepo:      bracketRepo,
		snapshotRepo:     snapshotRepo,
		userRepo:         userRepo,
		emailSender:      emailSender,
		fallbackRate:     fallbackRate,
	}
}

// Execute runs the full pipeline and returns the stored snapshot. If the
// snapshot write fails the whole run fails; computed numbers are never
// reported as saved when they were not durably recorded.
func (uc *CalculateAndRecordUseCase) Execute(ctx context.Context, input CalculateAndRecordInput) (*CalculateAndRecordOutput, error) {
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewTaxAnalysisError(
			domainerror.ErrCodeInvalidAnalysisPeriod,
			"end date must not be before start date",
			nil,
		)
	}

	// Aggregation read. I/O errors surface unchanged.
	aggregates, err := uc.aggregateUseCase.Execute(ctx, AggregateRecordsInput{
		OwnerID:   input.OwnerID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	// Deductions exceeding income clamp to zero taxable income here, at the
	// call site. The calculator itself rejects negative input rather than
	// clamping, so the clamp stays explicit and visible.
	taxableIncome := aggregates.TotalIncome.Sub(aggregates.TotalDeductions)
	if taxableIncome.IsNegative() {
		taxableIncome = decimal.Zero
	}

	var (
		estimatedTax decimal.Decimal
		usedFallback bool
		inputsHash   string
	)

	brackets, err := uc.bracketRepo.FindByJurisdictionYear(ctx, input.Jurisdiction, input.TaxYear)
	switch {
	case err == nil:
		table, verr := valueobject.NewBracketTable(brackets)
		if verr != nil {
			return nil, fmt.Errorf("stored bracket table for %s/%d is invalid: %w", input.Jurisdiction, input.TaxYear, verr)
		}
		estimatedTax, err = table.Apply(taxableIncome)
		if err != nil {
			return nil, err
		}
		inputsHash = hashInputs(input, aggregates, brackets, nil)

	case errors.Is(err, domainerror.ErrBracketTableNotFound):
		// No table defined: apply the configured flat rate and flag the
		// snapshot so downstream consumers know precision is reduced.
		estimatedTax, err = valueobject.FlatRate(taxableIncome, uc.fallbackRate)
		if err != nil {
			return nil, err
		}
		usedFallback = true
		inputsHash = hashInputs(input, aggregates, nil, &uc.fallbackRate)

		slog.Warn("No bracket table defined, using flat fallback rate",
			"jurisdiction", input.Jurisdiction,
			"taxYear", input.TaxYear,
			"fallbackRate", uc.fallbackRate.String(),
		)

	default:
		return nil, fmt.Errorf("failed to load bracket table: %w", err)
	}

	snapshot := entity.NewTaxAnalysisSnapshot(
		input.OwnerID,
		input.Jurisdiction,
		input.TaxYear,
		aggregates.TotalIncome,
		aggregates.TotalDeductions,
		taxableIncome,
		estimatedTax,
		usedFallback,
		inputsHash,
	)

	// The snapshot write is the single durable side effect of the run.
	if err := uc.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, domainerror.NewTaxAnalysisError(
			domainerror.ErrCodeSnapshotWriteFailed,
			"failed to persist tax analysis snapshot",
			err,
		)
	}

	slog.Info("Tax analysis snapshot recorded",
		"snapshotID", snapshot.ID,
		"ownerID", snapshot.OwnerID,
		"jurisdiction", snapshot.Jurisdiction,
		"taxYear", snapshot.TaxYear,
		"estimatedTax", snapshot.EstimatedTax.String(),
		"usedFallbackRate", snapshot.UsedFallbackRate,
	)

	uc.notify(ctx, snapshot)

	return &CalculateAndRecordOutput{
		Snapshot:   snapshot,
		Aggregates: aggregates,
	}, nil
}

// notify sends a best-effort "estimate ready" email. Delivery failure is
// logged and never fails the calculation run.
func (uc *CalculateAndRecordUseCase) notify(ctx context.Context, snapshot *entity.TaxAnalysisSnapshot) {
	if uc.emailSender == nil {
		return
	}

	user, err := uc.userRepo.FindByID(ctx, snapshot.OwnerID)
	if err != nil || !user.EmailNotifications {
		return
	}

	subject := fmt.Sprintf("Your %d tax estimate for %s is ready", snapshot.TaxYear, snapshot.Jurisdiction)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your tax analysis for %s %d is ready: estimated tax <strong>%s</strong> on taxable income %s.</p>",
		user.Name, snapshot.Jurisdiction, snapshot.TaxYear,
		snapshot.EstimatedTax.StringFixed(2), snapshot.TaxableIncome.StringFixed(2),
	)

	if err := uc.emailSender.Send(ctx, user.Email, subject, body); err != nil {
		slog.Warn("Failed to send analysis notification email",
			"ownerID", snapshot.OwnerID,
			"snapshotID", snapshot.ID,
			"error", err,
		)
	}
}

// hashInputs produces a sha256 over a canonical rendering of everything that
// determined the result, so a snapshot can be checked for reproducibility.
func hashInputs(
	input CalculateAndRecordInput,
	aggregates *RecordAggregates,
	brackets []*entity.TaxBracket,
	fallbackRate *decimal.Decimal,
) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "owner=%s;jurisdiction=%s;year=%d;", input.OwnerID, input.Jurisdiction, input.TaxYear)
	if input.StartDate != nil {
		fmt.Fprintf(&sb, "start=%s;", input.StartDate.Format("2006-01-02"))
	}
	if input.EndDate != nil {
		fmt.Fprintf(&sb, "end=%s;", input.EndDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&sb, "income=%s;deductions=%s;", aggregates.TotalIncome.String(), aggregates.TotalDeductions.String())

	if fallbackRate != nil {
		fmt.Fprintf(&sb, "fallbackRate=%s;", fallbackRate.String())
	}

	sorted := make([]*entity.TaxBracket, len(brackets))
	copy(sorted, brackets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinIncome.LessThan(sorted[j].MinIncome)
	})
	for _, b := range sorted {
		maxStr := "inf"
		if b.MaxIncome != nil {
			maxStr = b.MaxIncome.String()
		}
		fmt.Fprintf(&sb, "bracket=%s..%s@%s;", b.MinIncome.String(), maxStr, b.Rate.String())
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
