// Package taxanalysis contains the tax calculation pipeline use cases.
package taxanalysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// In-memory fakes implementing the adapter interfaces.

type fakeDeductionRepo struct {
	records []*entity.DeductionRecord
	err     error
}

func (f *fakeDeductionRepo) Create(ctx context.Context, record *entity.DeductionRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeDeductionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.DeductionRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domainerror.ErrDeductionNotFound
}

func (f *fakeDeductionRepo) FindByFilter(ctx context.Context, filter adapter.DeductionFilter, pagination adapter.RecordPagination) (*entity.DeductionListResult, error) {
	return &entity.DeductionListResult{Records: f.records}, nil
}

func (f *fakeDeductionRepo) Update(ctx context.Context, record *entity.DeductionRecord) error {
	return nil
}

func (f *fakeDeductionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeDeductionRepo) GetApprovedTotals(ctx context.Context, ownerID uuid.UUID, startDate, endDate *time.Time) (*adapter.DeductionTotals, error) {
	if f.err != nil {
		return nil, f.err
	}
	totals := &adapter.DeductionTotals{Total: decimal.Zero}
	for _, r := range f.records {
		if r.OwnerID != ownerID || r.Status != entity.DeductionStatusApproved {
			continue
		}
		totals.Total = totals.Total.Add(r.Amount)
		totals.Count++
	}
	return totals, nil
}

type fakeIncomeRepo struct {
	records []*entity.IncomeRecord
	err     error
}

func (f *fakeIncomeRepo) Create(ctx context.Context, record *entity.IncomeRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeIncomeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.IncomeRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domainerror.ErrIncomeNotFound
}

func (f *fakeIncomeRepo) FindByFilter(ctx context.Context, filter adapter.IncomeFilter, pagination adapter.RecordPagination) (*entity.IncomeListResult, error) {
	return &entity.IncomeListResult{Records: f.records}, nil
}

func (f *fakeIncomeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeIncomeRepo) GetTotals(ctx context.Context, ownerID uuid.UUID, startDate, endDate *time.Time) (*adapter.IncomeTotals, error) {
	if f.err != nil {
		return nil, f.err
	}
	totals := &adapter.IncomeTotals{Total: decimal.Zero}
	for _, r := range f.records {
		if r.OwnerID != ownerID {
			continue
		}
		totals.Total = totals.Total.Add(r.Amount)
		totals.Count++
	}
	return totals, nil
}

type fakeBracketRepo struct {
	tables map[string][]*entity.TaxBracket
}

func bracketKey(jurisdiction string, taxYear int) string {
	return jurisdiction + "/" + time.Date(taxYear, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}

func (f *fakeBracketRepo) FindByJurisdictionYear(ctx context.Context, jurisdiction string, taxYear int) ([]*entity.TaxBracket, error) {
	table, ok := f.tables[bracketKey(jurisdiction, taxYear)]
	if !ok {
		return nil, domainerror.ErrBracketTableNotFound
	}
	return table, nil
}

func (f *fakeBracketRepo) ReplaceTable(ctx context.Context, jurisdiction string, taxYear int, brackets []*entity.TaxBracket) error {
	if f.tables == nil {
		f.tables = make(map[string][]*entity.TaxBracket)
	}
	f.tables[bracketKey(jurisdiction, taxYear)] = brackets
	return nil
}

type fakeSnapshotRepo struct {
	snapshots []*entity.TaxAnalysisSnapshot
	createErr error
}

func (f *fakeSnapshotRepo) Create(ctx context.Context, snapshot *entity.TaxAnalysisSnapshot) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

func (f *fakeSnapshotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TaxAnalysisSnapshot, error) {
	for _, s := range f.snapshots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domainerror.ErrSnapshotNotFound
}

func (f *fakeSnapshotRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID, pagination adapter.RecordPagination) (*entity.SnapshotListResult, error) {
	var out []*entity.TaxAnalysisSnapshot
	for _, s := range f.snapshots {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return &entity.SnapshotListResult{Snapshots: out, Total: int64(len(out))}, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.users == nil {
		f.users = make(map[uuid.UUID]*entity.User)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

// Test fixture helpers.

type pipelineFixture struct {
	ownerID       uuid.UUID
	deductionRepo *fakeDeductionRepo
	incomeRepo    *fakeIncomeRepo
	bracketRepo   *fakeBracketRepo
	snapshotRepo  *fakeSnapshotRepo
	useCase       *CalculateAndRecordUseCase
}

func newPipelineFixture() *pipelineFixture {
	ownerID := uuid.New()
	deductionRepo := &fakeDeductionRepo{}
	incomeRepo := &fakeIncomeRepo{}
	bracketRepo := &fakeBracketRepo{tables: make(map[string][]*entity.TaxBracket)}
	snapshotRepo := &fakeSnapshotRepo{}

	aggregate := NewAggregateRecordsUseCase(deductionRepo, incomeRepo)
	useCase := NewCalculateAndRecordUseCase(
		aggregate,
		bracketRepo,
		snapshotRepo,
		&fakeUserRepo{},
		nil, // notifications disabled
		dec("0.15"),
	)

	return &pipelineFixture{
		ownerID:       ownerID,
		deductionRepo: deductionRepo,
		incomeRepo:    incomeRepo,
		bracketRepo:   bracketRepo,
		snapshotRepo:  snapshotRepo,
		useCase:       useCase,
	}
}

func (f *pipelineFixture) addIncome(amount string) {
	f.incomeRepo.records = append(f.incomeRepo.records, &entity.IncomeRecord{
		ID:      uuid.New(),
		OwnerID: f.ownerID,
		Amount:  dec(amount),
		Date:    time.Now().UTC(),
	})
}

func (f *pipelineFixture) addDeduction(amount string, status entity.DeductionStatus) {
	f.deductionRepo.records = append(f.deductionRepo.records, &entity.DeductionRecord{
		ID:      uuid.New(),
		OwnerID: f.ownerID,
		Amount:  dec(amount),
		Status:  status,
		Date:    time.Now().UTC(),
	})
}

func (f *pipelineFixture) setBrackets(jurisdiction string, taxYear int, brackets []*entity.TaxBracket) {
	f.bracketRepo.tables[bracketKey(jurisdiction, taxYear)] = brackets
}

func twoBracketTable(jurisdiction string, taxYear int) []*entity.TaxBracket {
	max := dec("10000")
	return []*entity.TaxBracket{
		{Jurisdiction: jurisdiction, TaxYear: taxYear, MinIncome: dec("0"), MaxIncome: &max, Rate: dec("0.1")},
		{Jurisdiction: jurisdiction, TaxYear: taxYear, MinIncome: dec("10000"), Rate: dec("0.2")},
	}
}

func TestCalculateAndRecord_BracketTable(t *testing.T) {
	f := newPipelineFixture()
	f.setBrackets("US", 2025, twoBracketTable("US", 2025))
	f.addIncome("20000")
	f.addDeduction("5000", entity.DeductionStatusApproved)
	f.addDeduction("3000", entity.DeductionStatusPending)
	f.addDeduction("1000", entity.DeductionStatusRejected)

	out, err := f.useCase.Execute(context.Background(), CalculateAndRecordInput{
		OwnerID:      f.ownerID,
		Jurisdiction: "US",
		TaxYear:      2025,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := out.Snapshot

	// Only the approved deduction counts.
	if !snap.TotalDeductions.Equal(dec("5000")) {
		t.Errorf("TotalDeductions = %s, want 5000", snap.TotalDeductions)
	}
	if !snap.TaxableIncome.Equal(dec("15000")) {
		t.Errorf("TaxableIncome = %s, want 15000", snap.TaxableIncome)
	}
	// 10000*0.1 + 5000*0.2
	if !snap.EstimatedTax.Equal(dec("2000")) {
		t.Errorf("EstimatedTax = %s, want 2000", snap.EstimatedTax)
	}
	if snap.UsedFallbackRate {
		t.Error("UsedFallbackRate = true, want false for a defined bracket table")
	}
	if snap.InputsHash == "" {
		t.Error("InputsHash is empty")
	}
	if len(f.snapshotRepo.snapshots) != 1 {
		t.Fatalf("expected 1 stored snapshot, got %d", len(f.snapshotRepo.snapshots))
	}
}

func TestCalculateAndRecord_FallbackRate(t *testing.T) {
	f := newPipelineFixture()
	f.addIncome("20000")

	out, err := f.useCase.Execute(context.Background(), CalculateAndRecordInput{
		OwnerID:      f.ownerID,
		Jurisdiction: "Atlantis",
		TaxYear:      2025,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Snapshot.UsedFallbackRate {
		t.Error("UsedFallbackRate = false, want true when no bracket table is defined")
	}
	if !out.Snapshot.EstimatedTax.Equal(dec("3000")) {
		t.Errorf("EstimatedTax = %s, want 3000 (20000 * 0.15)", out.Snapshot.EstimatedTax)
	}
}

func TestCalculateAndRecord_ClampsNegativeTaxableIncome(t *testing.T) {
	f := newPipelineFixture()
	f.setBrackets("US", 2025, twoBracketTable("US", 2025))
	f.addIncome("1000")
	f.addDeduction("5000", entity.DeductionStatusApproved)

	out, err := f.useCase.Execute(context.Background(), CalculateAndRecordInput{
		OwnerID:      f.ownerID,
		Jurisdiction: "US",
		TaxYear:      2025,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Snapshot.TaxableIncome.IsZero() {
		t.Errorf("TaxableIncome = %s, want 0 when deductions exceed income", out.Snapshot.TaxableIncome)
	}
	if !out.Snapshot.EstimatedTax.IsZero() {
		t.Errorf("EstimatedTax = %s, want 0", out.Snapshot.EstimatedTax)
	}
}

func TestCalculateAndRecord_NoRecordsAggregatesToZero(t *testing.T) {
	f := newPipelineFixture()
	f.setBrackets("US", 2025, twoBracketTable("US", 2025))

	out, err := f.useCase.Execute(context.Background(), CalculateAndRecordInput{
		OwnerID:      f.ownerID,
		Jurisdiction: "US",
		TaxYear:      2025,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Snapshot.TotalIncome.IsZero() || !out.Snapshot.EstimatedTax.IsZero() {
		t.Errorf("expected zero totals, got income %s tax %s",
			out.Snapshot.TotalIncome, out.Snapshot.EstimatedTax)
	}
	if out.Aggregates.IncomeCount != 0 || out.Aggregates.DeductionCount != 0 {
		t.Errorf("expected zero counts, got %d/%d",
			out.Aggregates.IncomeCount, out.Aggregates.DeductionCount)
	}
}

func TestCalculateAndRecord_SequentialRunsAppendSnapshots(t *testing.T) {
	f := newPipelineFixture()
	f.setBrackets("US", 2025, twoBracketTable("US", 2025))
	f.addIncome("20000")

	input := CalculateAndRecordInput{
		OwnerID:      f.ownerID,
		Jurisdiction: "US",
		TaxYear:      2025,
	}

	first, err := f.useCase.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := f.useCase.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.Snapshot.ID == second.Snapshot.ID {
		t.Error("expected distinct snapshot IDs for sequential runs")
	}
	if len(f.snapshotRepo.snapshots) != 2 {
		t.Fatalf("expected 2 stored snapshots, got %d", len(f.snapshotRepo.snapshots))
	}
	// Same inputs, same numbers: computation is idempotent even though
	// storage is not.
	if !first.Snapshot.EstimatedTax.Equal(second.Snapshot.EstimatedTax) {
		t.Errorf("estimated tax differs between runs: %s vs %s",
			first.Snapshot.EstimatedTax, second.Snapshot.EstimatedTax)
	}
	if first.Snapshot.InputsHash != second.Snapshot.InputsHash {
		t.Error("inputs hash differs between identical runs")
	}
}

func TestCalculateAndRecord_PersistenceFailure(t *testing.T) {
	f := newPipelineFixture()
	f.setBrackets("US", 2025, twoBracketTable("US", 2025))
	f.addIncome("20000")
	f.snapshotRepo.createErr = errors.New("storage unavailable")

	_, err := f.useCase.Execute(context.Background(), CalculateAndRecordInput{
		OwnerID:      f.ownerID,
		Jurisdiction: "US",
		TaxYear:      2025,
	})
	if err == nil {
		t.Fatal("expected error when snapshot write fails")
	}

	var taxErr *domainerror.TaxAnalysisError
	if !errors.As(err, &taxErr) || taxErr.Code != domainerror.ErrCodeSnapshotWriteFailed {
		t.Fatalf("expected snapshot write failure error, got %v", err)
	}
	if len(f.snapshotRepo.snapshots) != 0 {
		t.Error("no snapshot should be recorded on write failure")
	}
}

func TestCalculateAndRecord_AggregationErrorSurfaces(t *testing.T) {
	f := newPipelineFixture()
	f.incomeRepo.err = errors.New("connection refused")

	_, err := f.useCase.Execute(context.Background(), CalculateAndRecordInput{
		OwnerID:      f.ownerID,
		Jurisdiction: "US",
		TaxYear:      2025,
	})
	if err == nil {
		t.Fatal("expected aggregation error to surface")
	}
	if len(f.snapshotRepo.snapshots) != 0 {
		t.Error("no snapshot should be recorded when aggregation fails")
	}
}

func TestCalculateAndRecord_InvalidPeriod(t *testing.T) {
	f := newPipelineFixture()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.useCase.Execute(context.Background(), CalculateAndRecordInput{
		OwnerID:      f.ownerID,
		Jurisdiction: "US",
		TaxYear:      2025,
		StartDate:    &start,
		EndDate:      &end,
	})

	var taxErr *domainerror.TaxAnalysisError
	if !errors.As(err, &taxErr) || taxErr.Code != domainerror.ErrCodeInvalidAnalysisPeriod {
		t.Fatalf("expected invalid period error, got %v", err)
	}
}
