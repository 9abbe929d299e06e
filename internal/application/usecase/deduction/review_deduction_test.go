package deduction

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

type fakeDeductionRepo struct {
	records   map[uuid.UUID]*entity.DeductionRecord
	updateErr error
}

func newFakeDeductionRepo() *fakeDeductionRepo {
	return &fakeDeductionRepo{records: make(map[uuid.UUID]*entity.DeductionRecord)}
}

func (f *fakeDeductionRepo) Create(ctx context.Context, record *entity.DeductionRecord) error {
	f.records[record.ID] = record
	return nil
}

func (f *fakeDeductionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.DeductionRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, domainerror.ErrDeductionNotFound
	}
	return record, nil
}

func (f *fakeDeductionRepo) FindByFilter(ctx context.Context, filter adapter.DeductionFilter, pagination adapter.RecordPagination) (*entity.DeductionListResult, error) {
	return &entity.DeductionListResult{}, nil
}

func (f *fakeDeductionRepo) Update(ctx context.Context, record *entity.DeductionRecord) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.records[record.ID] = record
	return nil
}

func (f *fakeDeductionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.records, id)
	return nil
}

func (f *fakeDeductionRepo) GetApprovedTotals(ctx context.Context, ownerID uuid.UUID, startDate, endDate *time.Time) (*adapter.DeductionTotals, error) {
	return &adapter.DeductionTotals{Total: decimal.Zero}, nil
}

func pendingDeduction(ownerID uuid.UUID) *entity.DeductionRecord {
	return entity.NewDeductionRecord(ownerID, "office chair", decimal.NewFromInt(250), nil, time.Now())
}

func TestReviewDeduction_ApprovesPendingRecord(t *testing.T) {
	repo := newFakeDeductionRepo()
	uc := NewReviewDeductionUseCase(repo)

	ownerID := uuid.New()
	record := pendingDeduction(ownerID)
	_ = repo.Create(context.Background(), record)

	output, err := uc.Execute(context.Background(), ReviewDeductionInput{
		OwnerID:  ownerID,
		RecordID: record.ID,
		Decision: entity.DeductionStatusApproved,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if output.Record.Status != entity.DeductionStatusApproved {
		t.Errorf("status = %s, want approved", output.Record.Status)
	}
	if output.Record.ReviewedAt == nil {
		t.Error("ReviewedAt must be set on review")
	}
}

func TestReviewDeduction_ReviewIsFinal(t *testing.T) {
	repo := newFakeDeductionRepo()
	uc := NewReviewDeductionUseCase(repo)

	ownerID := uuid.New()
	record := pendingDeduction(ownerID)
	_ = repo.Create(context.Background(), record)

	if _, err := uc.Execute(context.Background(), ReviewDeductionInput{
		OwnerID:  ownerID,
		RecordID: record.ID,
		Decision: entity.DeductionStatusRejected,
	}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	_, err := uc.Execute(context.Background(), ReviewDeductionInput{
		OwnerID:  ownerID,
		RecordID: record.ID,
		Decision: entity.DeductionStatusApproved,
	})

	var recordErr *domainerror.RecordError
	if !errors.As(err, &recordErr) || recordErr.Code != domainerror.ErrCodeDeductionAlreadyReviewed {
		t.Fatalf("expected already-reviewed error, got %v", err)
	}
}

func TestReviewDeduction_RejectsInvalidDecision(t *testing.T) {
	uc := NewReviewDeductionUseCase(newFakeDeductionRepo())

	_, err := uc.Execute(context.Background(), ReviewDeductionInput{
		OwnerID:  uuid.New(),
		RecordID: uuid.New(),
		Decision: entity.DeductionStatus("maybe"),
	})

	var recordErr *domainerror.RecordError
	if !errors.As(err, &recordErr) || recordErr.Code != domainerror.ErrCodeInvalidDeductionStatus {
		t.Fatalf("expected invalid decision error, got %v", err)
	}
}

func TestReviewDeduction_OtherOwnersCannotReview(t *testing.T) {
	repo := newFakeDeductionRepo()
	uc := NewReviewDeductionUseCase(repo)

	record := pendingDeduction(uuid.New())
	_ = repo.Create(context.Background(), record)

	_, err := uc.Execute(context.Background(), ReviewDeductionInput{
		OwnerID:  uuid.New(),
		RecordID: record.ID,
		Decision: entity.DeductionStatusApproved,
	})

	var recordErr *domainerror.RecordError
	if !errors.As(err, &recordErr) || recordErr.Code != domainerror.ErrCodeNotAuthorizedRecord {
		t.Fatalf("expected not-authorized error, got %v", err)
	}

	if record.Status != entity.DeductionStatusPending {
		t.Error("record must stay pending after a rejected review attempt")
	}
}
