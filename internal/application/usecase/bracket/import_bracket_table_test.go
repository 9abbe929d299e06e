package bracket

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

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

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// row builds a test bracket row; max == "" means open-ended.
func row(min, max, rate string) BracketRow {
	r := BracketRow{
		MinIncome: dec(min),
		Rate:      dec(rate),
	}
	if max != "" {
		r.MaxIncome = decPtr(max)
	}
	return r
}

type fakeBracketRepo struct {
	tables     map[string][]*entity.TaxBracket
	replaceErr error
}

func newFakeBracketRepo() *fakeBracketRepo {
	return &fakeBracketRepo{tables: make(map[string][]*entity.TaxBracket)}
}

func (f *fakeBracketRepo) key(jurisdiction string, taxYear int) string {
	return fmt.Sprintf("%s/%d", jurisdiction, taxYear)
}

func (f *fakeBracketRepo) FindByJurisdictionYear(ctx context.Context, jurisdiction string, taxYear int) ([]*entity.TaxBracket, error) {
	brackets, ok := f.tables[f.key(jurisdiction, taxYear)]
	if !ok {
		return nil, domainerror.ErrBracketTableNotFound
	}
	return brackets, nil
}

func (f *fakeBracketRepo) ReplaceTable(ctx context.Context, jurisdiction string, taxYear int, brackets []*entity.TaxBracket) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.tables[f.key(jurisdiction, taxYear)] = brackets
	return nil
}

func TestImportBracketTable_StoresValidTable(t *testing.T) {
	repo := newFakeBracketRepo()
	uc := NewImportBracketTableUseCase(repo)

	output, err := uc.Execute(context.Background(), ImportBracketTableInput{
		Jurisdiction: "US",
		TaxYear:      2025,
		Brackets: []BracketRow{
			row("10000", "", "0.2"), // out of order on purpose
			row("0", "10000", "0.1"),
		},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(output.Brackets) != 2 {
		t.Fatalf("expected 2 brackets, got %d", len(output.Brackets))
	}
	if !output.Brackets[0].MinIncome.Equal(dec("0")) {
		t.Errorf("expected brackets sorted by min income, first min = %s", output.Brackets[0].MinIncome)
	}

	stored, err := repo.FindByJurisdictionYear(context.Background(), "US", 2025)
	if err != nil {
		t.Fatalf("table was not stored: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("expected 2 stored brackets, got %d", len(stored))
	}
}

func TestImportBracketTable_RejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name     string
		brackets []BracketRow
		wantCode domainerror.BracketErrorCode
	}{
		{
			name:     "empty table",
			brackets: nil,
			wantCode: domainerror.ErrCodeEmptyBracketTable,
		},
		{
			name: "gap between brackets",
			brackets: []BracketRow{
				row("0", "10000", "0.1"),
				row("12000", "", "0.2"),
			},
			wantCode: domainerror.ErrCodeBracketTableGap,
		},
		{
			name: "overlapping brackets",
			brackets: []BracketRow{
				row("0", "10000", "0.1"),
				row("8000", "", "0.2"),
			},
			wantCode: domainerror.ErrCodeBracketTableOverlap,
		},
		{
			name: "bounded top bracket",
			brackets: []BracketRow{
				row("0", "10000", "0.1"),
				row("10000", "50000", "0.2"),
			},
			wantCode: domainerror.ErrCodeMissingTopBracket,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBracketRepo()
			uc := NewImportBracketTableUseCase(repo)

			_, err := uc.Execute(context.Background(), ImportBracketTableInput{
				Jurisdiction: "US",
				TaxYear:      2025,
				Brackets:     tt.brackets,
			})
			if err == nil {
				t.Fatal("Execute() expected error, got nil")
			}

			var bracketErr *domainerror.BracketError
			if !errors.As(err, &bracketErr) {
				t.Fatalf("expected BracketError, got %T: %v", err, err)
			}
			if bracketErr.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", bracketErr.Code, tt.wantCode)
			}

			if len(repo.tables) != 0 {
				t.Error("invalid table must not be stored")
			}
		})
	}
}

func TestImportBracketTable_RejectsAncientTaxYear(t *testing.T) {
	uc := NewImportBracketTableUseCase(newFakeBracketRepo())

	_, err := uc.Execute(context.Background(), ImportBracketTableInput{
		Jurisdiction: "US",
		TaxYear:      1492,
		Brackets:     []BracketRow{row("0", "", "0.1")},
	})

	var bracketErr *domainerror.BracketError
	if !errors.As(err, &bracketErr) || bracketErr.Code != domainerror.ErrCodeInvalidTaxYear {
		t.Fatalf("expected invalid tax year error, got %v", err)
	}
}

func TestListBrackets_UnknownPairSurfacesNotFound(t *testing.T) {
	uc := NewListBracketsUseCase(newFakeBracketRepo())

	_, err := uc.Execute(context.Background(), ListBracketsInput{
		Jurisdiction: "atlantis",
		TaxYear:      1999,
	})
	if !errors.Is(err, domainerror.ErrBracketTableNotFound) {
		t.Fatalf("expected ErrBracketTableNotFound, got %v", err)
	}
}
