// Package valueobject contains immutable domain values and the business
// rules that operate on them.
package valueobject

import (
	"errors"
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

// bracket builds a test bracket; max == "" means open-ended.
func bracket(min, max, rate string) *entity.TaxBracket {
	b := &entity.TaxBracket{
		MinIncome: dec(min),
		Rate:      dec(rate),
	}
	if max != "" {
		b.MaxIncome = decPtr(max)
	}
	return b
}

func TestNewBracketTable_Validation(t *testing.T) {
	tests := []struct {
		name     string
		brackets []*entity.TaxBracket
		wantErr  error
	}{
		{
			name:     "empty table",
			brackets: nil,
			wantErr:  domainerror.ErrEmptyBracketTable,
		},
		{
			name: "single open-ended bracket",
			brackets: []*entity.TaxBracket{
				bracket("0", "", "0.15"),
			},
		},
		{
			name: "valid two bracket table",
			brackets: []*entity.TaxBracket{
				bracket("0", "10000", "0.1"),
				bracket("10000", "", "0.2"),
			},
		},
		{
			name: "first bracket does not start at zero",
			brackets: []*entity.TaxBracket{
				bracket("100", "10000", "0.1"),
				bracket("10000", "", "0.2"),
			},
			wantErr: domainerror.ErrBracketTableGap,
		},
		{
			name: "gap between brackets",
			brackets: []*entity.TaxBracket{
				bracket("0", "10000", "0.1"),
				bracket("12000", "", "0.2"),
			},
			wantErr: domainerror.ErrBracketTableGap,
		},
		{
			name: "overlapping brackets",
			brackets: []*entity.TaxBracket{
				bracket("0", "10000", "0.1"),
				bracket("8000", "", "0.2"),
			},
			wantErr: domainerror.ErrBracketTableGap,
		},
		{
			name: "no open-ended top bracket",
			brackets: []*entity.TaxBracket{
				bracket("0", "10000", "0.1"),
				bracket("10000", "50000", "0.2"),
			},
			wantErr: domainerror.ErrMissingTopBracket,
		},
		{
			name: "open-ended bracket not last",
			brackets: []*entity.TaxBracket{
				bracket("0", "", "0.1"),
				bracket("10000", "30000", "0.2"),
				bracket("30000", "", "0.3"),
			},
			wantErr: domainerror.ErrUnboundedBracketNotLast,
		},
		{
			name: "rate above one",
			brackets: []*entity.TaxBracket{
				bracket("0", "", "1.5"),
			},
			wantErr: domainerror.ErrInvalidBracketRate,
		},
		{
			name: "negative rate",
			brackets: []*entity.TaxBracket{
				bracket("0", "", "-0.1"),
			},
			wantErr: domainerror.ErrInvalidBracketRate,
		},
		{
			name: "inverted bracket bounds",
			brackets: []*entity.TaxBracket{
				bracket("0", "0", "0.1"),
			},
			wantErr: domainerror.ErrBracketTableOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBracketTable(tt.brackets)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBracketTable_Apply(t *testing.T) {
	twoBracket := []*entity.TaxBracket{
		bracket("0", "10000", "0.1"),
		bracket("10000", "", "0.2"),
	}

	tests := []struct {
		name     string
		brackets []*entity.TaxBracket
		income   string
		want     string
	}{
		{
			name: "flat single bracket taxes entire income at rate",
			brackets: []*entity.TaxBracket{
				bracket("0", "", "0.15"),
			},
			income: "1234.56",
			want:   "185.184",
		},
		{
			name:     "income within first bracket",
			brackets: twoBracket,
			income:   "5000",
			want:     "500",
		},
		{
			name:     "income spanning both brackets taxes each slice at its own rate",
			brackets: twoBracket,
			income:   "15000",
			want:     "2000", // 10000*0.1 + 5000*0.2
		},
		{
			name:     "income exactly at bracket boundary stays in lower bracket",
			brackets: twoBracket,
			income:   "10000",
			want:     "1000",
		},
		{
			name:     "zero income yields zero tax",
			brackets: twoBracket,
			income:   "0",
			want:     "0",
		},
		{
			name: "three bracket table",
			brackets: []*entity.TaxBracket{
				bracket("0", "10000", "0"),
				bracket("10000", "40000", "0.12"),
				bracket("40000", "", "0.25"),
			},
			income: "50000",
			want:   "6100", // 0 + 30000*0.12 + 10000*0.25
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewBracketTable(tt.brackets)
			if err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}

			got, err := table.Apply(dec(tt.income))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("Apply(%s) = %s, want %s", tt.income, got, tt.want)
			}
		})
	}
}

func TestBracketTable_Apply_NegativeIncome(t *testing.T) {
	table, err := NewBracketTable([]*entity.TaxBracket{
		bracket("0", "", "0.15"),
	})
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	_, err = table.Apply(dec("-1"))
	if !errors.Is(err, domainerror.ErrNegativeTaxableIncome) {
		t.Fatalf("expected ErrNegativeTaxableIncome, got %v", err)
	}
}

func TestBracketTable_Apply_Monotonic(t *testing.T) {
	table, err := NewBracketTable([]*entity.TaxBracket{
		bracket("0", "9875", "0.10"),
		bracket("9875", "40125", "0.12"),
		bracket("40125", "85525", "0.22"),
		bracket("85525", "", "0.24"),
	})
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	// Tax must never decrease as income increases, including across
	// bracket boundaries.
	prev := decimal.Zero
	for income := int64(0); income <= 120000; income += 250 {
		tax, err := table.Apply(decimal.NewFromInt(income))
		if err != nil {
			t.Fatalf("unexpected error at income %d: %v", income, err)
		}
		if tax.LessThan(prev) {
			t.Fatalf("tax decreased from %s to %s at income %d", prev, tax, income)
		}
		prev = tax
	}
}

func TestFlatRate(t *testing.T) {
	got, err := FlatRate(dec("20000"), dec("0.15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(dec("3000")) {
		t.Errorf("FlatRate(20000, 0.15) = %s, want 3000", got)
	}

	_, err = FlatRate(dec("-0.01"), dec("0.15"))
	if !errors.Is(err, domainerror.ErrNegativeTaxableIncome) {
		t.Fatalf("expected ErrNegativeTaxableIncome, got %v", err)
	}
}
