package annotate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/financeapp/statement-engine/internal/models"
)

// fakeOracle answers from a canned list and records the order of calls.
type fakeOracle struct {
	answers []bool
	err     error
	calls   []string
}

func (f *fakeOracle) Exists(_ context.Context, _ string, _ decimal.Decimal, description string, _ time.Time) (bool, error) {
	f.calls = append(f.calls, description)
	if f.err != nil {
		return false, f.err
	}
	answer := false
	if len(f.answers) > 0 {
		answer, f.answers = f.answers[0], f.answers[1:]
	}
	return answer, nil
}

func sampleTxns() []models.ParsedTransaction {
	return []models.ParsedTransaction{
		{Amount: decimal.NewFromInt(250), Description: "Swiggy order", Date: time.Now()},
		{Amount: decimal.NewFromInt(80), Description: "Local store", Date: time.Now()},
	}
}

func TestAnnotateSetsDuplicateFlags(t *testing.T) {
	oracle := &fakeOracle{answers: []bool{true, false}}
	txns := sampleTxns()

	warnings := New(oracle, zerolog.Nop()).Annotate(context.Background(), "owner-1", txns)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if txns[0].IsDuplicate == nil || !*txns[0].IsDuplicate {
		t.Error("first transaction should be flagged duplicate")
	}
	if txns[1].IsDuplicate == nil || *txns[1].IsDuplicate {
		t.Error("second transaction should not be flagged duplicate")
	}
	// Oracle consulted once per transaction, in statement order.
	if len(oracle.calls) != 2 || oracle.calls[0] != "Swiggy order" {
		t.Errorf("oracle calls = %v", oracle.calls)
	}
}

func TestAnnotateOracleErrorIsNonFatal(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("db down")}
	txns := sampleTxns()

	warnings := New(oracle, zerolog.Nop()).Annotate(context.Background(), "owner-1", txns)
	if len(warnings) != 2 {
		t.Fatalf("expected one warning per transaction, got %v", warnings)
	}
	for i := range txns {
		if txns[i].IsDuplicate == nil || *txns[i].IsDuplicate {
			t.Errorf("transaction %d should default to not-duplicate on oracle error", i)
		}
	}
}

func TestAnnotateNilOracleSkipsDuplicateCheck(t *testing.T) {
	txns := sampleTxns()
	warnings := New(nil, zerolog.Nop()).Annotate(context.Background(), "owner-1", txns)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	for i := range txns {
		if txns[i].IsDuplicate != nil {
			t.Errorf("transaction %d duplicate flag set without an oracle", i)
		}
		if txns[i].Confidence == 0 {
			t.Errorf("transaction %d confidence not computed", i)
		}
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		description string
		want        float64
	}{
		{"Local kirana store", 0.5},
		{"Swiggy order", 0.8},
		{"priya@okaxis", 0.7},
		{"UPI payment", 0.7},
		{"Swiggy via swiggy@upi", 1.0},
		{"", 0.5},
	}
	for _, tt := range tests {
		if got := Confidence(tt.description); got != tt.want {
			t.Errorf("Confidence(%q) = %v, want %v", tt.description, got, tt.want)
		}
	}
}

func TestConfidenceIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if Confidence("Swiggy order") != 0.8 {
			t.Fatal("confidence changed between calls")
		}
	}
}
