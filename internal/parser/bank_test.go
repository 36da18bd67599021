package parser

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/financeapp/statement-engine/internal/category"
	"github.com/financeapp/statement-engine/internal/decoder"
	"github.com/financeapp/statement-engine/internal/models"
)

func newTestKotak() *KotakGrammar {
	return NewKotak(category.New(), zerolog.Nop())
}

func TestKotakParseRow(t *testing.T) {
	doc := &decoder.Document{Lines: []string{
		"01-12-2023 UPI/JohnDoe/Payment UPI-998877 500.00(Dr) 10,000.00(Cr)",
	}}

	txns, rejects, warnings := newTestKotak().Parse(doc, "pdf-kotak")
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d (warnings: %v)", len(txns), warnings)
	}
	if len(rejects) != 0 {
		t.Errorf("rejects = %v, want none", rejects)
	}

	txn := txns[0]
	if txn.Amount.String() != "500" {
		t.Errorf("amount = %s, want 500", txn.Amount)
	}
	if txn.Direction != models.Expense {
		t.Errorf("direction = %s, want EXPENSE", txn.Direction)
	}
	if txn.Description != "JohnDoe - Payment" {
		t.Errorf("description = %q, want %q", txn.Description, "JohnDoe - Payment")
	}
	if txn.ReferenceNumber != "UPI-998877" {
		t.Errorf("referenceNumber = %q, want UPI-998877", txn.ReferenceNumber)
	}
	if txn.CounterParty != "JohnDoe" {
		t.Errorf("counterParty = %q, want JohnDoe", txn.CounterParty)
	}
	want := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	if !txn.Date.Equal(want) {
		t.Errorf("date = %v, want %v", txn.Date, want)
	}
}

func TestKotakParseCreditRow(t *testing.T) {
	doc := &decoder.Document{Lines: []string{
		"05-12-2023 NEFT SALARY ACME CORP 50,000.00(Cr) 60,000.00(Cr)",
	}}

	txns, _, _ := newTestKotak().Parse(doc, "pdf-kotak")
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	txn := txns[0]
	if txn.Direction != models.Income {
		t.Errorf("direction = %s, want INCOME", txn.Direction)
	}
	if txn.Amount.String() != "50000" {
		t.Errorf("amount = %s, want 50000 (balance must be discarded)", txn.Amount)
	}
	if txn.Category != models.CategorySalary {
		t.Errorf("category = %s, want SALARY", txn.Category)
	}
}

// A wrapped description continues onto the next physical line without a
// date; it must merge into the preceding row.
func TestKotakParseContinuationMerge(t *testing.T) {
	doc := &decoder.Document{Lines: []string{
		"01-12-2023 UPI/JohnDoe/Payment",
		"from mobile UPI-998877 500.00(Dr) 10,000.00(Cr)",
		"02-12-2023 MB:Fund Transfer 200.00(Dr) 9,800.00(Cr)",
	}}

	txns, _, _ := newTestKotak().Parse(doc, "pdf-kotak")
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
	if txns[0].Amount.String() != "500" {
		t.Errorf("merged row amount = %s, want 500", txns[0].Amount)
	}
	if txns[0].ReferenceNumber != "UPI-998877" {
		t.Errorf("merged row reference = %q", txns[0].ReferenceNumber)
	}
	if txns[1].Description != "Mobile Banking:Fund Transfer" {
		t.Errorf("description = %q, want MB: rewritten", txns[1].Description)
	}
}

func TestKotakParseSkipsHeadersAndSummary(t *testing.T) {
	doc := &decoder.Document{Lines: []string{
		"Date Narration Chq/Ref No Withdrawal Deposit Balance",
		"Period : 01-12-2023 to 31-12-2023",
		"01-12-2023 UPI/JohnDoe/Payment UPI-998877 500.00(Dr) 10,000.00(Cr)",
		"Statement Summary",
		"Page 1 of 1",
	}}

	txns, rejects, _ := newTestKotak().Parse(doc, "pdf-kotak")
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if len(rejects) != 0 {
		t.Errorf("rejects = %v, want none", rejects)
	}
}

func TestKotakParseRowWithoutAmountRejected(t *testing.T) {
	doc := &decoder.Document{Lines: []string{
		"01-12-2023 UPI/JohnDoe/Payment no money columns here",
	}}

	txns, rejects, warnings := newTestKotak().Parse(doc, "pdf-kotak")
	if len(txns) != 0 {
		t.Fatalf("expected 0 transactions, got %d", len(txns))
	}
	if len(rejects) != 1 {
		t.Errorf("rejects = %v, want 1 message", rejects)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestCleanBankDescription(t *testing.T) {
	tests := []struct{ in, want string }{
		{"UPI/JohnDoe/Payment", "JohnDoe - Payment"},
		{"UPI/JohnDoe/123456", "JohnDoe"},
		{"UPI/JohnDoe/Payment from Ph", "JohnDoe"},
		{"UPI/Shop/NO REMARKS", "Shop"},
		{"MB:Fund Transfer", "Mobile Banking:Fund Transfer"},
		{"NEFT SALARY ACME", "NEFT SALARY ACME"},
	}
	for _, tt := range tests {
		if got := cleanBankDescription(tt.in); got != tt.want {
			t.Errorf("cleanBankDescription(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
