package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction says which way money moved.
type Direction string

const (
	Income  Direction = "INCOME"
	Expense Direction = "EXPENSE"
)

// Provider identifies the entity that issued the statement. Providers
// without a dedicated grammar fall back to generic wallet parsing.
type Provider string

const (
	ProviderPhonePe Provider = "PHONEPE"
	ProviderKotak   Provider = "KOTAK_BANK"
	ProviderGPay    Provider = "GOOGLEPAY"
	ProviderBHIM    Provider = "BHIM_UPI"
	ProviderPaytm   Provider = "PAYTM"
	ProviderBank    Provider = "BANK_STATEMENT"
)

// ProviderFromString normalizes a user-supplied statement type, accepting
// the short CLI spellings as aliases for the canonical constants.
func ProviderFromString(s string) Provider {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	switch normalized {
	case "PHONEPE":
		return ProviderPhonePe
	case "KOTAK", "KOTAK_BANK":
		return ProviderKotak
	case "GPAY", "GOOGLEPAY":
		return ProviderGPay
	case "BHIM", "BHIM_UPI":
		return ProviderBHIM
	case "PAYTM":
		return ProviderPaytm
	case "BANK", "BANK_STATEMENT":
		return ProviderBank
	default:
		return Provider(normalized)
	}
}

// FileFormat is the declared format of an uploaded statement.
type FileFormat string

const (
	FormatPDF  FileFormat = "pdf"
	FormatCSV  FileFormat = "csv"
	FormatHTML FileFormat = "html"
	FormatXLSX FileFormat = "xlsx"
	FormatXLS  FileFormat = "xls"
)

// ParsedTransaction is one normalized transaction extracted from a statement.
// Amount is always positive; Direction carries the sign. Category is never
// empty: categorization falls back to the direction's OTHER bucket.
type ParsedTransaction struct {
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description"`
	Direction           Direction       `json:"type"`
	Category            Category        `json:"category"`
	Date                time.Time       `json:"transactionDate"`
	OriginalDescription string          `json:"originalDescription,omitempty"`
	CounterParty        string          `json:"counterParty,omitempty"`
	TransactionID       string          `json:"transactionId,omitempty"`
	ReferenceNumber     string          `json:"referenceNumber,omitempty"`
	SourceFormat        string          `json:"sourceFormat,omitempty"`
	Confidence          float64         `json:"confidence,omitempty"`
	IsDuplicate         *bool           `json:"isDuplicate,omitempty"`
}

// Metadata summarizes one parse invocation.
type Metadata struct {
	FileName              string     `json:"fileName"`
	FileFormat            string     `json:"fileFormat"`
	FileSizeBytes         int64      `json:"fileSizeBytes"`
	TotalTransactions     int        `json:"totalTransactions"`
	ParsedTransactions    int        `json:"parsedTransactions"`
	DuplicateTransactions int        `json:"duplicateTransactions"`
	ErrorTransactions     int        `json:"errorTransactions"`
	DateRangeStart        *time.Time `json:"dateRangeStart,omitempty"`
	DateRangeEnd          *time.Time `json:"dateRangeEnd,omitempty"`
}

// ParseResult is the full outcome of parsing one statement document.
// Success is false only for document-level failures (unsupported format,
// undecodable file); per-line problems land in Warnings/Errors while the
// successfully extracted transactions are still returned.
type ParseResult struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	Transactions []ParsedTransaction `json:"transactions"`
	Warnings     []string            `json:"warnings"`
	Errors       []string            `json:"errors"`
	Metadata     Metadata            `json:"metadata"`
}
