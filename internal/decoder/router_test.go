package decoder

import (
	"errors"
	"testing"
)

func TestRouteUnsupportedExtension(t *testing.T) {
	for _, ext := range []string{".docx", "docx", ".txt", "", ".zip"} {
		_, _, err := Route([]byte("data"), ext)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Route(ext=%q) error = %v, want ErrUnsupportedFormat", ext, err)
		}
	}
}

func TestRouteExtensionNormalization(t *testing.T) {
	csvData := []byte("Date,Description,Amount\n01/12/2023,Swiggy,-250.00\n")
	for _, ext := range []string{"csv", ".csv", ".CSV", " .Csv "} {
		doc, format, err := Route(csvData, ext)
		if err != nil {
			t.Fatalf("Route(ext=%q) error: %v", ext, err)
		}
		if string(format) != "csv" {
			t.Errorf("Route(ext=%q) format = %s, want csv", ext, format)
		}
		if len(doc.Grid) != 1 {
			t.Errorf("Route(ext=%q) grid rows = %d, want 1", ext, len(doc.Grid))
		}
	}
}

func TestRouteCorruptPDF(t *testing.T) {
	_, _, err := Route([]byte("this is not a pdf"), ".pdf")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Route() error = %v, want ErrDecode", err)
	}
}

func TestIsWalletSheet(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want bool
	}{
		{"phonepe banner", [][]string{{"PhonePe Transaction Statement"}}, true},
		{"paid-to with txn id", [][]string{{"Paid to Example Store Transaction ID : T123"}}, true},
		{"plain bank table", [][]string{{"Date", "Narration", "Amount"}}, false},
		{"banner beyond scan window", append(make([][]string, bannerScanRows), []string{"phonepe"}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isWalletSheet(tt.rows); got != tt.want {
				t.Errorf("isWalletSheet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSheetDocument(t *testing.T) {
	table := [][]string{
		{"Date", "Description", "Amount"},
		{"01/12/2023", "Swiggy", "-250.00"},
	}
	doc := sheetDocument(table)
	if len(doc.Header) != 3 {
		t.Errorf("header = %v, want detected", doc.Header)
	}
	if len(doc.Grid) != 1 {
		t.Errorf("grid rows = %d, want 1", len(doc.Grid))
	}

	wallet := [][]string{
		{"PhonePe Transaction Statement"},
		{"May 30, 2025"},
		{"Paid to Example Store"},
	}
	doc = sheetDocument(wallet)
	if len(doc.Lines) != 3 {
		t.Errorf("wallet sheet lines = %d, want 3 flattened", len(doc.Lines))
	}
	if doc.Header != nil {
		t.Errorf("wallet sheet header = %v, want none", doc.Header)
	}
}
