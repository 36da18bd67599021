// Package writer renders parse results as CSV for the command line mode.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/financeapp/statement-engine/internal/models"
)

// CSVWriter writes parsed transactions to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the result to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, result *models.ParseResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, result)
}

// Write writes the result's transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, result *models.ParseResult) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		if result.Metadata.FileName != "" {
			writer.Write([]string{"# Source", result.Metadata.FileName})
		}
		if result.Metadata.FileFormat != "" {
			writer.Write([]string{"# Format", result.Metadata.FileFormat})
		}
		if result.Metadata.DateRangeStart != nil && result.Metadata.DateRangeEnd != nil {
			writer.Write([]string{"# Period", fmt.Sprintf("%s to %s",
				result.Metadata.DateRangeStart.Format("2006-01-02"),
				result.Metadata.DateRangeEnd.Format("2006-01-02"))})
		}
	}

	header := []string{"Date", "Description", "Type", "Category", "Amount", "Reference", "Confidence", "Duplicate"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range result.Transactions {
		dup := ""
		if txn.IsDuplicate != nil {
			dup = strconv.FormatBool(*txn.IsDuplicate)
		}
		row := []string{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			string(txn.Direction),
			string(txn.Category),
			txn.Amount.StringFixed(2),
			txn.ReferenceNumber,
			strconv.FormatFloat(txn.Confidence, 'f', 2, 64),
			dup,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
