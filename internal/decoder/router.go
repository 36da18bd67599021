package decoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/financeapp/statement-engine/internal/models"
)

// Sentinel errors for document-level failures. Anything wrapping
// ErrDecode means the bytes could not be turned into text at all;
// per-line problems never surface from this package.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrDecode            = errors.New("failed to decode document")
)

// Route selects a decoder by declared extension and returns the decoded
// document. The extension comparison is case-insensitive and tolerates a
// leading dot.
func Route(data []byte, extension string) (*Document, models.FileFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))

	switch ext {
	case "pdf":
		doc, err := DecodePDF(data)
		return doc, models.FormatPDF, err
	case "csv":
		doc, err := DecodeCSV(data)
		return doc, models.FormatCSV, err
	case "html", "htm":
		doc, err := DecodeHTML(data)
		return doc, models.FormatHTML, err
	case "xlsx":
		doc, err := DecodeXLSX(data)
		return doc, models.FormatXLSX, err
	case "xls":
		doc, err := DecodeXLS(data)
		return doc, models.FormatXLS, err
	default:
		return nil, "", fmt.Errorf("%w: %q (expected pdf, csv, html, xlsx or xls)", ErrUnsupportedFormat, extension)
	}
}

// walletBannerKeywords identify wallet-app spreadsheet exports that should
// be flattened into pseudo-lines for block parsing instead of being kept
// as a header+rows table. Scanned over the first rows only.
var walletBannerKeywords = []string{"phonepe", "transaction statement"}

const bannerScanRows = 10

// isWalletSheet sniffs the top of a spreadsheet for wallet banners.
func isWalletSheet(rows [][]string) bool {
	limit := len(rows)
	if limit > bannerScanRows {
		limit = bannerScanRows
	}
	for _, row := range rows[:limit] {
		for _, cell := range row {
			lower := strings.ToLower(cell)
			for _, kw := range walletBannerKeywords {
				if strings.Contains(lower, kw) {
					return true
				}
			}
			if strings.Contains(lower, "paid to") && strings.Contains(lower, "transaction id") {
				return true
			}
		}
	}
	return false
}

// sheetDocument builds a Document from spreadsheet rows, flattening wallet
// exports and keeping everything else as a header+rows table.
func sheetDocument(rows [][]string) *Document {
	if isWalletSheet(rows) {
		doc := &Document{Grid: rows}
		return &Document{Lines: doc.FlattenedGrid()}
	}

	doc := &Document{}
	for _, row := range rows {
		if doc.Header == nil && looksLikeHeader(row) {
			doc.Header = row
			continue
		}
		doc.Grid = append(doc.Grid, row)
	}
	return doc
}
