// Package decoder turns uploaded statement bytes into a flat document the
// provider grammars can walk: either ordered text lines or a cell grid
// with an optional header row. The document is owned by a single parse
// invocation and discarded afterwards.
package decoder

import "strings"

// Document is the decoded form of one uploaded statement.
type Document struct {
	// Lines is the ordered text of the statement (PDF pages, HTML table
	// rows, or a flattened spreadsheet).
	Lines []string
	// Grid holds the data rows of tabular sources (CSV, spreadsheets).
	Grid [][]string
	// Header is the column header row accompanying Grid, when one was
	// detected.
	Header []string
}

// FlattenedGrid renders grid rows as pseudo-lines, non-empty cells joined
// by a single space, so line-oriented grammars can run over tabular input.
func (d *Document) FlattenedGrid() []string {
	var lines []string
	if len(d.Header) > 0 {
		if line := joinCells(d.Header); line != "" {
			lines = append(lines, line)
		}
	}
	for _, row := range d.Grid {
		if line := joinCells(row); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func joinCells(row []string) string {
	var parts []string
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, " ")
}

// headerKeywords mark a row as a column header rather than data.
var headerKeywords = []string{"date", "amount", "description", "details", "narration", "value"}

// looksLikeHeader reports whether a row names at least one known column.
func looksLikeHeader(row []string) bool {
	for _, cell := range row {
		lower := strings.ToLower(cell)
		for _, kw := range headerKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
