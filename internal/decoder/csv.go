package decoder

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// DecodeCSV reads a CSV export into a grid, splitting off the header row
// when the first record names known columns. Ragged rows are tolerated;
// structurally broken CSV is a document-level decode failure.
func DecodeCSV(data []byte) (*Document, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	doc := &Document{}
	for _, row := range records {
		if doc.Header == nil && doc.Grid == nil && looksLikeHeader(row) {
			doc.Header = row
			continue
		}
		doc.Grid = append(doc.Grid, row)
	}
	doc.Lines = (&Document{Grid: doc.Grid}).FlattenedGrid()
	return doc, nil
}
