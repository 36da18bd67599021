package decoder

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DecodePDF extracts the text lines of a PDF statement. Row-grouped
// extraction is tried first since it preserves statement layout; if that
// yields garbage (custom font encodings), plain-text extraction is tried
// before giving up. Scanned/image-only PDFs fail with ErrDecode.
func DecodePDF(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: PDF library crashed: %v", ErrDecode, r)
		}
	}()

	reader, openErr := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if openErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, openErr)
	}
	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("%w: PDF has no pages", ErrDecode)
	}

	lines := extractByRow(reader, numPages)
	if !isReadableText(lines) {
		lines = extractByContent(reader, numPages)
	}
	if !isReadableText(lines) {
		return nil, fmt.Errorf("%w: no readable text in PDF; the file may be image-based or use undecodable fonts", ErrDecode)
	}
	return &Document{Lines: lines}, nil
}

// extractByRow uses GetTextByRow, the best method for well-structured PDFs.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var lines []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// extractByContent reconstructs rows from raw text objects, grouping by Y
// coordinate and sorting by X. Handles PDFs where GetTextByRow loses text.
func extractByContent(r *pdf.Reader, numPages int) []string {
	var lines []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type textItem struct {
			x float64
			s string
		}
		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		// PDF Y runs bottom-to-top
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

			var sb strings.Builder
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					sb.WriteString("  ")
				}
				sb.WriteString(item.s)
				prevX = item.x
			}
			line := strings.TrimSpace(sb.String())
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// isReadableText guards against garbage from identity-encoded fonts:
// requires some length and a high ratio of plain ASCII characters.
func isReadableText(lines []string) bool {
	total, readable := 0, 0
	for _, line := range lines {
		for _, r := range line {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || r == ' ' || r == '\t' ||
				strings.ContainsRune(".,-/:;()'\"₹£$€%&@#!?+=*", r) {
				readable++
			}
		}
	}
	if total <= 50 {
		return false
	}
	return float64(readable)/float64(total) > 0.6
}
