package decoder

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// DecodeHTML pulls transaction table rows out of an HTML statement. Each
// <tr> with at least three cells becomes one line (cell texts joined by a
// space) and one grid row, so both line-oriented and tabular grammars can
// consume the result.
func DecodeHTML(data []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	doc := &Document{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			cells := rowCells(n)
			if len(cells) >= 3 {
				if doc.Header == nil && len(doc.Grid) == 0 && looksLikeHeader(cells) {
					doc.Header = cells
				} else {
					doc.Grid = append(doc.Grid, cells)
					doc.Lines = append(doc.Lines, strings.Join(cells, " "))
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return doc, nil
}

// rowCells collects the text of each td/th cell under a tr node.
func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, strings.TrimSpace(nodeText(c)))
		}
	}
	return cells
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
