package lexicon

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a monetary string like "1,234.56", "₹250.00" or
// "-$1,234.56" into a decimal. Currency symbols, grouping commas and
// whitespace (including non-breaking spaces) are stripped first.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	for _, sym := range []string{"₹", "£", "$", "€", ",", " ", " "} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	if cleaned == "" || cleaned == "-" || cleaned == "+" {
		return decimal.Zero, fmt.Errorf("empty amount %q", s)
	}
	cleaned = strings.TrimPrefix(cleaned, "+")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q: %w", s, err)
	}
	return d, nil
}
