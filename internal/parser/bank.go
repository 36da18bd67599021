package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/financeapp/statement-engine/internal/category"
	"github.com/financeapp/statement-engine/internal/decoder"
	"github.com/financeapp/statement-engine/internal/lexicon"
	"github.com/financeapp/statement-engine/internal/models"
)

// KotakGrammar parses row-oriented retail bank statements where each data
// row starts with a DD-MM-YYYY date and ends with two money columns
// tagged (Dr) or (Cr): the transaction amount and the running balance.
//
//	01-12-2023 UPI/JohnDoe/Payment UPI-998877 500.00(Dr) 10,000.00(Cr)
//
// A description that wraps without repeating the date is merged into the
// current row by look-ahead before the column grammar is applied.
type KotakGrammar struct {
	tax *category.Taxonomy
	log zerolog.Logger
}

// NewKotak builds the bank tabular grammar.
func NewKotak(tax *category.Taxonomy, log zerolog.Logger) *KotakGrammar {
	return &KotakGrammar{tax: tax, log: log}
}

func (g *KotakGrammar) Name() string { return "kotak" }

var (
	bankAnchor     = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}\s+.+`)
	bankAmountPat  = regexp.MustCompile(`([\d,]+\.\d{2})\((Dr|Cr)\)`)
	bankRefPattern = regexp.MustCompile(`\b([A-Z]{2,}-\d+|\d{12,})\b`)
)

// bankSkipMarkers flag header, footer and summary rows that are never
// transactions and must not be merged into a wrapped description.
var bankSkipMarkers = []string{
	"Statement Summary", "Opening Balance", "Branch", "IFSC", "Period :",
}

func isBankSkipLine(line string) bool {
	if line == "" || strings.HasPrefix(line, "Date") || strings.HasPrefix(line, "Page") {
		return true
	}
	for _, marker := range bankSkipMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Parse walks the statement rows, merging continuation lines forward and
// applying the column grammar to each merged row.
func (g *KotakGrammar) Parse(doc *decoder.Document, sourceFormat string) ([]models.ParsedTransaction, []string, []string) {
	lines := doc.Lines
	if len(lines) == 0 {
		lines = doc.FlattenedGrid()
	}

	var txns []models.ParsedTransaction
	var rejects, warnings []string

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if isBankSkipLine(line) || !bankAnchor.MatchString(line) {
			continue
		}

		// Merge wrapped description lines until the next dated row or a
		// terminator.
		merged := line
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || bankAnchor.MatchString(next) ||
				strings.HasPrefix(next, "Page") || strings.Contains(next, "Statement Summary") {
				break
			}
			merged += " " + next
			i = j
		}

		txn, ok := g.parseRow(merged, sourceFormat)
		if !ok {
			rejects = append(rejects, fmt.Sprintf("dropped row %q", merged))
			continue
		}
		txns = append(txns, txn)
	}

	g.log.Debug().Int("parsed", len(txns)).Int("rejected", len(rejects)).Msg("bank row parsing done")
	return txns, rejects, warnings
}

// parseRow applies the column grammar to one merged row: leading date,
// free-text description, then amount(Dr|Cr) pairs. The first pair is the
// transaction amount; a second pair is the running balance and discarded.
func (g *KotakGrammar) parseRow(row, sourceFormat string) (models.ParsedTransaction, bool) {
	date, err := lexicon.ParseDate(row[:10])
	if err != nil {
		g.log.Debug().Str("row", row).Msg("row rejected: unparseable date")
		return models.ParsedTransaction{}, false
	}
	rest := strings.TrimSpace(row[10:])

	pairs := bankAmountPat.FindAllStringSubmatch(rest, -1)
	if len(pairs) == 0 {
		g.log.Debug().Str("row", row).Msg("row rejected: no amount column")
		return models.ParsedTransaction{}, false
	}
	amount, err := lexicon.ParseAmount(pairs[0][1])
	if err != nil || !amount.IsPositive() {
		return models.ParsedTransaction{}, false
	}
	dir := models.Income
	if pairs[0][2] == "Dr" {
		dir = models.Expense
	}

	// Strip the money columns, then pull the reference code out of what
	// remains before cleaning the description.
	desc := strings.TrimSpace(bankAmountPat.ReplaceAllString(rest, ""))
	reference := ""
	if m := bankRefPattern.FindString(desc); m != "" {
		reference = m
		desc = strings.TrimSpace(strings.Replace(desc, m, "", 1))
	}
	desc = strings.Join(strings.Fields(desc), " ")

	counterParty := ""
	if strings.HasPrefix(desc, "UPI/") {
		if parts := strings.Split(desc, "/"); len(parts) >= 2 {
			counterParty = strings.TrimSpace(parts[1])
		}
	}

	clean := cleanBankDescription(desc)
	if clean == "" {
		clean = "Transaction"
	}

	txn := models.ParsedTransaction{
		Amount:              amount,
		Description:         clean,
		OriginalDescription: desc,
		Direction:           dir,
		Category:            g.tax.Categorize(desc, amount, dir),
		Date:                date,
		CounterParty:        counterParty,
		ReferenceNumber:     reference,
		SourceFormat:        sourceFormat,
	}
	g.logParsed(txn)
	return txn, true
}

func (g *KotakGrammar) logParsed(txn models.ParsedTransaction) {
	g.log.Debug().
		Str("date", txn.Date.Format("2006-01-02")).
		Str("description", txn.Description).
		Str("amount", txn.Amount.String()).
		Str("type", string(txn.Direction)).
		Msg("parsed bank row")
}

var bankNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/Payment\s+from\s+Ph$`),
	regexp.MustCompile(`/NO\s+REMARKS$`),
	regexp.MustCompile(`/UPI$`),
}

// cleanBankDescription drops trailing filler segments and rewrites channel
// prefixes. For UPI rows the counterparty segment becomes the description,
// with the purpose segment appended when it is not just a number.
func cleanBankDescription(desc string) string {
	for _, np := range bankNoisePatterns {
		desc = np.ReplaceAllString(desc, "")
	}
	desc = strings.Join(strings.Fields(desc), " ")

	if strings.HasPrefix(desc, "UPI/") {
		parts := strings.Split(desc, "/")
		if len(parts) >= 2 && strings.TrimSpace(parts[1]) != "" {
			clean := strings.TrimSpace(parts[1])
			if len(parts) > 2 {
				purpose := strings.TrimSpace(parts[2])
				if purpose != "" && !bareNumberPattern.MatchString(purpose) {
					clean += " - " + purpose
				}
			}
			return clean
		}
	}
	return strings.Replace(desc, "MB:", "Mobile Banking:", 1)
}
