package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/financeapp/statement-engine/internal/category"
	"github.com/financeapp/statement-engine/internal/decoder"
	"github.com/financeapp/statement-engine/internal/lexicon"
	"github.com/financeapp/statement-engine/internal/models"
)

// WalletGrammar parses UPI wallet statements laid out as multi-line blocks
// anchored on a bare date line:
//
//	May 30, 2025
//	10:15 AM
//	Paid to Example Store
//	Transaction ID : T123
//	Debit INR 250.00
//
// It also carries the generic tabular fallbacks (header-mapped grids and
// single-line "date amount description" rows) used for CSV/HTML exports
// and for providers without a dedicated grammar.
type WalletGrammar struct {
	tax *category.Taxonomy
	log zerolog.Logger
}

// NewWallet builds the wallet grammar.
func NewWallet(tax *category.Taxonomy, log zerolog.Logger) *WalletGrammar {
	return &WalletGrammar{tax: tax, log: log}
}

func (g *WalletGrammar) Name() string { return "wallet" }

// walletAnchor matches a line that is nothing but a "Mon D, YYYY" date.
var walletAnchor = regexp.MustCompile(`^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},\s+\d{4}$`)

// genericLinePattern recovers "date amount description" rows from exports
// that collapse each transaction onto one line. A signed amount means
// credit when non-negative.
var genericLinePattern = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s+([-+]?[₹$]?[\d,]+\.?\d*)\s+(.+)`)

var (
	longRefPattern   = regexp.MustCompile(`\d{12,16}`)
	upiHandlePattern = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
)

// Parse extracts transactions from the document. Block parsing applies
// when any line matches the wallet date anchor; otherwise the grammar
// degrades to header-mapped grid parsing and then to single-line rows.
func (g *WalletGrammar) Parse(doc *decoder.Document, sourceFormat string) ([]models.ParsedTransaction, []string, []string) {
	lines := doc.Lines
	if len(lines) == 0 {
		lines = doc.FlattenedGrid()
	}

	for _, line := range lines {
		if walletAnchor.MatchString(strings.TrimSpace(line)) {
			return g.parseBlocks(lines, sourceFormat)
		}
	}

	if len(doc.Header) > 0 {
		if txns, rejects, warns, ok := g.parseHeaderedGrid(doc, sourceFormat); ok {
			return txns, rejects, warns
		}
	}
	return g.parseGenericLines(lines, sourceFormat)
}

func (g *WalletGrammar) parseBlocks(lines []string, sourceFormat string) ([]models.ParsedTransaction, []string, []string) {
	var txns []models.ParsedTransaction
	var rejects, warnings []string

	for _, block := range Segment(lines, walletAnchor) {
		date, err := lexicon.ParseDate(block.Anchor)
		if err != nil {
			rejects = append(rejects, fmt.Sprintf("skipped block with unparseable date %q", block.Anchor))
			continue
		}

		fs, warns := extractFields(block.Lines)
		warnings = append(warnings, warns...)

		txn, ok := g.assemble(date, fs, sourceFormat)
		if !ok {
			rejects = append(rejects, fmt.Sprintf("dropped block at %q: no valid amount", block.Anchor))
			continue
		}
		txns = append(txns, txn)
	}

	g.log.Debug().Int("parsed", len(txns)).Int("rejected", len(rejects)).Msg("wallet block parsing done")
	return txns, rejects, warnings
}

// assemble reduces a block's field set into one transaction. A block
// without a positive amount is rejected; a missing description is
// recovered from the raw lines or replaced by a placeholder.
func (g *WalletGrammar) assemble(date time.Time, fs fieldSet, sourceFormat string) (models.ParsedTransaction, bool) {
	if !fs.hasAmount || !fs.amount.IsPositive() {
		g.log.Debug().Str("anchor", date.Format("2006-01-02")).Msg("block rejected: missing or non-positive amount")
		return models.ParsedTransaction{}, false
	}

	desc := fs.description
	orig := fs.origDesc
	if desc == "" {
		for _, line := range fs.raw {
			if looksLikeDescription(line) && !strings.Contains(line, "INR") && !strings.Contains(line, "Transaction ID") {
				desc = line
				orig = line
				break
			}
		}
	}
	if desc == "" {
		desc = "Unknown Transaction"
	}

	dir := models.Expense
	if fs.hasDirection {
		dir = fs.direction
	}

	when := date
	if fs.timeOfDay != "" {
		if h, m, err := lexicon.ParseClock(fs.timeOfDay); err == nil {
			when = lexicon.At(date, h, m)
		}
	}

	txn := models.ParsedTransaction{
		Amount:              fs.amount,
		Description:         desc,
		OriginalDescription: orig,
		Direction:           dir,
		Category:            g.tax.Categorize(desc, fs.amount, dir),
		Date:                when,
		CounterParty:        desc,
		TransactionID:       fs.transactionID,
		ReferenceNumber:     fs.utr,
		SourceFormat:        sourceFormat,
	}
	if handle := upiHandlePattern.FindString(strings.Join(fs.raw, " ")); handle != "" {
		txn.CounterParty = handle
	}
	return txn, true
}

// parseHeaderedGrid maps date/amount/description columns by header name.
// ok is false when the header carries none of the expected columns, so the
// caller can fall through to line-oriented parsing.
func (g *WalletGrammar) parseHeaderedGrid(doc *decoder.Document, sourceFormat string) ([]models.ParsedTransaction, []string, []string, bool) {
	dateCol, amountCol, descCol := -1, -1, -1
	for i, h := range doc.Header {
		switch h := strings.ToLower(h); {
		case strings.Contains(h, "date") || strings.Contains(h, "time"):
			dateCol = i
		case strings.Contains(h, "amount") || strings.Contains(h, "value"):
			amountCol = i
		case strings.Contains(h, "description") || strings.Contains(h, "details") || strings.Contains(h, "narration"):
			descCol = i
		}
	}
	if dateCol < 0 || amountCol < 0 || descCol < 0 {
		return nil, nil, nil, false
	}

	var txns []models.ParsedTransaction
	var rejects, warnings []string

	for _, row := range doc.Grid {
		if dateCol >= len(row) || amountCol >= len(row) || descCol >= len(row) {
			continue
		}
		date, derr := lexicon.ParseDate(row[dateCol])
		amount, aerr := lexicon.ParseAmount(row[amountCol])
		desc := strings.TrimSpace(row[descCol])
		// A zero amount is not a transaction; sign alone is legal since it
		// carries direction.
		if derr != nil || aerr != nil || desc == "" || amount.IsZero() {
			rejects = append(rejects, fmt.Sprintf("dropped row %q", strings.Join(row, " ")))
			continue
		}
		txns = append(txns, g.fromRow(date, amount, desc, sourceFormat))
	}
	return txns, rejects, warnings, true
}

func (g *WalletGrammar) parseGenericLines(lines []string, sourceFormat string) ([]models.ParsedTransaction, []string, []string) {
	var txns []models.ParsedTransaction
	var rejects, warnings []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := genericLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		date, derr := lexicon.ParseDate(m[1])
		amount, aerr := lexicon.ParseAmount(m[2])
		if derr != nil || aerr != nil || amount.IsZero() {
			rejects = append(rejects, fmt.Sprintf("dropped line %q", line))
			continue
		}
		txn := g.fromRow(date, amount, strings.TrimSpace(m[3]), sourceFormat)
		if ref := longRefPattern.FindString(line); ref != "" {
			txn.ReferenceNumber = ref
		}
		if handle := upiHandlePattern.FindString(line); handle != "" {
			txn.CounterParty = handle
		}
		txns = append(txns, txn)
	}
	return txns, rejects, warnings
}

// fromRow builds a transaction from an already-split date/amount/description
// triple. Sign carries direction: non-negative amounts are income.
func (g *WalletGrammar) fromRow(date time.Time, amount decimal.Decimal, desc, sourceFormat string) models.ParsedTransaction {
	dir := models.Income
	if amount.IsNegative() {
		dir = models.Expense
	}
	abs := amount.Abs()
	clean := cleanWalletDescription(desc)
	return models.ParsedTransaction{
		Amount:              abs,
		Description:         clean,
		OriginalDescription: desc,
		Direction:           dir,
		Category:            g.tax.Categorize(clean, abs, dir),
		Date:                date,
		SourceFormat:        sourceFormat,
	}
}

var walletPrefixPattern = regexp.MustCompile(`^(Paid to|Received from|Paid -)\s*`)

// cleanWalletDescription collapses whitespace and strips the well-known
// wallet description prefixes.
func cleanWalletDescription(desc string) string {
	cleaned := strings.Join(strings.Fields(desc), " ")
	cleaned = walletPrefixPattern.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
