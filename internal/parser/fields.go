package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/financeapp/statement-engine/internal/lexicon"
	"github.com/financeapp/statement-engine/internal/models"
)

// fieldSet accumulates everything recognized inside one transaction block.
// It is local to a single block; a recognized line feeds exactly one field
// (first matching rule wins).
type fieldSet struct {
	timeOfDay     string
	description   string
	origDesc      string
	transactionID string
	utr           string
	accountNote   string
	amount        decimal.Decimal
	hasAmount     bool
	direction     models.Direction
	hasDirection  bool
	raw           []string
}

func (fs *fieldSet) setDirection(d models.Direction) {
	if !fs.hasDirection {
		fs.direction = d
		fs.hasDirection = true
	}
}

// Wallet statement line markers.
var (
	timePattern    = regexp.MustCompile(`^\d{1,2}:\d{2}\s+(AM|PM)$`)
	txnIDPattern   = regexp.MustCompile(`Transaction ID\s*:\s*([A-Za-z0-9]+)`)
	utrPattern     = regexp.MustCompile(`UTR No\s*:\s*([0-9]+)`)
	accountPattern = regexp.MustCompile(`(Debited from|Credited to)\s+(XX\d+|UPI Lite|Account)`)
	amountDirPat   = regexp.MustCompile(`(Debit|Credit)\s+INR\s+([\d,]+\.?\d*)`)

	pageFooterPattern = regexp.MustCompile(`^Page \d+ of \d+$`)
	bareNumberPattern = regexp.MustCompile(`^\d+$`)
	wordPattern       = regexp.MustCompile(`[A-Za-z]{3,}`)
)

// fieldRule is one entry of the extraction cascade. apply reports whether
// the line was consumed by this rule; warn carries a non-fatal problem.
type fieldRule struct {
	name  string
	apply func(line string, fs *fieldSet) (consumed bool, warn string)
}

// walletCascade is the ordered rule table applied to each follow line of a
// block. Order is the contract: a time token must not be mistaken for a
// description, an amount line must win over the description heuristic.
var walletCascade = []fieldRule{
	{"time", func(line string, fs *fieldSet) (bool, string) {
		if !timePattern.MatchString(line) {
			return false, ""
		}
		fs.timeOfDay = line
		return true, ""
	}},
	{"transaction-id", func(line string, fs *fieldSet) (bool, string) {
		m := txnIDPattern.FindStringSubmatch(line)
		if m == nil {
			return false, ""
		}
		fs.transactionID = m[1]
		return true, ""
	}},
	{"utr", func(line string, fs *fieldSet) (bool, string) {
		m := utrPattern.FindStringSubmatch(line)
		if m == nil {
			return false, ""
		}
		fs.utr = m[1]
		return true, ""
	}},
	{"account", func(line string, fs *fieldSet) (bool, string) {
		if !accountPattern.MatchString(line) {
			return false, ""
		}
		fs.accountNote = line
		return true, ""
	}},
	{"amount", func(line string, fs *fieldSet) (bool, string) {
		m := amountDirPat.FindStringSubmatch(line)
		if m == nil {
			return false, ""
		}
		amt, err := lexicon.ParseAmount(m[2])
		if err != nil {
			// Unparseable number: let the line fall through to later rules.
			return false, fmt.Sprintf("unparseable amount in line %q", line)
		}
		fs.amount = amt
		fs.hasAmount = true
		fs.direction = models.Expense
		if m[1] == "Credit" {
			fs.direction = models.Income
		}
		fs.hasDirection = true
		return true, ""
	}},
	{"description", func(line string, fs *fieldSet) (bool, string) {
		if fs.description != "" {
			return false, ""
		}
		switch {
		case strings.HasPrefix(line, "Paid to "):
			fs.origDesc = line
			fs.description = strings.TrimSpace(strings.TrimPrefix(line, "Paid to "))
			fs.setDirection(models.Expense)
		case strings.HasPrefix(line, "Received from "):
			fs.origDesc = line
			fs.description = strings.TrimSpace(strings.TrimPrefix(line, "Received from "))
			fs.setDirection(models.Income)
		case strings.HasPrefix(line, "Paid - "):
			fs.origDesc = line
			fs.description = strings.TrimSpace(strings.TrimPrefix(line, "Paid - "))
			fs.setDirection(models.Expense)
		case strings.HasPrefix(line, "Paid"):
			fs.origDesc = line
			fs.description = strings.TrimSpace(strings.TrimPrefix(line, "Paid"))
			fs.setDirection(models.Expense)
		case strings.Contains(line, "Mobile Recharge") || strings.Contains(line, "Recharge"):
			fs.origDesc = line
			fs.description = "Mobile Recharge"
			fs.setDirection(models.Expense)
		case looksLikeDescription(line):
			fs.origDesc = line
			fs.description = line
			fs.setDirection(models.Expense)
		default:
			return false, ""
		}
		return true, ""
	}},
}

// looksLikeDescription filters out pagination footers, boilerplate, bare
// numbers and URLs; anything left needs at least three consecutive letters.
func looksLikeDescription(line string) bool {
	if pageFooterPattern.MatchString(line) ||
		strings.Contains(line, "This is a system generated statement") ||
		strings.Contains(line, "Date Transaction Details Type Amount") ||
		strings.Contains(line, "https://") ||
		bareNumberPattern.MatchString(line) ||
		len(line) < 3 {
		return false
	}
	return wordPattern.MatchString(line)
}

// extractFields folds the cascade over a block's follow lines. Every line
// is retained in the raw list for fallback description recovery, whether
// or not a rule consumed it.
func extractFields(lines []string) (fieldSet, []string) {
	var fs fieldSet
	var warnings []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fs.raw = append(fs.raw, line)

		for _, rule := range walletCascade {
			consumed, warn := rule.apply(line, &fs)
			if warn != "" {
				warnings = append(warnings, warn)
			}
			if consumed {
				break
			}
		}
	}
	return fs, warnings
}
