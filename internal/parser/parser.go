// Package parser holds the per-provider statement grammars: a multi-line
// block grammar for wallet statements and a single-line tabular grammar
// for bank statements. Providers without a dedicated grammar degrade to
// best-effort wallet parsing instead of failing.
package parser

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/financeapp/statement-engine/internal/category"
	"github.com/financeapp/statement-engine/internal/decoder"
	"github.com/financeapp/statement-engine/internal/models"
)

// Grammar extracts transactions from a decoded document. Parse returns
// the transactions, one message per rejected candidate block/row, and
// per-line warnings; it never fails as a whole. Rejection messages are
// kept separate from warnings so the caller can surface them as partial
// failures.
type Grammar interface {
	Parse(doc *decoder.Document, sourceFormat string) (txns []models.ParsedTransaction, rejects []string, warnings []string)
	Name() string
}

// Resolve picks the grammar for a provider. For providers without a
// dedicated grammar the wallet grammar is returned together with a
// fallback warning; the caller must surface it.
func Resolve(p models.Provider, tax *category.Taxonomy, log zerolog.Logger) (Grammar, string) {
	switch p {
	case models.ProviderPhonePe:
		return NewWallet(tax, log), ""
	case models.ProviderKotak:
		return NewKotak(tax, log), ""
	default:
		warning := fmt.Sprintf("no dedicated parser for statement type %q; falling back to generic wallet parsing", p)
		log.Warn().Str("provider", string(p)).Msg("falling back to wallet grammar")
		return NewWallet(tax, log), warning
	}
}
