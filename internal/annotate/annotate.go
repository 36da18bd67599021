// Package annotate enriches extracted transactions with a duplicate flag
// (via an injected existence oracle) and an advisory confidence score.
// Neither annotation can reject a transaction.
package annotate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/financeapp/statement-engine/internal/models"
)

// ExistenceOracle is the single capability the engine consumes from the
// persistence layer: does an equivalent transaction already exist for
// this owner?
type ExistenceOracle interface {
	Exists(ctx context.Context, ownerID string, amount decimal.Decimal, description string, date time.Time) (bool, error)
}

// Annotator applies duplicate and confidence annotations in order.
type Annotator struct {
	oracle ExistenceOracle
	log    zerolog.Logger
}

// New builds an annotator. A nil oracle disables duplicate flagging;
// confidence is still computed.
func New(oracle ExistenceOracle, log zerolog.Logger) *Annotator {
	return &Annotator{oracle: oracle, log: log}
}

// Annotate fills Confidence and IsDuplicate on each transaction, issuing
// one sequential oracle call per transaction in order. An oracle error is
// non-fatal: the transaction keeps duplicate=false and a warning is
// returned.
func (a *Annotator) Annotate(ctx context.Context, ownerID string, txns []models.ParsedTransaction) []string {
	var warnings []string
	for i := range txns {
		txns[i].Confidence = Confidence(txns[i].Description)

		if a.oracle == nil {
			continue
		}
		dup, err := a.oracle.Exists(ctx, ownerID, txns[i].Amount, txns[i].Description, txns[i].Date)
		if err != nil {
			a.log.Warn().Err(err).Str("description", txns[i].Description).Msg("duplicate check failed")
			warnings = append(warnings, fmt.Sprintf("duplicate check failed for %q: %v", txns[i].Description, err))
			dup = false
		}
		flag := dup
		txns[i].IsDuplicate = &flag
	}
	return warnings
}

// Well-known merchant and payment brand tokens that raise confidence.
var brandTokens = []string{
	"swiggy", "zomato", "amazon", "flipkart", "uber", "ola",
	"paytm", "phonepe", "gpay",
}

// Confidence scores how certain the extraction looks: base 0.5, +0.3 for
// a recognized brand token, +0.2 for a UPI-style handle, capped at 1.0.
// Advisory only; deterministic for a given description.
func Confidence(description string) float64 {
	desc := strings.ToLower(description)
	confidence := 0.5

	for _, token := range brandTokens {
		if strings.Contains(desc, token) {
			confidence += 0.3
			break
		}
	}
	if strings.Contains(desc, "upi") || strings.Contains(desc, "@") {
		confidence += 0.2
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
