// Package engine ties the format router, provider grammars and annotator
// into the single parse entry point. One invocation is a pure synchronous
// computation over its input bytes (plus one oracle call per transaction);
// the engine holds no mutable state, so one Engine may serve concurrent
// parses.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/financeapp/statement-engine/internal/annotate"
	"github.com/financeapp/statement-engine/internal/category"
	"github.com/financeapp/statement-engine/internal/decoder"
	"github.com/financeapp/statement-engine/internal/models"
	"github.com/financeapp/statement-engine/internal/parser"
)

// Engine parses uploaded statement documents into normalized transactions.
type Engine struct {
	tax *category.Taxonomy
	log zerolog.Logger
}

// New builds an engine around a taxonomy. The taxonomy is read-only after
// construction.
func New(tax *category.Taxonomy, log zerolog.Logger) *Engine {
	return &Engine{tax: tax, log: log}
}

// Request carries one statement to parse. Oracle may be nil, which skips
// duplicate flagging. Callers are expected to cap Data size before
// invoking; the engine itself imposes no limit.
type Request struct {
	Data      []byte
	FileName  string
	Extension string
	Provider  models.Provider
	OwnerID   string
	Oracle    annotate.ExistenceOracle
}

// Parse runs the full pipeline: route and decode, dispatch to the
// provider grammar, annotate, summarize. Only document-level failures
// (unsupported format, undecodable bytes) yield Success=false; per-line
// problems are reported through Warnings/Errors on a successful result.
func (e *Engine) Parse(ctx context.Context, req Request) models.ParseResult {
	result := models.ParseResult{
		Transactions: []models.ParsedTransaction{},
		Warnings:     []string{},
		Errors:       []string{},
		Metadata: models.Metadata{
			FileName:      req.FileName,
			FileSizeBytes: int64(len(req.Data)),
		},
	}

	doc, format, err := decoder.Route(req.Data, req.Extension)
	if err != nil {
		e.log.Error().Err(err).Str("file", req.FileName).Msg("statement parse failed")
		result.Success = false
		result.Message = failureMessage(err)
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Metadata.FileFormat = string(format)

	grammar, fallbackWarning := parser.Resolve(req.Provider, e.tax, e.log)
	if fallbackWarning != "" {
		result.Warnings = append(result.Warnings, fallbackWarning)
	}

	sourceFormat := fmt.Sprintf("%s-%s", format, grammar.Name())
	txns, rejects, warnings := grammar.Parse(doc, sourceFormat)
	result.Warnings = append(result.Warnings, warnings...)
	// Dropped blocks/rows are partial failures: callers read them from
	// Errors even though the call as a whole succeeds.
	result.Errors = append(result.Errors, rejects...)

	annotator := annotate.New(req.Oracle, e.log)
	result.Warnings = append(result.Warnings, annotator.Annotate(ctx, req.OwnerID, txns)...)

	if txns == nil {
		txns = []models.ParsedTransaction{}
	}
	result.Transactions = txns
	result.Success = true
	result.Message = "Statement parsed successfully"
	if len(txns) == 0 {
		result.Warnings = append(result.Warnings, "No transactions found in the statement")
	}

	fillMetadata(&result.Metadata, txns, len(rejects))
	e.log.Info().
		Str("file", req.FileName).
		Str("provider", string(req.Provider)).
		Int("parsed", len(txns)).
		Int("rejected", len(rejects)).
		Msg("statement parsed")
	return result
}

func fillMetadata(md *models.Metadata, txns []models.ParsedTransaction, rejected int) {
	md.ParsedTransactions = len(txns)
	md.TotalTransactions = len(txns) + rejected
	md.ErrorTransactions = rejected

	for i := range txns {
		if txns[i].IsDuplicate != nil && *txns[i].IsDuplicate {
			md.DuplicateTransactions++
		}
		d := txns[i].Date
		if md.DateRangeStart == nil || d.Before(*md.DateRangeStart) {
			start := d
			md.DateRangeStart = &start
		}
		if md.DateRangeEnd == nil || d.After(*md.DateRangeEnd) {
			end := d
			md.DateRangeEnd = &end
		}
	}
}

// failureMessage keeps the user-facing message stable across decoder
// error details.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, decoder.ErrUnsupportedFormat):
		return "Unsupported file format"
	case errors.Is(err, decoder.ErrDecode):
		return "Failed to decode statement file"
	default:
		return "Failed to parse statement"
	}
}
