// Package storage persists imported transactions in SQLite and answers
// the duplicate-existence queries the annotator asks during parsing.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/financeapp/statement-engine/internal/models"
)

type Database struct {
	db *gorm.DB
}

// Open connects to the SQLite file at path and migrates the schema.
func Open(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Transaction{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Database{db: db}, nil
}

// Exists reports whether the owner already has a transaction with the
// same amount, description and calendar date. Implements the annotator's
// existence oracle.
func (d *Database) Exists(ctx context.Context, ownerID string, amount decimal.Decimal, description string, date time.Time) (bool, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := d.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("owner_id = ? AND amount = ? AND description = ? AND transaction_date >= ? AND transaction_date < ?",
			ownerID, amount.StringFixed(2), description, dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("duplicate lookup: %w", err)
	}
	return count > 0, nil
}

// SaveBatch persists the reviewed transactions under a fresh batch id and
// returns it. Transactions flagged as duplicates are skipped; the second
// return value is the number skipped.
func (d *Database) SaveBatch(ctx context.Context, ownerID string, txns []models.ParsedTransaction) (string, int, error) {
	batchID := uuid.NewString()
	rows := make([]Transaction, 0, len(txns))
	skipped := 0
	for i := range txns {
		t := &txns[i]
		if t.IsDuplicate != nil && *t.IsDuplicate {
			skipped++
			continue
		}
		rows = append(rows, Transaction{
			OwnerID:         ownerID,
			BatchID:         batchID,
			Amount:          t.Amount.StringFixed(2),
			Description:     t.Description,
			TransactionDate: t.Date,
			Direction:       string(t.Direction),
			Category:        string(t.Category),
			CounterParty:    t.CounterParty,
			TransactionID:   t.TransactionID,
			ReferenceNumber: t.ReferenceNumber,
			SourceFormat:    t.SourceFormat,
			Confidence:      t.Confidence,
		})
	}
	if len(rows) == 0 {
		return batchID, skipped, nil
	}
	if err := d.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return "", skipped, fmt.Errorf("save batch: %w", err)
	}
	return batchID, skipped, nil
}

// CountForOwner returns how many transactions are stored for the owner.
func (d *Database) CountForOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}
