package storage

import (
	"time"

	"gorm.io/gorm"
)

// Transaction is the persisted form of a parsed statement row. Amount is
// stored as a fixed two-decimal string so duplicate lookups compare
// exactly instead of through float equality.
type Transaction struct {
	gorm.Model
	OwnerID         string `gorm:"index:idx_owner_dup,priority:1"`
	BatchID         string `gorm:"index"`
	Amount          string `gorm:"index:idx_owner_dup,priority:2"`
	Description     string
	TransactionDate time.Time `gorm:"index:idx_owner_dup,priority:3"`
	Direction       string
	Category        string
	CounterParty    string
	TransactionID   string
	ReferenceNumber string
	SourceFormat    string
	Confidence      float64
}
