// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordType represents the direction of a financial event.
type RecordType string

const (
	RecordTypeExpense  RecordType = "Expense"
	RecordTypeIncome   RecordType = "Income"
	RecordTypeTransfer RecordType = "Transfer"
)

// IsValid checks if the record type is one of the supported values.
func (t RecordType) IsValid() bool {
	switch t {
	case RecordTypeExpense, RecordTypeIncome, RecordTypeTransfer:
		return true
	}
	return false
}

const (
	// FeeCategory is the category of the expense generated by a transfer fee.
	FeeCategory = "Lainnya"
	// FeeDescription is the description of the expense generated by a transfer fee.
	FeeDescription = "Biaya transfer"
)

// Record represents a dated expense, income or transfer that moves asset balances.
type Record struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Day    int
	Month  int
	Year   int
	Date   time.Time

	// AssetID is the source asset; Asset is its subcategory label at write time.
	AssetID uuid.UUID
	Asset   string

	Type RecordType

	// Category is free text for Expense/Income and the target's subcategory label for Transfer.
	Category string

	// TargetAssetID is set only for Transfer records.
	TargetAssetID *uuid.UUID

	Amount      decimal.Decimal
	Note        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecordDate resolves a calendar day to a UTC midnight timestamp.
// Overflowing days roll into the following month.
func RecordDate(day, month, year int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DayKey returns the "day-month-year" key of the record's resolved date.
func (r *Record) DayKey() string {
	return fmt.Sprintf("%d-%d-%d", r.Date.Day(), int(r.Date.Month()), r.Date.Year())
}

// IsTransfer reports whether the record moves value between two assets.
func (r *Record) IsTransfer() bool {
	return r.Type == RecordTypeTransfer
}

// NewFeeRecord creates the expense that accompanies a transfer with a fee.
func NewFeeRecord(transfer *Record, fee decimal.Decimal) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:          uuid.New(),
		UserID:      transfer.UserID,
		Day:         transfer.Day,
		Month:       transfer.Month,
		Year:        transfer.Year,
		Date:        transfer.Date,
		AssetID:     transfer.AssetID,
		Asset:       transfer.Asset,
		Type:        RecordTypeExpense,
		Category:    FeeCategory,
		Amount:      fee,
		Note:        transfer.Note,
		Description: FeeDescription,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
