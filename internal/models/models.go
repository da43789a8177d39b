// Package models defines the domain entities for the ledger manager.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategoryNames are seeded at startup and flagged as default.
// Default categories can never be renamed or deleted.
var DefaultCategoryNames = []string{"Food", "Pets", "Car", "Rent", "Wage"}

// DateFormat is the calendar-date layout used across CSV files and charts.
const DateFormat = "2006-01-02"

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// RecordType classifies a ledger record as money in or money out.
type RecordType string

// Recognized record types.
const (
	Income      RecordType = "Income"
	Expenditure RecordType = "Expenditure"
)

// ParseRecordType parses a record-type token. Every non-empty unrecognized
// input is an error; the caller decides whether to retry.
func ParseRecordType(s string) (RecordType, error) {
	switch strings.TrimSpace(s) {
	case string(Income):
		return Income, nil
	case string(Expenditure):
		return Expenditure, nil
	default:
		return "", fmt.Errorf("unrecognized record type %q", s)
	}
}

// Valid reports whether t is one of the recognized record types.
func (t RecordType) Valid() bool {
	return t == Income || t == Expenditure
}

// User represents a registered ledger owner.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category represents a record category. Name is globally unique
// (case-sensitive).
type Category struct {
	ID        int
	Name      string
	IsDefault bool
	CreatedAt time.Time
}

// Record represents a single ledger entry. A record belongs to exactly one
// user for its entire lifetime; Amount is always stored non-negative.
type Record struct {
	ID         int
	Name       string
	Type       RecordType
	Date       time.Time
	Amount     decimal.Decimal
	UserID     int64
	Categories []Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecordCategory is a junction row linking a record to a category.
// Rows exist only while both parents exist; they are created and deleted
// exclusively as a side effect of record creation and deletion.
type RecordCategory struct {
	RecordID   int
	CategoryID int
}

// CategoryNames returns the names of the record's categories in load order.
func (r *Record) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		names = append(names, c.Name)
	}
	return names
}

// DateOnly truncates t to a calendar date in UTC. Records carry no time
// component.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
