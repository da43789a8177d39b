package ledger

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

// Filter selects records by AND-composing its non-zero criteria. A nil field
// means the criterion is not applied; an empty CategoryIDs slice means no
// category filter, not "records without categories". Date bounds are strict:
// DateFrom matches dates after it, DateTo dates before it.
type Filter struct {
	Type        *models.RecordType
	CategoryIDs []int
	DateFrom    *time.Time
	DateTo      *time.Time
}

// Apply returns the records matching the filter, preserving relative order.
// It never mutates the store or the input slice.
func (f Filter) Apply(records []models.Record) []models.Record {
	var out []models.Record
	for _, rec := range records {
		if f.matches(&rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (f Filter) matches(rec *models.Record) bool {
	if f.Type != nil && rec.Type != *f.Type {
		return false
	}
	if len(f.CategoryIDs) > 0 && !f.intersectsCategories(rec) {
		return false
	}
	if f.DateFrom != nil && !rec.Date.After(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && !rec.Date.Before(*f.DateTo) {
		return false
	}
	return true
}

func (f Filter) intersectsCategories(rec *models.Record) bool {
	for _, cat := range rec.Categories {
		if slices.Contains(f.CategoryIDs, cat.ID) {
			return true
		}
	}
	return false
}

// Balance computes Σ(income) − Σ(expenditure) over a record set. It works on
// any set, whole ledger or filtered subset.
func Balance(records []models.Record) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		switch rec.Type {
		case models.Income:
			total = total.Add(rec.Amount)
		case models.Expenditure:
			total = total.Sub(rec.Amount)
		}
	}
	return total
}
