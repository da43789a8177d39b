// Package stats aggregates ledger records into daily series and renders them
// as PNG charts. Aggregation is pure so it can be tested without rendering.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

// Point is one (date, amount) pair of a series.
type Point struct {
	Date   time.Time
	Amount decimal.Decimal
}

// DailyNetSeries groups records by date and sums them signed — income
// positive, expenditure negative — ordered by date. Feed it a type-filtered
// record set to get a per-type series.
func DailyNetSeries(records []models.Record) []Point {
	totals := make(map[time.Time]decimal.Decimal)
	for _, rec := range records {
		amount := rec.Amount
		if rec.Type == models.Expenditure {
			amount = amount.Neg()
		}
		totals[rec.Date] = totals[rec.Date].Add(amount)
	}

	points := make([]Point, 0, len(totals))
	for date, total := range totals {
		points = append(points, Point{Date: date, Amount: total})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// seriesValues splits a series into chart values and date labels.
func seriesValues(points []Point) ([]float64, []string) {
	values := make([]float64, 0, len(points))
	labels := make([]string, 0, len(points))
	for _, p := range points {
		values = append(values, p.Amount.InexactFloat64())
		labels = append(labels, p.Date.Format(models.DateFormat))
	}
	return values, labels
}

func validateSeries(points []Point) error {
	if len(points) == 0 {
		return fmt.Errorf("no points to chart")
	}
	return nil
}
