package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRecords() []models.Record {
	return []models.Record{
		{
			ID: 1, Name: "Salary", Type: models.Income,
			Date: day(2024, 2, 1), Amount: decimal.NewFromInt(2000),
			Categories: []models.Category{{ID: 5, Name: "Wage"}},
		},
		{
			ID: 2, Name: "Lunch", Type: models.Expenditure,
			Date: day(2024, 1, 5), Amount: decimal.RequireFromString("12.50"),
			Categories: []models.Category{{ID: 1, Name: "Food"}},
		},
		{
			ID: 3, Name: "Rent January", Type: models.Expenditure,
			Date: day(2024, 1, 1), Amount: decimal.NewFromInt(800),
			Categories: []models.Category{{ID: 4, Name: "Rent"}},
		},
		{
			ID: 4, Name: "Old bill", Type: models.Expenditure,
			Date: day(2023, 12, 31), Amount: decimal.NewFromInt(40),
		},
	}
}

func TestFilterApply(t *testing.T) {
	t.Parallel()

	t.Run("empty filter returns everything in order", func(t *testing.T) {
		t.Parallel()
		records := testRecords()
		got := Filter{}.Apply(records)
		require.Equal(t, records, got)
	})

	t.Run("type and open date range compose with AND", func(t *testing.T) {
		t.Parallel()
		expenditure := models.Expenditure
		from := day(2024, 1, 1)
		to := day(2024, 12, 31)
		got := Filter{Type: &expenditure, DateFrom: &from, DateTo: &to}.Apply(testRecords())

		// Strict bounds: the record dated exactly 2024-01-01 is excluded,
		// as is everything before the range and all income.
		require.Len(t, got, 1)
		require.Equal(t, "Lunch", got[0].Name)
	})

	t.Run("date bounds are strict", func(t *testing.T) {
		t.Parallel()
		from := day(2024, 1, 5)
		got := Filter{DateFrom: &from}.Apply(testRecords())
		require.Len(t, got, 1)
		require.Equal(t, "Salary", got[0].Name)

		to := day(2024, 1, 5)
		got = Filter{DateTo: &to}.Apply(testRecords())
		require.Len(t, got, 2)
		require.Equal(t, "Rent January", got[0].Name)
		require.Equal(t, "Old bill", got[1].Name)
	})

	t.Run("category filter matches on intersection", func(t *testing.T) {
		t.Parallel()
		got := Filter{CategoryIDs: []int{1, 5}}.Apply(testRecords())
		require.Len(t, got, 2)
		require.Equal(t, "Salary", got[0].Name)
		require.Equal(t, "Lunch", got[1].Name)
	})

	t.Run("empty category set means no category filter", func(t *testing.T) {
		t.Parallel()
		got := Filter{CategoryIDs: []int{}}.Apply(testRecords())
		require.Len(t, got, 4)
	})

	t.Run("records without categories never match a category filter", func(t *testing.T) {
		t.Parallel()
		got := Filter{CategoryIDs: []int{99}}.Apply(testRecords())
		require.Empty(t, got)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		t.Parallel()
		records := testRecords()
		expenditure := models.Expenditure
		_ = Filter{Type: &expenditure}.Apply(records)
		require.Equal(t, testRecords(), records)
	})
}

func TestBalance(t *testing.T) {
	t.Parallel()

	t.Run("income minus expenditure", func(t *testing.T) {
		t.Parallel()
		got := Balance(testRecords())
		require.True(t, decimal.RequireFromString("1147.50").Equal(got), "got %s", got)
	})

	t.Run("single expenditure yields negative balance", func(t *testing.T) {
		t.Parallel()
		records := []models.Record{{
			Type:   models.Expenditure,
			Amount: decimal.RequireFromString("12.50"),
		}}
		require.True(t, decimal.RequireFromString("-12.50").Equal(Balance(records)))
	})

	t.Run("empty set balances to zero", func(t *testing.T) {
		t.Parallel()
		require.True(t, decimal.Zero.Equal(Balance(nil)))
	})
}

func TestFilterProperties(t *testing.T) {
	t.Parallel()

	types := []models.RecordType{models.Income, models.Expenditure}

	genRecords := func(t *rapid.T) []models.Record {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		records := make([]models.Record, n)
		for i := range records {
			records[i] = models.Record{
				ID:     i + 1,
				Name:   "r",
				Type:   types[rapid.IntRange(0, 1).Draw(t, "type")],
				Date:   day(2024, 1, 1+rapid.IntRange(0, 27).Draw(t, "day")),
				Amount: decimal.New(rapid.Int64Range(0, 1_000_000).Draw(t, "cents"), -2),
			}
		}
		return records
	}

	t.Run("filtered output is an order-preserving subset", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			records := genRecords(t)
			rt := types[rapid.IntRange(0, 1).Draw(t, "filter type")]
			got := Filter{Type: &rt}.Apply(records)

			lastID := 0
			for _, rec := range got {
				require.Equal(t, rt, rec.Type)
				require.Greater(t, rec.ID, lastID)
				lastID = rec.ID
			}
		})
	})

	t.Run("balance splits across type partitions", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			records := genRecords(t)
			income, expenditure := models.Income, models.Expenditure
			in := Filter{Type: &income}.Apply(records)
			out := Filter{Type: &expenditure}.Apply(records)
			require.True(t, Balance(records).Equal(Balance(in).Add(Balance(out))))
		})
	})
}
