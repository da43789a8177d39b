package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

var knownNames = []string{"Food", "Pets", "Car", "Rent", "Wage"}

func writeFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const header = "ID,Type,Name,Amount,Categories,Date"

func TestValidateFile(t *testing.T) {
	t.Parallel()

	t.Run("accepts a well-formed file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t,
			header,
			"1,Income,Salary,2000,Wage,2024-02-01",
			"2,Expenditure,Lunch,-12.50,Food;Rent,2024-01-05",
		)
		require.NoError(t, ValidateFile(path, knownNames))
	})

	t.Run("accepts a header-only file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, header)
		require.NoError(t, ValidateFile(path, knownNames))
	})

	t.Run("one bad line rejects the whole file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t,
			header,
			"1,Income,Salary,2000,Wage,2024-02-01",
			"2,Income,Bonus,500,Wage,2024-02-02,spurious",
		)
		err := ValidateFile(path, knownNames)
		var invalid *InvalidFileError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, 3, invalid.Line)
	})

	t.Run("rejects per-field violations", func(t *testing.T) {
		t.Parallel()
		bad := []struct {
			name string
			line string
		}{
			{"too few fields", "1,Income,Salary,2000,Wage"},
			{"unknown type token", "1,Revenue,Salary,2000,Wage,2024-02-01"},
			{"empty name", "1,Income,,2000,Wage,2024-02-01"},
			{"non-numeric amount", "1,Income,Salary,20x0,Wage,2024-02-01"},
			{"empty categories", "1,Income,Salary,2000,,2024-02-01"},
			{"unknown category", "1,Income,Salary,2000,Stocks,2024-02-01"},
			{"unknown category among known", "1,Income,Salary,2000,Wage;Stocks,2024-02-01"},
			{"bad date", "1,Income,Salary,2000,Wage,01-02-2024"},
			{"case-sensitive category match", "1,Income,Salary,2000,wage,2024-02-01"},
		}
		for _, tc := range bad {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				path := writeFile(t, header, tc.line)
				err := ValidateFile(path, knownNames)
				var invalid *InvalidFileError
				require.ErrorAs(t, err, &invalid, "line %q", tc.line)
				require.Equal(t, 2, invalid.Line)
			})
		}
	})

	t.Run("missing file is not a schema error", func(t *testing.T) {
		t.Parallel()
		err := ValidateFile(filepath.Join(t.TempDir(), "nope.csv"), knownNames)
		require.Error(t, err)
		var invalid *InvalidFileError
		require.NotErrorAs(t, err, &invalid)
	})
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	t.Run("parses rows and ignores the file id", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t,
			header,
			"1,Income,Salary,2000,Wage,2024-02-01",
			"7,Expenditure,Lunch,-12.50,Food;Rent,2024-01-05",
		)
		rows, err := ParseFile(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		require.Equal(t, "Salary", rows[0].Name)
		require.Equal(t, models.Income, rows[0].Type)
		require.True(t, decimal.NewFromInt(2000).Equal(rows[0].Amount))
		require.Equal(t, []string{"Wage"}, rows[0].CategoryNames)
		require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), rows[0].Date)

		// Amount is kept as given; normalization happens at insertion.
		require.True(t, decimal.RequireFromString("-12.50").Equal(rows[1].Amount))
		require.Equal(t, []string{"Food", "Rent"}, rows[1].CategoryNames)
	})

	t.Run("header-only file parses to no rows", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, header)
		rows, err := ParseFile(path)
		require.NoError(t, err)
		require.Empty(t, rows)
	})
}

func TestExport(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows", func(t *testing.T) {
		t.Parallel()
		records := []models.Record{
			{
				ID: 3, Name: "Salary", Type: models.Income,
				Date:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				Amount: decimal.NewFromInt(2000),
				Categories: []models.Category{
					{ID: 5, Name: "Wage"},
				},
			},
			{
				ID: 4, Name: "Lunch", Type: models.Expenditure,
				Date:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				Amount: decimal.RequireFromString("12.50"),
				Categories: []models.Category{
					{ID: 1, Name: "Food"},
					{ID: 4, Name: "Rent"},
				},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, Export(&buf, records))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Equal(t, []string{
			header,
			"3,Income,Salary,2000,Wage,2024-02-01",
			"4,Expenditure,Lunch,12.50,Food;Rent,2024-01-05",
		}, lines)
	})

	t.Run("exported file round-trips through validate and parse", func(t *testing.T) {
		t.Parallel()
		records := []models.Record{
			{
				ID: 1, Name: "Vet", Type: models.Expenditure,
				Date:       time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
				Amount:     decimal.RequireFromString("89.99"),
				Categories: []models.Category{{ID: 2, Name: "Pets"}},
			},
		}

		path := filepath.Join(t.TempDir(), "export.csv")
		require.NoError(t, ExportFile(path, records))
		require.NoError(t, ValidateFile(path, knownNames))

		rows, err := ParseFile(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, "Vet", rows[0].Name)
		require.True(t, records[0].Amount.Equal(rows[0].Amount))
	})
}

func TestRoundTripProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		types := []models.RecordType{models.Income, models.Expenditure}

		n := rapid.IntRange(1, 20).Draw(t, "n")
		records := make([]models.Record, n)
		for i := range records {
			catCount := rapid.IntRange(1, len(knownNames)).Draw(t, "cats")
			cats := make([]models.Category, 0, catCount)
			for j := 0; j < catCount; j++ {
				cats = append(cats, models.Category{ID: j + 1, Name: knownNames[j]})
			}
			records[i] = models.Record{
				ID:         i + 1,
				Name:       rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,18}[A-Za-z]`).Draw(t, "name"),
				Type:       types[rapid.IntRange(0, 1).Draw(t, "type")],
				Date:       time.Date(2024, time.Month(rapid.IntRange(1, 12).Draw(t, "month")), rapid.IntRange(1, 28).Draw(t, "day"), 0, 0, 0, 0, time.UTC),
				Amount:     decimal.New(rapid.Int64Range(0, 10_000_000).Draw(t, "cents"), -2),
				Categories: cats,
			}
		}

		dir, err := os.MkdirTemp("", "csvio-rapid")
		if err != nil {
			t.Fatalf("tempdir: %v", err)
		}
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, "roundtrip.csv")

		if err := ExportFile(path, records); err != nil {
			t.Fatalf("export: %v", err)
		}
		if err := ValidateFile(path, knownNames); err != nil {
			t.Fatalf("validate rejected exported file: %v", err)
		}
		rows, err := ParseFile(path)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if len(rows) != len(records) {
			t.Fatalf("row count mismatch: %d != %d", len(rows), len(records))
		}

		for i, row := range rows {
			rec := records[i]
			if row.Name != rec.Name || row.Type != rec.Type {
				t.Fatalf("row %d mismatch: %+v vs %+v", i, row, rec)
			}
			if !row.Amount.Equal(rec.Amount) {
				t.Fatalf("row %d amount mismatch: %s != %s", i, row.Amount, rec.Amount)
			}
			if !row.Date.Equal(rec.Date) {
				t.Fatalf("row %d date mismatch: %s != %s", i, row.Date, rec.Date)
			}
			if strings.Join(row.CategoryNames, ";") != strings.Join(rec.CategoryNames(), ";") {
				t.Fatalf("row %d categories mismatch", i)
			}
		}
	})
}
