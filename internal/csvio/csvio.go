// Package csvio implements the flat-file import/export format:
// a literal header `ID,Type,Name,Amount,Categories,Date`, six comma-separated
// fields per line, `;` as the inner separator of the categories field, and
// `YYYY-MM-DD` dates. Import is two-phase: ValidateFile is a pure pass/fail
// gate over the whole file, ParseFile re-reads it into rows. Neither touches
// the store.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

// Header is the literal first line of every import/export file.
var Header = []string{"ID", "Type", "Name", "Amount", "Categories", "Date"}

const fieldCount = 6

// Positions of the fields within a line.
const (
	fieldID = iota
	fieldType
	fieldName
	fieldAmount
	fieldCategories
	fieldDate
)

// InvalidFileError reports the first schema violation found in an import
// file. One violation rejects the whole file.
type InvalidFileError struct {
	Line   int
	Reason string
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("invalid import file: line %d: %s", e.Line, e.Reason)
}

// Row is one parsed import line. The file's ID field is ignored; a fresh
// identity is assigned at insertion. Amount is kept as given — sign
// normalization happens when the record is stored.
type Row struct {
	Name          string
	Type          models.RecordType
	Amount        decimal.Decimal
	Date          time.Time
	CategoryNames []string
}

// ValidateFile streams the file once and checks every line against the
// schema. The header line is discarded unchecked. The first violation aborts
// validation with *InvalidFileError; a nil return means the whole file is
// well-formed. No store state is read or written beyond knownCategoryNames.
func ValidateFile(path string, knownCategoryNames []string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	known := make(map[string]struct{}, len(knownCategoryNames))
	for _, name := range knownCategoryNames {
		known[name] = struct{}{}
	}

	reader := newReader(f)
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil
		}
		return &InvalidFileError{Line: 1, Reason: "unreadable header"}
	}

	line := 1
	for {
		line++
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &InvalidFileError{Line: line, Reason: err.Error()}
		}
		if err := validateFields(fields, known); err != nil {
			return &InvalidFileError{Line: line, Reason: err.Error()}
		}
	}
}

func validateFields(fields []string, known map[string]struct{}) error {
	if len(fields) != fieldCount {
		return fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	if _, err := models.ParseRecordType(fields[fieldType]); err != nil {
		return err
	}
	if fields[fieldName] == "" {
		return fmt.Errorf("name must not be empty")
	}
	if _, err := decimal.NewFromString(fields[fieldAmount]); err != nil {
		return fmt.Errorf("amount %q is not a number", fields[fieldAmount])
	}
	if fields[fieldCategories] == "" {
		return fmt.Errorf("categories must not be empty")
	}
	for _, name := range strings.Split(fields[fieldCategories], ";") {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("unknown category %q", name)
		}
	}
	if _, err := time.Parse(models.DateFormat, fields[fieldDate]); err != nil {
		return fmt.Errorf("date %q is not %s", fields[fieldDate], "YYYY-MM-DD")
	}
	return nil
}

// ParseFile re-reads a validated file into rows, header discarded.
func ParseFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	reader := newReader(f)
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rows []Row
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read import line: %w", err)
		}

		recordType, err := models.ParseRecordType(fields[fieldType])
		if err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(fields[fieldAmount])
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		date, err := time.Parse(models.DateFormat, fields[fieldDate])
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		rows = append(rows, Row{
			Name:          fields[fieldName],
			Type:          recordType,
			Amount:        amount,
			Date:          date,
			CategoryNames: strings.Split(fields[fieldCategories], ";"),
		})
	}
}

// Export writes the header and one line per record, categories joined by ";"
// and the decimal amount rendered losslessly. It never mutates the store, and
// its output round-trips through ValidateFile/ParseFile.
func Export(w io.Writer, records []models.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range records {
		rec := &records[i]
		row := []string{
			fmt.Sprintf("%d", rec.ID),
			string(rec.Type),
			rec.Name,
			rec.Amount.String(),
			strings.Join(rec.CategoryNames(), ";"),
			rec.Date.Format(models.DateFormat),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// ExportFile writes the record set to a file, replacing any existing content.
func ExportFile(path string, records []models.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := Export(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// newReader builds a CSV reader with per-line field-count checking left to
// the callers, so a spurious seventh field is reported as a schema violation
// rather than a parse error.
func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader
}
