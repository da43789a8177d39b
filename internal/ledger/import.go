package ledger

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/ledger-manager/internal/csvio"
	"gitlab.com/yelinaung/ledger-manager/internal/logger"
	"gitlab.com/yelinaung/ledger-manager/internal/models"
	"gitlab.com/yelinaung/ledger-manager/internal/repository"
)

// ImportFile runs the whole two-phase import: validate the file against the
// known category set, parse it, and insert the batch. A file that fails
// validation is rejected before any store access; a failure during insertion
// rolls back the entire batch.
func (s *Service) ImportFile(ctx context.Context, userID int64, path string) (int, error) {
	cats, err := s.categories.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	names := make([]string, 0, len(cats))
	for _, cat := range cats {
		names = append(names, cat.Name)
	}

	if err := csvio.ValidateFile(path, names); err != nil {
		return 0, err
	}

	rows, err := csvio.ParseFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrImport, err)
	}

	return s.ImportRecords(ctx, userID, rows)
}

// ImportRecords inserts a parsed batch in one transaction. The importing
// user becomes the owner of every record; category names resolve to existing
// categories; amounts are normalized to absolute values at insertion. Any
// failure rolls the whole batch back — the store is left exactly as before.
func (s *Service) ImportRecords(ctx context.Context, userID int64, rows []csvio.Row) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrImport, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	txRecords := repository.NewRecordRepository(tx)
	txCategories := repository.NewCategoryRepository(tx)

	for _, row := range rows {
		rec := &models.Record{
			Name:   row.Name,
			Type:   row.Type,
			Date:   models.DateOnly(row.Date),
			Amount: row.Amount.Abs(),
			UserID: userID,
		}
		if err := txRecords.Create(ctx, rec); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrImport, err)
		}

		cats, err := txCategories.GetByNames(ctx, row.CategoryNames)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrImport, err)
		}
		if len(cats) == 0 {
			return 0, fmt.Errorf("%w: no categories resolved for record %q", ErrImport, row.Name)
		}
		for _, cat := range cats {
			if err := txRecords.AddCategory(ctx, rec.ID, cat.ID); err != nil {
				return 0, fmt.Errorf("%w: %w", ErrImport, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrImport, err)
	}

	logger.Log.Info().Int("records", len(rows)).Msg("Import committed")
	return len(rows), nil
}
