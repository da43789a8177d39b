package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/ledger-manager/internal/logger"
	"gitlab.com/yelinaung/ledger-manager/internal/models"
	"gitlab.com/yelinaung/ledger-manager/internal/repository"
)

// AddRecord creates a record and its category links in one transaction.
// The amount is stored as its absolute value regardless of input sign; the
// category set and owner are fixed for the record's lifetime. categoryIDs
// must be deduplicated by the caller.
func (s *Service) AddRecord(
	ctx context.Context,
	userID int64,
	name string,
	recordType models.RecordType,
	date time.Time,
	amount decimal.Decimal,
	categoryIDs []int,
) (*models.Record, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: record name must not be empty", ErrValidation)
	}
	if !recordType.Valid() {
		return nil, fmt.Errorf("%w: unrecognized record type %q", ErrValidation, recordType)
	}

	cats, err := s.categories.GetByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	if len(cats) != len(categoryIDs) {
		return nil, fmt.Errorf("%w: one or more categories do not exist", ErrNotFound)
	}

	rec := &models.Record{
		Name:   name,
		Type:   recordType,
		Date:   models.DateOnly(date),
		Amount: amount.Abs(),
		UserID: userID,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	txRecords := repository.NewRecordRepository(tx)
	if err := txRecords.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}
	for _, catID := range categoryIDs {
		if err := txRecords.AddCategory(ctx, rec.ID, catID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCreate, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}

	rec.Categories = cats
	logger.Log.Info().
		Int("record_id", rec.ID).
		Str("type", string(rec.Type)).
		Int("categories", len(cats)).
		Msg("Record created")
	return rec, nil
}

// EditRecord mutates a record's name, date, and amount in place. The record
// must belong to the calling user; the category set is not touched. The
// amount is normalized to its absolute value.
func (s *Service) EditRecord(
	ctx context.Context,
	userID int64,
	recordID int,
	name string,
	date time.Time,
	amount decimal.Decimal,
) (*models.Record, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: record name must not be empty", ErrValidation)
	}

	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("%w: record %d", ErrNotFound, recordID)
	}
	if rec.UserID != userID {
		return nil, fmt.Errorf("%w: record %d", ErrNotFound, recordID)
	}

	rec.Name = name
	rec.Date = models.DateOnly(date)
	rec.Amount = amount.Abs()

	affected, err := s.records.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: record %d", ErrNotFound, recordID)
	}
	return rec, nil
}

// DeleteRecord removes a record and every junction row referencing it in one
// transaction. The record must belong to the calling user.
func (s *Service) DeleteRecord(ctx context.Context, userID int64, recordID int) error {
	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return fmt.Errorf("%w: record %d", ErrNotFound, recordID)
	}
	if rec.UserID != userID {
		return fmt.Errorf("%w: record %d", ErrNotFound, recordID)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	txRecords := repository.NewRecordRepository(tx)

	// Junction rows first so no row ever dangles.
	links, err := txRecords.DeleteCategories(ctx, recordID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}
	if err := txRecords.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}

	logger.Log.Info().
		Int("record_id", recordID).
		Int64("links_removed", links).
		Msg("Record deleted")
	return nil
}
