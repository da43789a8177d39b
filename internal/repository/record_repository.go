package repository

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/yelinaung/ledger-manager/internal/database"
	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

// RecordRepository handles record and record-category database operations.
// Junction rows live here rather than in their own repository because they are
// only ever written as a side effect of record creation and deletion.
type RecordRepository struct {
	db database.PGXDB
}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(db database.PGXDB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Create adds a new record and fills in the generated identity.
func (r *RecordRepository) Create(ctx context.Context, rec *models.Record) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO records (name, type, date, amount, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, rec.Name, rec.Type, rec.Date, rec.Amount, rec.UserID,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// GetByID retrieves a record by ID with its categories attached.
func (r *RecordRepository) GetByID(ctx context.Context, id int) (*models.Record, error) {
	var rec models.Record
	err := r.db.QueryRow(ctx, `
		SELECT id, name, type, date, amount, user_id, created_at, updated_at
		FROM records WHERE id = $1
	`, id).Scan(&rec.ID, &rec.Name, &rec.Type, &rec.Date, &rec.Amount,
		&rec.UserID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	cats, err := r.GetCategoriesByRecordIDs(ctx, []int{rec.ID})
	if err != nil {
		return nil, err
	}
	rec.Categories = cats[rec.ID]
	return &rec, nil
}

// GetByUserID retrieves all records owned by a user, oldest first, with
// categories batch-loaded.
func (r *RecordRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Record, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, date, amount, user_id, created_at, updated_at
		FROM records WHERE user_id = $1
		ORDER BY date, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return r.attachCategories(ctx, records)
}

// GetAll retrieves every record in the ledger, oldest first, with categories
// batch-loaded. Used by export and statistics.
func (r *RecordRepository) GetAll(ctx context.Context) ([]models.Record, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, date, amount, user_id, created_at, updated_at
		FROM records
		ORDER BY date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return r.attachCategories(ctx, records)
}

// Update modifies a record's name, date, and amount in place. The owner and
// the category set are immutable after creation. Returns the number of rows
// affected.
func (r *RecordRepository) Update(ctx context.Context, rec *models.Record) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE records SET
			name = $2,
			date = $3,
			amount = $4,
			updated_at = NOW()
		WHERE id = $1
	`, rec.ID, rec.Name, rec.Date, rec.Amount)
	if err != nil {
		return 0, fmt.Errorf("failed to update record: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes a record by ID. Junction rows must already be gone.
func (r *RecordRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// AddCategory links a record to a category.
func (r *RecordRepository) AddCategory(ctx context.Context, recordID, categoryID int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO record_categories (record_id, category_id) VALUES ($1, $2)
	`, recordID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to add category %d to record %d: %w", categoryID, recordID, err)
	}
	return nil
}

// DeleteCategories removes every junction row referencing the record and
// returns how many were removed.
func (r *RecordRepository) DeleteCategories(ctx context.Context, recordID int) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM record_categories WHERE record_id = $1
	`, recordID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete record categories: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetCategoriesByRecordIDs batch-loads categories for multiple records.
func (r *RecordRepository) GetCategoriesByRecordIDs(ctx context.Context, recordIDs []int) (map[int][]models.Category, error) {
	if len(recordIDs) == 0 {
		return make(map[int][]models.Category), nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT rc.record_id, c.id, c.name, c.is_default, c.created_at
		FROM categories c
		JOIN record_categories rc ON c.id = rc.category_id
		WHERE rc.record_id = ANY($1)
		ORDER BY c.id
	`, recordIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories by record IDs: %w", err)
	}
	defer rows.Close()

	result := make(map[int][]models.Category)
	for rows.Next() {
		var recordID int
		var cat models.Category
		if err := rows.Scan(&recordID, &cat.ID, &cat.Name, &cat.IsDefault, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result[recordID] = append(result[recordID], cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return result, nil
}

// attachCategories batch-loads and assigns categories for a record slice.
func (r *RecordRepository) attachCategories(ctx context.Context, records []models.Record) ([]models.Record, error) {
	ids := make([]int, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].ID)
	}

	cats, err := r.GetCategoriesByRecordIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Categories = cats[records[i].ID]
	}
	return records, nil
}

// scanRecords is a helper to scan record rows.
func scanRecords(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
},
) ([]models.Record, error) {
	var records []models.Record
	for rows.Next() {
		var rec models.Record
		var date time.Time
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Type, &date, &rec.Amount,
			&rec.UserID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Date = models.DateOnly(date)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}
