// Package repository provides database access for domain entities.
package repository

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/ledger-manager/internal/database"
	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

// CategoryRepository handles category database operations.
type CategoryRepository struct {
	db database.PGXDB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db database.PGXDB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll retrieves all categories.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, is_default, created_at FROM categories ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	var cat models.Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, is_default, created_at FROM categories WHERE id = $1
	`, id).Scan(&cat.ID, &cat.Name, &cat.IsDefault, &cat.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &cat, nil
}

// GetByName retrieves a category by name. Matching is case-sensitive:
// "Food" and "food" are distinct categories.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, is_default, created_at FROM categories WHERE name = $1
	`, name).Scan(&cat.ID, &cat.Name, &cat.IsDefault, &cat.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return &cat, nil
}

// GetByNames retrieves the categories whose names appear in the given list.
// Names that do not resolve are simply absent from the result.
func (r *CategoryRepository) GetByNames(ctx context.Context, names []string) ([]models.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, is_default, created_at FROM categories WHERE name = ANY($1) ORDER BY id
	`, names)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories by names: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// GetByIDs retrieves the categories with the given IDs.
func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, is_default, created_at FROM categories WHERE id = ANY($1) ORDER BY id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories by ids: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// Create adds a new category.
func (r *CategoryRepository) Create(ctx context.Context, name string, isDefault bool) (*models.Category, error) {
	var cat models.Category
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (name, is_default) VALUES ($1, $2)
		RETURNING id, name, is_default, created_at
	`, name, isDefault).Scan(&cat.ID, &cat.Name, &cat.IsDefault, &cat.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &cat, nil
}

// EnsureDefault inserts a default category or flags an existing category with
// the same name as default. Idempotent: re-running it changes nothing.
func (r *CategoryRepository) EnsureDefault(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (name, is_default) VALUES ($1, TRUE)
		ON CONFLICT (name) DO UPDATE SET is_default = TRUE
	`, name)
	if err != nil {
		return fmt.Errorf("failed to ensure default category %q: %w", name, err)
	}
	return nil
}

// NameTaken reports whether any category already has the given name.
func (r *CategoryRepository) NameTaken(ctx context.Context, name string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1)
	`, name).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return taken, nil
}

// NameTakenByOther reports whether a category other than excludeID has the
// given name. The exclusion is by identity so a no-op rename is allowed.
func (r *CategoryRepository) NameTakenByOther(ctx context.Context, name string, excludeID int) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1 AND id <> $2)
	`, name, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return taken, nil
}

// Rename changes a category name.
func (r *CategoryRepository) Rename(ctx context.Context, id int, name string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE categories SET name = $2 WHERE id = $1
	`, id, name)
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}
	return nil
}

// Delete removes a category by ID.
func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// CountRecords returns the number of junction rows referencing the category.
// A non-zero count blocks deletion.
func (r *CategoryRepository) CountRecords(ctx context.Context, categoryID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM record_categories WHERE category_id = $1
	`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count category references: %w", err)
	}
	return count, nil
}

// scanCategories is a helper to scan category rows.
func scanCategories(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
},
) ([]models.Category, error) {
	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.IsDefault, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}
