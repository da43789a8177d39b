package ledger

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/ledger-manager/internal/logger"
	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

// Bootstrap seeds the default categories. Idempotent: names that already
// exist are flagged as default if they are not already, and nothing is
// duplicated. Safe to run on every process start.
func (s *Service) Bootstrap(ctx context.Context, defaultNames []string) error {
	for _, name := range defaultNames {
		if err := s.categories.EnsureDefault(ctx, name); err != nil {
			return err
		}
	}
	logger.Log.Debug().Int("defaults", len(defaultNames)).Msg("Default categories ensured")
	return nil
}

// AddCategory creates a non-default category. The name must not collide with
// any existing category, default or not.
func (s *Service) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	taken, err := s.categories.NameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: category %q", ErrDuplicateName, name)
	}

	return s.categories.Create(ctx, name, false)
}

// EditCategory renames a non-default category. The collision check excludes
// the category itself by identity, so a no-op rename succeeds.
func (s *Service) EditCategory(ctx context.Context, id int, newName string) error {
	if err := validateCategoryName(newName); err != nil {
		return err
	}

	cat, err := s.categories.GetByID(ctx, id)
	if err != nil || cat.IsDefault {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}

	taken, err := s.categories.NameTakenByOther(ctx, newName, id)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: category %q", ErrDuplicateName, newName)
	}

	return s.categories.Rename(ctx, id, newName)
}

// DeleteCategory removes a non-default category that no record references.
func (s *Service) DeleteCategory(ctx context.Context, id int) error {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil || cat.IsDefault {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}

	refs, err := s.categories.CountRecords(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: category %q has %d records", ErrCategoryInUse, cat.Name, refs)
	}

	return s.categories.Delete(ctx, id)
}

func validateCategoryName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: category name must not be empty", ErrValidation)
	}
	if len(name) > models.MaxCategoryNameLength {
		return fmt.Errorf("%w: category name exceeds %d characters", ErrValidation, models.MaxCategoryNameLength)
	}
	return nil
}
