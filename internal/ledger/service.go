// Package ledger implements the transactional mutation protocols over the
// ledger store: records, categories, default-category bootstrap, user
// registration, filtering, and bulk import.
package ledger

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gitlab.com/yelinaung/ledger-manager/internal/models"
	"gitlab.com/yelinaung/ledger-manager/internal/repository"
)

// Service owns the mutation protocols. Every operation runs to completion
// before the next begins; multi-step mutations open one transaction for their
// entire duration and either commit or roll back before returning.
//
// The calling user is always an explicit parameter. There is no ambient
// session state.
type Service struct {
	pool       *pgxpool.Pool
	users      *repository.UserRepository
	categories *repository.CategoryRepository
	records    *repository.RecordRepository
}

// NewService creates a Service over a connection pool.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{
		pool:       pool,
		users:      repository.NewUserRepository(pool),
		categories: repository.NewCategoryRepository(pool),
		records:    repository.NewRecordRepository(pool),
	}
}

// ListCategories returns all categories.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

// ListRecords returns the calling user's records with categories attached.
func (s *Service) ListRecords(ctx context.Context, userID int64) ([]models.Record, error) {
	return s.records.GetByUserID(ctx, userID)
}

// AllRecords returns every record in the ledger. Used by export and
// statistics.
func (s *Service) AllRecords(ctx context.Context) ([]models.Record, error) {
	return s.records.GetAll(ctx)
}
