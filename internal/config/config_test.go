package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

func TestLoad(t *testing.T) {
	t.Run("requires DATABASE_URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/ledger")
		t.Setenv("DEFAULT_CATEGORIES", "")
		t.Setenv("EXPORT_DIR", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, models.DefaultCategoryNames, cfg.DefaultCategories)
		require.Equal(t, ".", cfg.ExportDir)
	})

	t.Run("parses the default-category override", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/ledger")
		t.Setenv("DEFAULT_CATEGORIES", " Food , Travel ,,Books ")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, []string{"Food", "Travel", "Books"}, cfg.DefaultCategories)
	})
}
