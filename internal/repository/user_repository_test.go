package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/yelinaung/ledger-manager/internal/database"
	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

func TestUserRepository(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewUserRepository(tx)

	t.Run("creates a user and assigns an id", func(t *testing.T) {
		user := &models.User{Username: "alice-" + t.Name(), PasswordHash: "hash"}
		require.NoError(t, repo.Create(ctx, user))
		require.NotZero(t, user.ID)
		require.False(t, user.CreatedAt.IsZero())

		fetched, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Username, fetched.Username)
		require.Equal(t, "hash", fetched.PasswordHash)
	})

	t.Run("looks up by username exactly", func(t *testing.T) {
		user := &models.User{Username: "Bob", PasswordHash: "hash"}
		require.NoError(t, repo.Create(ctx, user))

		fetched, err := repo.GetByUsername(ctx, "Bob")
		require.NoError(t, err)
		require.Equal(t, user.ID, fetched.ID)

		_, err = repo.GetByUsername(ctx, "bob")
		require.Error(t, err)
	})

	t.Run("reports taken usernames", func(t *testing.T) {
		taken, err := repo.UsernameTaken(ctx, "Bob")
		require.NoError(t, err)
		require.True(t, taken)

		taken, err = repo.UsernameTaken(ctx, "nobody")
		require.NoError(t, err)
		require.False(t, taken)
	})

	t.Run("enforces username uniqueness", func(t *testing.T) {
		dup := &models.User{Username: "Bob", PasswordHash: "other"}
		require.Error(t, repo.Create(ctx, dup))
	})
}
