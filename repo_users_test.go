package auth_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/ddip/go-auth"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var testDBSeq atomic.Int64

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:users_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.NewCreateTable().
		Model((*auth.User)(nil)).
		Exec(context.Background())
	require.NoError(t, err)

	return db
}

func TestUsersRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and read back", func(t *testing.T) {
		repo := auth.NewUsersRepository(setupTestDB(t))

		created, err := repo.Create(ctx, &auth.User{
			Email:        "user@example.com",
			PasswordHash: "hash",
			Username:     "someone",
			Nickname:     "Someone",
			Phone:        "01012345678",
			Role:         auth.RoleUser,
			IsActive:     true,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)

		found, err := repo.GetByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Someone", found.Nickname)
		assert.True(t, found.IsActive)
	})

	t.Run("email lookup is case and whitespace insensitive", func(t *testing.T) {
		repo := auth.NewUsersRepository(setupTestDB(t))

		_, err := repo.Create(ctx, &auth.User{
			Email:        "Mixed@Example.com ",
			PasswordHash: "hash",
			Username:     "mixed",
			Nickname:     "Mixed",
			Phone:        "01012345678",
			Role:         auth.RoleUser,
		})
		require.NoError(t, err)

		found, err := repo.GetByEmail(ctx, "  MIXED@example.COM")
		require.NoError(t, err)
		assert.Equal(t, "mixed@example.com", found.Email)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := auth.NewUsersRepository(setupTestDB(t))

		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.True(t, errors.Is(err, auth.ErrIdentityNotFound))
	})

	t.Run("existence check", func(t *testing.T) {
		repo := auth.NewUsersRepository(setupTestDB(t))

		exists, err := repo.ExistsByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = repo.Create(ctx, &auth.User{
			Email:        "user@example.com",
			PasswordHash: "hash",
			Username:     "someone",
			Nickname:     "Someone",
			Phone:        "01012345678",
			Role:         auth.RoleUser,
		})
		require.NoError(t, err)

		exists, err = repo.ExistsByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("duplicate email maps to the conflict error", func(t *testing.T) {
		repo := auth.NewUsersRepository(setupTestDB(t))

		record := auth.User{
			Email:        "dup@example.com",
			PasswordHash: "hash",
			Username:     "dup",
			Nickname:     "Dup",
			Phone:        "01012345678",
			Role:         auth.RoleUser,
		}

		first := record
		_, err := repo.Create(ctx, &first)
		require.NoError(t, err)

		second := record
		_, err = repo.Create(ctx, &second)
		assert.True(t, errors.Is(err, auth.ErrEmailAlreadyExists))
	})
}
