package repository

import (
	"context"
	"testing"

	"tickoff/infras/otel/mocks"
	"tickoff/internal/domains/todo/model"
	"tickoff/internal/testutil"
	gModel "tickoff/shared/model"
	"tickoff/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_SwapStaleVersion(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewConnection(t)

	_, err := conn.Write.Exec(`INSERT INTO users (username, password_hash, created_at, modified_at) VALUES ('alice', 'x', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	repo, ok := NewPostgres(conn, mocks.NewOtel()).(*postgresImpl)
	require.True(t, ok)

	now := timezone.Now()
	todo, err := repo.Insert(ctx, model.Todo{
		Name:     "buy milk",
		OwnerID:  "1",
		Metadata: gModel.Metadata{CreatedAt: now, ModifiedAt: now},
	})
	require.NoError(t, err)

	// a concurrent writer bumps the version after it was read as 1
	todo.Name = "buy oat milk"
	require.NoError(t, repo.Update(ctx, todo))

	todo.Name = "buy soy milk"
	err = repo.swap(ctx, 1, 1, 1, todo)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := repo.Get(ctx, todo.ID, "1")
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", got.Name)

	t.Run("row deleted before the write", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, todo.ID, "1"))

		err := repo.swap(ctx, 1, 1, 2, todo)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
