package repository_test

import (
	"context"
	"math"
	"testing"

	"tickoff/infras/otel/mocks"
	"tickoff/infras/postgres"
	"tickoff/internal/domains/todo/model"
	"tickoff/internal/domains/todo/repository"
	"tickoff/internal/testutil"
	gDto "tickoff/shared/dto"
	gModel "tickoff/shared/model"
	"tickoff/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "1"
	bob   = "2"
)

func newStore(t *testing.T) (repository.Todo, *postgres.Connection) {
	t.Helper()

	conn := testutil.NewConnection(t)

	for _, name := range []string{"alice", "bob"} {
		_, err := conn.Write.Exec(`INSERT INTO users (username, password_hash, created_at, modified_at) VALUES (?, 'x', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, name)
		require.NoError(t, err)
	}

	return repository.NewPostgres(conn, mocks.NewOtel()), conn
}

func newTodo(name, owner string, complete bool) model.Todo {
	now := timezone.Now()

	return model.Todo{
		Name:       name,
		IsComplete: complete,
		OwnerID:    owner,
		Metadata:   gModel.Metadata{CreatedAt: now, ModifiedAt: now},
	}
}

func insert(t *testing.T, repo repository.Todo, todo model.Todo) model.Todo {
	t.Helper()

	created, err := repo.Insert(context.Background(), todo)
	require.NoError(t, err)

	return created
}

func TestPostgres_Insert(t *testing.T) {
	repo, _ := newStore(t)

	first := insert(t, repo, newTodo("buy milk", alice, false))
	second := insert(t, repo, newTodo("walk dog", bob, true))

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, alice, first.OwnerID)
}

func TestPostgres_Insert_InvalidOwner(t *testing.T) {
	repo, _ := newStore(t)

	_, err := repo.Insert(context.Background(), newTodo("buy milk", "abc", false))

	assert.Error(t, err)
}

func TestPostgres_Get(t *testing.T) {
	ctx := context.Background()
	repo, _ := newStore(t)

	todo := insert(t, repo, newTodo("buy milk", alice, false))

	tests := []struct {
		name  string
		id    string
		owner string
		found bool
	}{
		{name: "own item", id: todo.ID, owner: alice, found: true},
		{name: "foreign item", id: todo.ID, owner: bob, found: false},
		{name: "unknown id", id: "99", owner: alice, found: false},
		{name: "unparseable id", id: "abc", owner: alice, found: false},
		{name: "leading zero", id: "01", owner: alice, found: false},
		{name: "object id", id: "65f1c2a9e4b0a1b2c3d4e5f6", owner: alice, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Get(ctx, tt.id, tt.owner)
			require.NoError(t, err)

			exist, err := repo.Exist(ctx, tt.id, tt.owner)
			require.NoError(t, err)

			assert.Equal(t, tt.found, exist)

			if !tt.found {
				assert.Equal(t, model.Todo{}, got)

				return
			}

			assert.Equal(t, todo.ID, got.ID)
			assert.Equal(t, "buy milk", got.Name)
			assert.Equal(t, alice, got.OwnerID)
			assert.False(t, got.IsComplete)
		})
	}
}

func TestPostgres_GetAll(t *testing.T) {
	ctx := context.Background()
	repo, _ := newStore(t)

	insert(t, repo, newTodo("Buy milk", alice, false))
	insert(t, repo, newTodo("walk dog", alice, true))
	insert(t, repo, newTodo("100% done", alice, true))
	insert(t, repo, newTodo("buy bread", bob, false))

	complete := true

	tests := []struct {
		name  string
		owner string
		query model.ListQuery
		want  []string
	}{
		{name: "all of alice", owner: alice, want: []string{"Buy milk", "walk dog", "100% done"}},
		{name: "all of bob", owner: bob, want: []string{"buy bread"}},
		{name: "unknown owner", owner: "3", want: []string{}},
		{name: "unparseable owner", owner: "abc", want: []string{}},
		{name: "name contains, case insensitive", owner: alice, query: model.ListQuery{Name: "BUY"}, want: []string{"Buy milk"}},
		{name: "wildcards are literal", owner: alice, query: model.ListQuery{Name: "%"}, want: []string{"100% done"}},
		{name: "completed", owner: alice, query: model.ListQuery{IsComplete: &complete}, want: []string{"walk dog", "100% done"}},
		{
			name:  "sorted by name descending",
			owner: alice,
			query: model.ListQuery{QueryParams: gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirDesc}},
			want:  []string{"walk dog", "Buy milk", "100% done"},
		},
		{
			name:  "second page",
			owner: alice,
			query: model.ListQuery{QueryParams: gDto.QueryParams{Page: 2, Limit: 2}},
			want:  []string{"100% done"},
		},
		{
			name:  "page beyond any data",
			owner: alice,
			query: model.ListQuery{QueryParams: gDto.QueryParams{Page: math.MaxInt, Limit: 10}},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todos, err := repo.GetAll(ctx, tt.owner, tt.query)
			require.NoError(t, err)

			names := []string{}
			for _, todo := range todos {
				assert.Equal(t, tt.owner, todo.OwnerID)

				names = append(names, todo.Name)
			}

			assert.Equal(t, tt.want, names)
		})
	}
}

func TestPostgres_Update(t *testing.T) {
	ctx := context.Background()
	repo, conn := newStore(t)

	todo := insert(t, repo, newTodo("buy milk", alice, false))

	t.Run("full replace", func(t *testing.T) {
		update := todo
		update.Name = "buy oat milk"
		update.IsComplete = true

		require.NoError(t, repo.Update(ctx, update))

		got, err := repo.Get(ctx, todo.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, "buy oat milk", got.Name)
		assert.True(t, got.IsComplete)

		var version int64
		require.NoError(t, conn.Read.Get(&version, `SELECT version FROM todo_items WHERE id = ?`, 1))
		assert.Equal(t, int64(2), version)
	})

	t.Run("foreign item", func(t *testing.T) {
		update := todo
		update.OwnerID = bob

		assert.ErrorIs(t, repo.Update(ctx, update), repository.ErrNotFound)

		got, err := repo.Get(ctx, todo.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, "buy oat milk", got.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		update := todo
		update.ID = "99"

		assert.ErrorIs(t, repo.Update(ctx, update), repository.ErrNotFound)
	})

	t.Run("unparseable id", func(t *testing.T) {
		update := todo
		update.ID = "abc"

		assert.ErrorIs(t, repo.Update(ctx, update), repository.ErrNotFound)
	})
}

func TestPostgres_Delete(t *testing.T) {
	ctx := context.Background()
	repo, _ := newStore(t)

	todo := insert(t, repo, newTodo("buy milk", alice, false))

	assert.ErrorIs(t, repo.Delete(ctx, todo.ID, bob), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "abc", alice), repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, todo.ID, alice))
	assert.ErrorIs(t, repo.Delete(ctx, todo.ID, alice), repository.ErrNotFound)

	exist, err := repo.Exist(ctx, todo.ID, alice)
	require.NoError(t, err)
	assert.False(t, exist)
}
