package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"tickoff/config"
	"tickoff/infras/mongodb"
	"tickoff/infras/otel"
	"tickoff/infras/postgres"
	"tickoff/internal/domains/todo/model"

	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound = errors.New("todo item not found")
	ErrConflict = errors.New("todo item was modified concurrently")
)

// Todo is the item store. Every operation is scoped by owner: an item of
// another user is reported exactly like one that does not exist. Ids the
// store could never have issued are treated the same way.
type Todo interface {
	GetAll(ctx context.Context, owner string, query model.ListQuery) ([]model.Todo, error)
	Get(ctx context.Context, id, owner string) (model.Todo, error)
	Exist(ctx context.Context, id, owner string) (bool, error)
	Insert(ctx context.Context, todo model.Todo) (model.Todo, error)
	Update(ctx context.Context, todo model.Todo) error
	Delete(ctx context.Context, id, owner string) error
}

// New returns the store of the configured backend.
func New(cfg *config.Config, pg *postgres.Connection, mg *mongodb.Connection, otel otel.Otel) Todo {
	if !cfg.IsMongo() {
		return NewPostgres(pg, otel)
	}

	repo := NewMongo(mg.DB, otel)

	if err := repo.EnsureIndexes(context.Background()); err != nil {
		log.Fatal().Err(err).Str("collection", model.CollectionName).Msg("Failed to create indexes")
	}

	return repo
}
