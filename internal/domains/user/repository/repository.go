package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"tickoff/config"
	"tickoff/infras/mongodb"
	"tickoff/infras/otel"
	"tickoff/infras/postgres"
	"tickoff/internal/domains/user/model"

	"github.com/rs/zerolog/log"
)

var ErrDuplicateUsername = errors.New("username already exists")

// User is the credential store. Lookups by username are exact and case
// sensitive. A missing user is returned as the zero model.User.
type User interface {
	Insert(ctx context.Context, user model.User) (string, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	ExistByUsername(ctx context.Context, username string) (bool, error)
}

// New returns the store of the configured backend.
func New(cfg *config.Config, pg *postgres.Connection, mg *mongodb.Connection, otel otel.Otel) User {
	if !cfg.IsMongo() {
		return NewPostgres(pg, otel)
	}

	repo := NewMongo(mg.DB, otel)

	if err := repo.EnsureIndexes(context.Background()); err != nil {
		log.Fatal().Err(err).Str("collection", model.CollectionName).Msg("Failed to create indexes")
	}

	return repo
}
