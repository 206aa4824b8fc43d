package helper

import (
	"testing"

	"tickoff/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionString(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write.Username = "tick"
	cfg.DB.Postgres.Write.Password = "p@ss/word"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "todos"
	cfg.DB.Postgres.Write.SSLMode = "disable"
	cfg.DB.Postgres.Prefix = "dev_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"

	dsn, err := connectionString(cfg)

	require.NoError(t, err)
	assert.Equal(t, "postgres://tick:p%40ss%2Fword@db:5432/dev_todos?sslmode=disable&x-migrations-table=schema_migrations", dsn)
}

func TestRunnerRejects(t *testing.T) {
	cfg := &config.Config{}

	cfg.DB.Backend = config.BackendMongo
	assert.ErrorIs(t, Runner(cfg, ActionUp), ErrNotRelational)

	cfg.DB.Backend = config.BackendPostgres
	assert.ErrorIs(t, Runner(cfg, "sideways"), ErrUnknownAction)
}
