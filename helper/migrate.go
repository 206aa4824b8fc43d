package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"tickoff/config"
	"tickoff/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

// ErrNotRelational is returned when migrations are requested while the
// document backend is configured; it manages its own indexes.
var ErrNotRelational = errors.New("migrations only apply to the postgres backend")

func connectionString(cfg *config.Config) (string, error) {
	descriptor, err := url.Parse(postgres.WriteDSN(*cfg))
	if err != nil {
		return "", fmt.Errorf("error parsing database url: %w", err)
	}

	query := descriptor.Query()
	query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	descriptor.RawQuery = query.Encode()

	return descriptor.String(), nil
}

func getConnection(cfg *config.Config) (*migrate.Migrate, error) {
	dsn, err := connectionString(cfg)
	if err != nil {
		return nil, err
	}

	mig, err := migrate.New(migrationSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(cfg *config.Config, action string) error {
	if cfg.IsMongo() {
		return ErrNotRelational
	}

	var step func(*migrate.Migrate) error

	switch action {
	case ActionUp:
		step = (*migrate.Migrate).Up
	case ActionDown:
		step = func(mig *migrate.Migrate) error { return mig.Steps(-1) }
	case ActionStepUp:
		step = func(mig *migrate.Migrate) error { return mig.Steps(1) }
	case ActionDrop:
		step = (*migrate.Migrate).Down
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := getConnection(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration completed successfully")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}
