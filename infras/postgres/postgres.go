package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"tickoff/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Connection splits reads and writes so a replica can serve the former.
// Both fields may point at the same pool.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens the read and write pools. It returns nil when another backend is
// configured, so the relational stores are never built.
func New(cfg *config.Config) *Connection {
	if cfg.DB.Backend != config.BackendPostgres {
		return nil
	}

	read := CreatePostgresReadConn(*cfg)
	write := CreatePostgresWriteConn(*cfg)

	if read == nil || write == nil {
		log.Fatal().Msg("Could not connect to postgres")
	}

	return &Connection{
		Read:  read,
		Write: write,
	}
}

func (c *Connection) Close() error {
	if c == nil {
		return nil
	}

	var errs []error

	if c.Read != nil {
		errs = append(errs, c.Read.Close())
	}

	if c.Write != nil && c.Write != c.Read {
		errs = append(errs, c.Write.Close())
	}

	return errors.Join(errs...)
}

// getDBName returns the database name with prefix if configured
func getDBName(cfg config.Config, baseName string) string {
	if cfg.DB.Postgres.Prefix != "" {
		return cfg.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// WriteDSN is the connection string of the primary, also used by migrations.
func WriteDSN(cfg config.Config) string {
	return dsn(
		cfg.DB.Postgres.Write.Username,
		cfg.DB.Postgres.Write.Password,
		cfg.DB.Postgres.Write.Host,
		cfg.DB.Postgres.Write.Port,
		getDBName(cfg, cfg.DB.Postgres.Write.Name),
		cfg.DB.Postgres.Write.SSLMode,
	)
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(cfg config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"write",
		WriteDSN(cfg),
		cfg.DB.Postgres.Write.Host,
		cfg.DB.Postgres.MaxRetry,
		cfg.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(cfg config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"read",
		dsn(
			cfg.DB.Postgres.Read.Username,
			cfg.DB.Postgres.Read.Password,
			cfg.DB.Postgres.Read.Host,
			cfg.DB.Postgres.Read.Port,
			getDBName(cfg, cfg.DB.Postgres.Read.Name),
			cfg.DB.Postgres.Read.SSLMode,
		),
		cfg.DB.Postgres.Read.Host,
		cfg.DB.Postgres.MaxRetry,
		cfg.DB.Postgres.RetryWaitTime,
	)
}

func dsn(username, password, host, port, dbName, sslMode string) string {
	descriptor := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     dbName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}

	return descriptor.String()
}

// CreatePostgresConnection connects with up to maxRetry attempts, waiting
// waitTime seconds between them. It returns nil when every attempt fails.
func CreatePostgresConnection(name, descriptor, host string, maxRetry, waitTime int) *sqlx.DB {
	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", host).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", host).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Error().Str("name", name).Msg(fmt.Sprintf("Giving up on database after %d attempts", max(maxRetry, 1)))

	return nil
}
