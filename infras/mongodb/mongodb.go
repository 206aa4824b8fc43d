package mongodb

import (
	"context"
	"fmt"
	"time"

	"tickoff/config"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultConnectTimeout = 10 * time.Second

type Connection struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// New connects to the configured deployment. It returns nil when another
// backend is configured, so the document stores are never built.
func New(cfg *config.Config) *Connection {
	if !cfg.IsMongo() {
		return nil
	}

	conn, err := Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	return conn
}

func Connect(cfg *config.Config) (*Connection, error) {
	timeout := time.Duration(cfg.DB.Mongo.ConnectTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.DB.Mongo.URI).
		SetConnectTimeout(timeout).
		SetAppName(cfg.App.Name)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.Info().
		Str("database", cfg.DB.Mongo.Database).
		Msg("Connected to MongoDB")

	return &Connection{
		Client: client,
		DB:     client.Database(cfg.DB.Mongo.Database),
	}, nil
}

func (c *Connection) Close(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return nil
	}

	if err := c.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongo: %w", err)
	}

	return nil
}
