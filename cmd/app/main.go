package main

import (
	"os"

	"tickoff/config"
	"tickoff/di"
	"tickoff/helper"
	"tickoff/shared/logger"
	"tickoff/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Tickoff API
// @version 1.0
// @description Multi-tenant todo items with bearer token authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetOutput(cfg, os.Stdout)
	logger.SetLogLevel(cfg)
	timezone.Load(cfg.App.Timezone)

	if !cfg.IsMongo() && cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
