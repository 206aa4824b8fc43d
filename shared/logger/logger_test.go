package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"tickoff/config"
	"tickoff/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("insert todo item"))

	assert.Contains(t, buf.String(), "insert todo item")
}

func TestSetLogLevel(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	tests := []struct {
		name          string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{name: "debug level", logLevel: "debug", expectedLevel: zerolog.DebugLevel},
		{name: "info level", logLevel: "info", expectedLevel: zerolog.InfoLevel},
		{name: "warn level", logLevel: "warn", expectedLevel: zerolog.WarnLevel},
		{name: "error level", logLevel: "error", expectedLevel: zerolog.ErrorLevel},
		{name: "disabled level", logLevel: "disabled", expectedLevel: zerolog.Disabled},
		{name: "invalid level defaults to trace", logLevel: "loud", expectedLevel: zerolog.TraceLevel},
		// ParseLevel("") returns NoLevel with no error
		{name: "empty level uses NoLevel", logLevel: "", expectedLevel: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestSetOutput(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	t.Run("production writes json", func(t *testing.T) {
		var buf bytes.Buffer

		cfg := &config.Config{}
		cfg.Server.Env = "production"
		cfg.App.Name = "tickoff"

		logger.SetOutput(cfg, &buf)
		log.Info().Msg("todo item created")

		assert.Contains(t, buf.String(), `"message":"todo item created"`)
		assert.Contains(t, buf.String(), `"app":"tickoff"`)
	})

	t.Run("development keeps current writer", func(t *testing.T) {
		var devBuf, unused bytes.Buffer
		log.Logger = log.Output(&devBuf)

		cfg := &config.Config{}
		cfg.Server.Env = "development"

		logger.SetOutput(cfg, &unused)
		log.Info().Msg("still here")

		assert.Empty(t, unused.String())
		assert.Contains(t, devBuf.String(), "still here")
	})
}
