//go:build wireinject
// +build wireinject

package di

import (
	"tickoff/config"
	"tickoff/infras/jwt"
	"tickoff/infras/mongodb"
	"tickoff/infras/otel"
	"tickoff/infras/postgres"
	"tickoff/infras/redis"
	"tickoff/shared/cache"
	"tickoff/shared/identifier"
	"tickoff/transport/http"
	"tickoff/transport/http/middleware"
	"tickoff/transport/http/router"

	authService "tickoff/internal/domains/auth/service"
	todoRepository "tickoff/internal/domains/todo/repository"
	todoService "tickoff/internal/domains/todo/service"
	userRepository "tickoff/internal/domains/user/repository"
	authHandler "tickoff/internal/handlers/auth"
	todoHandler "tickoff/internal/handlers/todo"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	mongodb.New,
	otel.New,
	redis.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	identifier.New,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	todoDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	todoHandler.New,
	authHandler.New,
	router.New,
)

var lifecycle = wire.NewSet(
	wire.Struct(new(http.Resources), "*"),
)

func InitializeService() *http.HTTP {
	wire.Build(
		lifecycle,
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
