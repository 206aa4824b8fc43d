package service

import (
	"context"
	"errors"
	"fmt"

	"tickoff/infras/jwt"
	"tickoff/infras/otel"
	"tickoff/internal/domains/auth/model/dto"
	userRepo "tickoff/internal/domains/user/repository"
	"tickoff/shared/constant"
	"tickoff/shared/failure"
	"tickoff/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	MessageDuplicateUsername  = "Username already exists."
	MessageInvalidCredentials = "Invalid username or password."
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.ExistByUsername(ctx, req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString(MessageDuplicateUsername) //nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.userRepo.Insert(ctx, req.ToUserModel(hashed))
	if errors.Is(err, userRepo.ErrDuplicateUsername) {
		// lost a race with a concurrent registration of the same name
		return res, failure.BadRequestFromString(MessageDuplicateUsername) //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", id).Str("username", req.Username).Msg("user registered")

	return dto.RegisterResponse{ID: id, Username: req.Username}, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("username", req.Username).Msg("login attempt with non-existent username")

		return res, failure.Unauthorized(MessageInvalidCredentials) //nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.PasswordHash); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("user_id", user.ID).Msg("stored password hash is unusable")
		} else {
			log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")
		}

		return res, failure.Unauthorized(MessageInvalidCredentials) //nolint:wrapcheck
	}

	token, err := s.jwtService.Generate(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromModel(user, token)

	return res, nil
}
