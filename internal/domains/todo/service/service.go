package service

import (
	"context"
	"errors"
	"fmt"

	"tickoff/infras/otel"
	"tickoff/internal/domains/todo/model"
	"tickoff/internal/domains/todo/model/dto"
	"tickoff/internal/domains/todo/repository"
	"tickoff/shared/constant"
	"tickoff/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	MessageNotFound = "Todo item not found."
	MessageMismatch = "Todo item id or owner does not match the request."
	MessageConflict = "Todo item was modified concurrently."
)

// Todo is the per-user list. The owner passed to every method is the
// authenticated caller; items of other users are never visible.
type Todo interface {
	GetAll(ctx context.Context, owner string, query model.ListQuery) ([]dto.TodoResponse, error)
	Get(ctx context.Context, id, owner string) (dto.TodoResponse, error)
	Create(ctx context.Context, req dto.CreateTodoRequest, owner string) (dto.TodoResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateTodoRequest, owner string) error
	Delete(ctx context.Context, id, owner string) error
}

type serviceImpl struct {
	repo repository.Todo
	otel otel.Otel
}

func New(repo repository.Todo, otel otel.Otel) Todo {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, owner string, query model.ListQuery) (res []dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".todo.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todos, err := s.repo.GetAll(ctx, owner, query)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todo items")

		return nil, fmt.Errorf("failed to get todo items: %w", err)
	}

	return dto.FromModels(todos), nil
}

func (s *serviceImpl) Get(ctx context.Context, id, owner string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".todo.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todo, err := s.repo.Get(ctx, id, owner)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todo item")

		return res, fmt.Errorf("failed to get todo item: %w", err)
	}

	if todo.ID == "" {
		return res, failure.NotFound(MessageNotFound) //nolint:wrapcheck
	}

	res.FromModel(todo)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest, owner string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".todo.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todo, err := s.repo.Insert(ctx, req.ToModel(owner))
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo item")

		return res, fmt.Errorf("failed to create todo item: %w", err)
	}

	res.FromModel(todo)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateTodoRequest, owner string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".todo.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Matches(id, owner) {
		return failure.BadRequestFromString(MessageMismatch) //nolint:wrapcheck
	}

	err = s.repo.Update(ctx, req.ToModel())

	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return failure.NotFound(MessageNotFound) //nolint:wrapcheck
	case errors.Is(err, repository.ErrConflict):
		log.Warn().Str("todo_id", id).Msg("stale todo item update rejected")

		return failure.Conflict(MessageConflict) //nolint:wrapcheck
	default:
		log.Error().Err(err).Msg("failed to update todo item")

		return fmt.Errorf("failed to update todo item: %w", err)
	}
}

func (s *serviceImpl) Delete(ctx context.Context, id, owner string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".todo.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.repo.Delete(ctx, id, owner)
	if errors.Is(err, repository.ErrNotFound) {
		return failure.NotFound(MessageNotFound) //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to delete todo item")

		return fmt.Errorf("failed to delete todo item: %w", err)
	}

	return nil
}
