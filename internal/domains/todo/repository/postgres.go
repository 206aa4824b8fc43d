package repository

import (
	"context"
	"fmt"

	"tickoff/infras/otel"
	"tickoff/infras/postgres"
	"tickoff/internal/domains/todo/model"
	"tickoff/shared"
	"tickoff/shared/constant"
	gDto "tickoff/shared/dto"
	"tickoff/shared/identifier"
	gModel "tickoff/shared/model"
	gRepo "tickoff/shared/repository"
)

const argCurrentVersion = "current_version"

type todoRow struct {
	ID         int64  `db:"id"          generated:"true"`
	Name       string `db:"name"`
	IsComplete bool   `db:"is_complete"`
	OwnerID    int64  `db:"owner_id"`
	Version    int64  `db:"version"`
	gModel.Metadata
}

func (r todoRow) toModel() model.Todo {
	if r.ID == 0 {
		return model.Todo{}
	}

	return model.Todo{
		ID:         identifier.FormatSerial(r.ID),
		Name:       r.Name,
		IsComplete: r.IsComplete,
		OwnerID:    identifier.FormatSerial(r.OwnerID),
		Metadata:   r.Metadata,
	}
}

type postgresImpl struct {
	gRepo.Repository[todoRow]
	otel otel.Otel
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Todo {
	return &postgresImpl{
		Repository: gRepo.NewRepository[todoRow](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func byOwner(id, owner int64) gDto.FilterGroup {
	return shared.FilterByOwner(id, model.FieldID, owner, model.FieldOwnerID, model.TableName)
}

func (r *postgresImpl) GetAll(ctx context.Context, owner string, query model.ListQuery) ([]model.Todo, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.GetAll")
	defer scope.End()

	ownerID, ok := identifier.ParseSerial(owner)
	if !ok {
		return []model.Todo{}, nil
	}

	filter := shared.FilterByID(ownerID, model.FieldOwnerID, model.TableName)

	if query.Name != "" {
		filter = filter.Add(gDto.Filter{
			Field:    model.FieldName,
			Value:    query.Name,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if query.IsComplete != nil {
		filter = filter.Add(gDto.Filter{
			Field:    model.FieldIsComplete,
			Value:    *query.IsComplete,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	params := query.QueryParams
	if params.SortBy == "" {
		params.SortBy, params.SortDir = model.FieldID, gDto.SortDirAsc
	}

	rows, err := r.Repository.GetAll(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list todo items: %w", err)
	}

	todos := make([]model.Todo, len(rows))
	for i, row := range rows {
		todos[i] = row.toModel()
	}

	return todos, nil
}

func (r *postgresImpl) Get(ctx context.Context, id, owner string) (model.Todo, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Get")
	defer scope.End()

	todoID, ownerID, ok := parseKeys(id, owner)
	if !ok {
		return model.Todo{}, nil
	}

	row, err := r.Repository.Get(ctx, byOwner(todoID, ownerID))
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to get todo item: %w", err)
	}

	return row.toModel(), nil
}

func (r *postgresImpl) Exist(ctx context.Context, id, owner string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Exist")
	defer scope.End()

	todoID, ownerID, ok := parseKeys(id, owner)
	if !ok {
		return false, nil
	}

	exist, err := r.Repository.Exist(ctx, byOwner(todoID, ownerID))
	if err != nil {
		return false, fmt.Errorf("failed to check todo item: %w", err)
	}

	return exist, nil
}

func (r *postgresImpl) Insert(ctx context.Context, todo model.Todo) (model.Todo, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Insert")
	defer scope.End()

	ownerID, ok := identifier.ParseSerial(todo.OwnerID)
	if !ok {
		return model.Todo{}, fmt.Errorf("owner %q: %w", todo.OwnerID, identifier.ErrInvalidID)
	}

	id, err := r.InsertReturningID(ctx, todoRow{
		Name:       todo.Name,
		IsComplete: todo.IsComplete,
		OwnerID:    ownerID,
		Version:    1,
		Metadata:   todo.Metadata,
	})
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to insert todo item: %w", err)
	}

	todo.ID = identifier.FormatSerial(id)

	return todo, nil
}

// Update replaces name and is_complete only if nobody else wrote the row
// since its version was read. A lost race is ErrConflict.
func (r *postgresImpl) Update(ctx context.Context, todo model.Todo) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Update")
	defer scope.End()

	todoID, ownerID, ok := parseKeys(todo.ID, todo.OwnerID)
	if !ok {
		return ErrNotFound
	}

	current, err := r.Repository.Get(ctx, byOwner(todoID, ownerID), model.FieldVersion)
	if err != nil {
		return fmt.Errorf("failed to read todo item version: %w", err)
	}

	if current.Version == 0 {
		return ErrNotFound
	}

	return r.swap(ctx, todoID, ownerID, current.Version, todo)
}

func (r *postgresImpl) swap(ctx context.Context, todoID, ownerID, version int64, todo model.Todo) error {
	mod := map[string]any{
		model.FieldName:          todo.Name,
		model.FieldIsComplete:    todo.IsComplete,
		constant.FieldModifiedAt: todo.ModifiedAt,
		model.FieldVersion:       version + 1,
	}

	filter := byOwner(todoID, ownerID).Add(gDto.Filter{
		ArgName:  argCurrentVersion,
		Field:    model.FieldVersion,
		Value:    version,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	affected, err := r.Repository.Update(ctx, mod, filter)
	if err != nil {
		return fmt.Errorf("failed to update todo item: %w", err)
	}

	if affected > 0 {
		return nil
	}

	exist, err := r.Repository.Exist(ctx, byOwner(todoID, ownerID))
	if err != nil {
		return fmt.Errorf("failed to check todo item: %w", err)
	}

	if !exist {
		return ErrNotFound
	}

	return ErrConflict
}

func (r *postgresImpl) Delete(ctx context.Context, id, owner string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Delete")
	defer scope.End()

	todoID, ownerID, ok := parseKeys(id, owner)
	if !ok {
		return ErrNotFound
	}

	affected, err := r.Repository.Delete(ctx, byOwner(todoID, ownerID))
	if err != nil {
		return fmt.Errorf("failed to delete todo item: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func parseKeys(id, owner string) (int64, int64, bool) {
	todoID, ok := identifier.ParseSerial(id)
	if !ok {
		return 0, 0, false
	}

	ownerID, ok := identifier.ParseSerial(owner)

	return todoID, ownerID, ok
}
