package repository

import (
	"context"
	"errors"
	"fmt"

	"tickoff/infras/otel"
	"tickoff/infras/postgres"
	"tickoff/internal/domains/user/model"
	"tickoff/shared"
	"tickoff/shared/constant"
	"tickoff/shared/identifier"
	gModel "tickoff/shared/model"
	gRepo "tickoff/shared/repository"

	"github.com/lib/pq"
)

type userRow struct {
	ID           int64  `db:"id"            generated:"true"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	gModel.Metadata
}

func (r userRow) toModel() model.User {
	if r.ID == 0 {
		return model.User{}
	}

	return model.User{
		ID:           identifier.FormatSerial(r.ID),
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Metadata:     r.Metadata,
	}
}

type postgresImpl struct {
	gRepo.Repository[userRow]
	otel otel.Otel
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) User {
	return &postgresImpl{
		Repository: gRepo.NewRepository[userRow](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *postgresImpl) Insert(ctx context.Context, user model.User) (string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.Insert")
	defer scope.End()

	id, err := r.InsertReturningID(ctx, userRow{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Metadata:     user.Metadata,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			return "", ErrDuplicateUsername
		}

		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	return identifier.FormatSerial(id), nil
}

func (r *postgresImpl) GetByUsername(ctx context.Context, username string) (model.User, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetByUsername")
	defer scope.End()

	row, err := r.Get(ctx, shared.FilterByID(username, model.FieldUsername, model.TableName))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return row.toModel(), nil
}

func (r *postgresImpl) ExistByUsername(ctx context.Context, username string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.ExistByUsername")
	defer scope.End()

	exist, err := r.Exist(ctx, shared.FilterByID(username, model.FieldUsername, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}

	return exist, nil
}
