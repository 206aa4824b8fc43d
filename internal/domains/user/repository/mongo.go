package repository

import (
	"context"
	"errors"
	"fmt"

	"tickoff/infras/otel"
	"tickoff/internal/domains/user/model"
	"tickoff/shared/constant"
	gModel "tickoff/shared/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`

	gModel.Metadata `bson:",inline"`
}

func (d userDocument) toModel() model.User {
	return model.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Metadata:     d.Metadata,
	}
}

type mongoImpl struct {
	collection *mongo.Collection
	otel       otel.Otel
}

// Mongo is the document backed User store. EnsureIndexes must run once before
// the store is used so duplicate usernames are rejected by the server.
type Mongo interface {
	User
	EnsureIndexes(ctx context.Context) error
}

func NewMongo(db *mongo.Database, otel otel.Otel) Mongo {
	return &mongoImpl{
		collection: db.Collection(model.CollectionName),
		otel:       otel,
	}
}

func (r *mongoImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: model.FieldUsername, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create username index: %w", err)
	}

	return nil
}

func (r *mongoImpl) Insert(ctx context.Context, user model.User) (string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.Insert")
	defer scope.End()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, model.CollectionName)

	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Metadata:     user.Metadata,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateUsername
		}

		scope.TraceError(err)

		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	return doc.ID.Hex(), nil
}

func (r *mongoImpl) GetByUsername(ctx context.Context, username string) (model.User, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetByUsername")
	defer scope.End()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, model.CollectionName)

	var doc userDocument

	err := r.collection.FindOne(ctx, bson.M{model.FieldUsername: username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, nil
	}

	if err != nil {
		scope.TraceError(err)

		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return doc.toModel(), nil
}

func (r *mongoImpl) ExistByUsername(ctx context.Context, username string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.ExistByUsername")
	defer scope.End()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, model.CollectionName)

	count, err := r.collection.CountDocuments(ctx, bson.M{model.FieldUsername: username}, options.Count().SetLimit(1))
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check user: %w", err)
	}

	return count > 0, nil
}
