package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"tickoff/infras/otel"
	"tickoff/internal/domains/todo/model"
	"tickoff/shared/constant"
	gDto "tickoff/shared/dto"
	"tickoff/shared/identifier"
	gModel "tickoff/shared/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const fieldObjectID = "_id"

type todoDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	IsComplete bool               `bson:"is_complete"`
	OwnerID    primitive.ObjectID `bson:"owner_id"`

	gModel.Metadata `bson:",inline"`
}

func (d todoDocument) toModel() model.Todo {
	return model.Todo{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		IsComplete: d.IsComplete,
		OwnerID:    d.OwnerID.Hex(),
		Metadata:   d.Metadata,
	}
}

type mongoImpl struct {
	collection *mongo.Collection
	otel       otel.Otel
}

// Mongo is the document backed Todo store. Writes are last-writer-wins.
type Mongo interface {
	Todo
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
		Keys: bson.D{{Key: model.FieldOwnerID, Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create owner index: %w", err)
	}

	return nil
}

func byOwnerDocument(id, owner primitive.ObjectID) bson.M {
	return bson.M{fieldObjectID: id, model.FieldOwnerID: owner}
}

func sortOf(params gDto.QueryParams) bson.D {
	field := params.SortBy
	if field == "" || field == model.FieldID {
		field = fieldObjectID
	}

	dir := 1
	if params.SortDir == gDto.SortDirDesc {
		dir = -1
	}

	return bson.D{{Key: field, Value: dir}}
}

func (r *mongoImpl) GetAll(ctx context.Context, owner string, query model.ListQuery) ([]model.Todo, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.GetAll")
	defer scope.End()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, model.CollectionName)

	ownerID, err := primitive.ObjectIDFromHex(owner)
	if err != nil {
		return []model.Todo{}, nil
	}

	filter := bson.M{model.FieldOwnerID: ownerID}

	if query.Name != "" {
		filter[model.FieldName] = primitive.Regex{Pattern: regexp.QuoteMeta(query.Name), Options: "i"}
	}

	if query.IsComplete != nil {
		filter[model.FieldIsComplete] = *query.IsComplete
	}

	opts := options.Find().SetSort(sortOf(query.QueryParams))

	if limit := int64(query.Limit); limit > 0 {
		opts.SetLimit(limit)

		if offset := query.Offset(); offset > 0 {
			opts.SetSkip(offset)
		}
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list todo items: %w", err)
	}

	var docs []todoDocument
	if err = cursor.All(ctx, &docs); err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to decode todo items: %w", err)
	}

	todos := make([]model.Todo, len(docs))
	for i, doc := range docs {
		todos[i] = doc.toModel()
	}

	return todos, nil
}

func (r *mongoImpl) Get(ctx context.Context, id, owner string) (model.Todo, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Get")
	defer scope.End()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, model.CollectionName)

	todoID, ownerID, ok := parseObjectIDs(id, owner)
	if !ok {
		return model.Todo{}, nil
	}

	var doc todoDocument

	err := r.collection.FindOne(ctx, byOwnerDocument(todoID, ownerID)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Todo{}, nil
	}

	if err != nil {
		scope.TraceError(err)

		return model.Todo{}, fmt.Errorf("failed to get todo item: %w", err)
	}

	return doc.toModel(), nil
}

func (r *mongoImpl) Exist(ctx context.Context, id, owner string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Exist")
	defer scope.End()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, model.CollectionName)

	todoID, ownerID, ok := parseObjectIDs(id, owner)
	if !ok {
		return false, nil
	}

	count, err := r.collection.CountDocuments(ctx, byOwnerDocument(todoID, ownerID), options.Count().SetLimit(1))
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check todo item: %w", err)
	}

	return count > 0, nil
}

func (r *mongoImpl) Insert(ctx context.Context, todo model.Todo) (model.Todo, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Insert")
	defer scope.End()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, model.CollectionName)

	ownerID, err := primitive.ObjectIDFromHex(todo.OwnerID)
	if err != nil {
		return model.Todo{}, fmt.Errorf("owner %q: %w", todo.OwnerID, identifier.ErrInvalidID)
	}

	doc := todoDocument{
		ID:         primitive.NewObjectID(),
		Name:       todo.Name,
		IsComplete: todo.IsComplete,
		OwnerID:    ownerID,
		Metadata:   todo.Metadata,
	}

	if _, err = r.collection.InsertOne(ctx, doc); err != nil {
		scope.TraceError(err)

		return model.Todo{}, fmt.Errorf("failed to insert todo item: %w", err)
	}

	todo.ID = doc.ID.Hex()

	return todo, nil
}

func (r *mongoImpl) Update(ctx context.Context, todo model.Todo) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Update")
	defer scope.End()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, model.CollectionName)

	todoID, ownerID, ok := parseObjectIDs(todo.ID, todo.OwnerID)
	if !ok {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, byOwnerDocument(todoID, ownerID), bson.M{
		"$set": bson.M{
			model.FieldName:          todo.Name,
			model.FieldIsComplete:    todo.IsComplete,
			constant.FieldModifiedAt: todo.ModifiedAt,
		},
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to update todo item: %w", err)
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *mongoImpl) Delete(ctx context.Context, id, owner string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Delete")
	defer scope.End()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, model.CollectionName)

	todoID, ownerID, ok := parseObjectIDs(id, owner)
	if !ok {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, byOwnerDocument(todoID, ownerID))
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to delete todo item: %w", err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func parseObjectIDs(id, owner string) (primitive.ObjectID, primitive.ObjectID, bool) {
	todoID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, false
	}

	ownerID, err := primitive.ObjectIDFromHex(owner)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, false
	}

	return todoID, ownerID, true
}
