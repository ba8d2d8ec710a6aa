package repo

import (
	"context"
	"errors"
	"time"

	dom "github.com/kbimsara/todo-infrastructure/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no document matches the given id.
var ErrNotFound = errors.New("todo not found")

// TodoRepo provides todo persistence. The store assigns id, createdAt and
// updatedAt; every method issues exactly one store call.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (dom.Todo, error)
	List(ctx context.Context) ([]dom.Todo, error)
	Update(ctx context.Context, id primitive.ObjectID, patch dom.TodoPatch) (dom.Todo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoTodoRepo implements TodoRepo on a MongoDB collection.
type MongoTodoRepo struct {
	col *mongo.Collection
}

// NewMongoTodoRepo returns a new MongoTodoRepo.
func NewMongoTodoRepo(col *mongo.Collection) *MongoTodoRepo {
	return &MongoTodoRepo{col: col}
}

// Create inserts a new todo, stamping id, createdAt and updatedAt.
func (r *MongoTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return dom.Todo{}, err
	}
	return t, nil
}

// GetByID returns the todo with the given id.
func (r *MongoTodoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (dom.Todo, error) {
	var t dom.Todo
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Todo{}, ErrNotFound
	}
	if err != nil {
		return dom.Todo{}, err
	}
	return t, nil
}

// List returns all todos ordered by createdAt descending.
func (r *MongoTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var list []dom.Todo
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Update applies the supplied patch fields in a single findOneAndUpdate and
// refreshes updatedAt. An empty patch still refreshes updatedAt.
func (r *MongoTodoRepo) Update(ctx context.Context, id primitive.ObjectID, patch dom.TodoPatch) (dom.Todo, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t dom.Todo
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Todo{}, ErrNotFound
	}
	if err != nil {
		return dom.Todo{}, err
	}
	return t, nil
}

// Delete removes the todo with the given id (hard delete).
func (r *MongoTodoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
