package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rezkam/todos/internal/domain"
)

type todoDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d *todoDocument) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %w: %w", domain.ErrTodoNotFound, domain.ErrInvalidID, err)
	}
	return oid, nil
}

// searchFilter matches search as a literal, case-insensitive substring of
// title or description.
func searchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
	}}
}

// FindTodos retrieves todos matching params, newest first.
func (s *Store) FindTodos(ctx context.Context, params domain.ListTodosParams) (*domain.PagedResult, error) {
	filter := searchFilter(params.Search)

	opts := options.Find().SetSort(sortNewestFirst)
	if params.Paginated() {
		opts.SetSkip(int64(max(params.Offset, 0))).SetLimit(int64(params.Limit))
	}

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}

	var docs []todoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode todos: %w", err)
	}

	result := &domain.PagedResult{Todos: make([]*domain.Todo, 0, len(docs))}
	for i := range docs {
		result.Todos = append(result.Todos, docs[i].toDomain())
	}

	if params.CountTotal {
		n, err := s.coll.CountDocuments(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count todos: %w", err)
		}
		result.TotalCount = int(n)
	}

	return result, nil
}

// CreateTodo inserts a new document with a fresh ObjectID.
func (s *Store) CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	doc := todoDocument{
		ID:          primitive.NewObjectID(),
		Title:       todo.Title,
		Description: todo.Description,
		CreatedAt:   todo.CreatedAt.UTC().Truncate(domain.CreatedAtPrecision),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}

	return doc.toDomain(), nil
}

// UpdateTodo sets title and description and returns the updated document.
func (s *Store) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	oid, err := parseObjectID(params.ID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"title":       params.Title,
		"description": params.Description,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc todoDocument
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: todo %s", domain.ErrTodoNotFound, params.ID)
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return doc.toDomain(), nil
}

// DeleteTodo removes a document by id.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: todo %s", domain.ErrTodoNotFound, id)
	}
	return nil
}
