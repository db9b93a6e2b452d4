// Package gcs stores each todo as a JSON object in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/infrastructure/persistence/document"
)

// DefaultPrefix namespaces todo objects inside the bucket.
const DefaultPrefix = "todos/"

// maxUpdateAttempts bounds the re-read loop of UpdateTodo under contention.
const maxUpdateAttempts = 5

// Store is a GCS-based implementation of todo.Repository.
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ todo.Repository = (*Store)(nil)

// NewStore creates a GCS store.
// It assumes the client is authenticated (e.g. via GOOGLE_APPLICATION_CREDENTIALS).
func NewStore(ctx context.Context, bucket, prefix string) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return NewStoreWithClient(client, bucket, prefix), nil
}

// NewStoreWithClient wraps an existing client. An empty prefix selects DefaultPrefix.
func NewStoreWithClient(client *storage.Client, bucket, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) object(id string) *storage.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(s.prefix + id + document.Extension)
}

func (s *Store) write(ctx context.Context, obj *storage.ObjectHandle, doc *document.Document) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}

	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, name string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// FindTodos lists the prefix, fetches objects in parallel, then filters,
// orders and windows in memory.
func (s *Store) FindTodos(ctx context.Context, params domain.ListTodosParams) (*domain.PagedResult, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, document.Extension) {
			names = append(names, attrs.Name)
		}
	}

	todos, err := document.LoadAll(ctx, names, s.read)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}

	return domain.ApplyListParams(todos, params), nil
}

// CreateTodo writes a new object. The write fails if the name is taken.
func (s *Store) CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	doc, err := document.New(todo)
	if err != nil {
		return nil, err
	}

	obj := s.object(doc.ID).If(storage.Conditions{DoesNotExist: true})
	if err := s.write(ctx, obj, doc); err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// UpdateTodo rewrites an object. The write is conditional on the generation
// that was read so a concurrent delete is not resurrected; when another
// update wins the race the object is read again and rewritten, so the last
// writer wins.
func (s *Store) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	id, err := document.ParseID(params.ID)
	if err != nil {
		return nil, err
	}

	return retryOnConflict(maxUpdateAttempts, func() (*domain.Todo, error) {
		return s.updateOnce(ctx, id, params)
	})
}

func (s *Store) updateOnce(ctx context.Context, id string, params domain.UpdateTodoParams) (*domain.Todo, error) {
	obj := s.object(id)
	r, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: todo %s", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	generation := r.Attrs.Generation
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	doc, err := document.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	doc.Title = params.Title
	doc.Description = params.Description

	if err := s.write(ctx, obj.If(storage.Conditions{GenerationMatch: generation}), doc); err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// retryOnConflict calls fn until it succeeds, fails for a reason other than
// a failed precondition, or has been tried attempts times.
func retryOnConflict(attempts int, fn func() (*domain.Todo, error)) (*domain.Todo, error) {
	var (
		updated *domain.Todo
		err     error
	)
	for range attempts {
		updated, err = fn()
		if !isPreconditionFailed(err) {
			return updated, err
		}
	}
	return nil, fmt.Errorf("todo kept changing during update: %w", err)
}

func isPreconditionFailed(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed
}

// DeleteTodo removes the todo's object.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	parsed, err := document.ParseID(id)
	if err != nil {
		return err
	}

	if err := s.object(parsed).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("%w: todo %s", domain.ErrTodoNotFound, id)
		}
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
