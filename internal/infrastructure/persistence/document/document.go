// Package document holds the JSON encoding and bulk loading shared by the
// stores that keep one object per todo (filesystem, object storage).
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/todos/internal/domain"
)

// Extension is appended to the id to name a todo's object.
const Extension = ".json"

// MaxConcurrentReads bounds parallel object reads during a scan.
const MaxConcurrentReads = 20

// Document is the stored form of a todo.
type Document struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// New builds the document for a todo that is about to be stored, assigning
// a time-ordered UUID.
func New(todo *domain.Todo) (*Document, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}
	return &Document{
		ID:          id.String(),
		Title:       todo.Title,
		Description: todo.Description,
		CreatedAt:   todo.CreatedAt.UTC().Truncate(domain.CreatedAtPrecision),
	}, nil
}

// ToDomain converts the document to a domain todo.
func (d *Document) ToDomain() *domain.Todo {
	return &domain.Todo{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// Marshal encodes the document.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal todo: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a stored document.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal todo: %w", err)
	}
	return &d, nil
}

// ParseID accepts only canonical UUIDs, so an id can be used as an object
// name without escaping the store's directory or prefix.
func ParseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w: %w", domain.ErrTodoNotFound, domain.ErrInvalidID, err)
	}
	canonical := parsed.String()
	if canonical != id {
		return "", fmt.Errorf("%w: %w: non-canonical id %q", domain.ErrTodoNotFound, domain.ErrInvalidID, id)
	}
	return canonical, nil
}

// ReadFunc fetches the raw bytes of a named object.
type ReadFunc func(ctx context.Context, name string) ([]byte, error)

// LoadAll reads and decodes every named object with bounded concurrency.
// Unreadable or undecodable objects are logged and skipped.
func LoadAll(ctx context.Context, names []string, read ReadFunc) ([]*domain.Todo, error) {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		todos = make([]*domain.Todo, 0, len(names))
	)

	semaphore := make(chan struct{}, MaxConcurrentReads)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(name string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			data, err := read(ctx, name)
			if err != nil {
				slog.WarnContext(ctx, "skipping unreadable todo", "name", name, "error", err)
				return
			}

			doc, err := Unmarshal(data)
			if err != nil {
				slog.WarnContext(ctx, "skipping corrupt todo", "name", name, "error", err)
				return
			}

			mu.Lock()
			todos = append(todos, doc.ToDomain())
			mu.Unlock()
		}(name)
	}

	wg.Wait()
	return todos, nil
}
