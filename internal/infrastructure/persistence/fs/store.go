// Package fs stores each todo as a JSON file in a directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/infrastructure/persistence/document"
)

// Store is a filesystem-based implementation of todo.Repository.
type Store struct {
	baseDir string
	mu      sync.RWMutex
}

var _ todo.Repository = (*Store)(nil)

// NewStore creates the base directory if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) filePath(id string) string {
	return filepath.Join(s.baseDir, id+document.Extension)
}

// writeFile replaces path atomically so concurrent readers never observe a
// partially written todo.
func (s *Store) writeFile(path string, doc *document.Document) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.baseDir, ".todo-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

func (s *Store) readFile(path, id string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: todo %s", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return document.Unmarshal(data)
}

// FindTodos scans the directory, loading files in parallel, then filters,
// orders and windows in memory.
func (s *Store) FindTodos(ctx context.Context, params domain.ListTodosParams) (*domain.PagedResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), document.Extension) {
			names = append(names, entry.Name())
		}
	}

	todos, err := document.LoadAll(ctx, names, func(_ context.Context, name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(s.baseDir, name))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}

	return domain.ApplyListParams(todos, params), nil
}

// CreateTodo writes a new JSON file named after a fresh id.
func (s *Store) CreateTodo(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	doc, err := document.New(todo)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeFile(s.filePath(doc.ID), doc); err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// UpdateTodo rewrites title and description of an existing file.
func (s *Store) UpdateTodo(_ context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	id, err := document.ParseID(params.ID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.filePath(id)
	doc, err := s.readFile(path, id)
	if err != nil {
		return nil, err
	}

	doc.Title = params.Title
	doc.Description = params.Description

	if err := s.writeFile(path, doc); err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// DeleteTodo removes the todo's file.
func (s *Store) DeleteTodo(_ context.Context, id string) error {
	parsed, err := document.ParseID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath(parsed)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: todo %s", domain.ErrTodoNotFound, id)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
