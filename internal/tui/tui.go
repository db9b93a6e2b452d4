// Package tui is the terminal client: a searchable todo list next to a
// detail editor, built on bubbletea. All I/O runs in tea.Cmds; models
// change only in Update.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezkam/todos/internal/domain"
)

// API is the subset of the todo HTTP client the views need.
type API interface {
	ListTodos(ctx context.Context, search string) ([]*domain.Todo, error)
	CreateTodo(ctx context.Context, title, description string) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, id, title, description string) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

// Defaults for Options.
const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultRequestTimeout = 10 * time.Second
)

// Options tune the views.
type Options struct {
	// Debounce is the quiet period after a keystroke before searching.
	Debounce time.Duration
	// RequestTimeout bounds each API call.
	RequestTimeout time.Duration
}

func (o *Options) applyDefaults() {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
}

// todosLoadedMsg carries a list fetch result. generation identifies the
// list instance that asked, query the search it ran.
type todosLoadedMsg struct {
	generation int
	query      string
	todos      []*domain.Todo
	err        error
}

// searchSettledMsg fires once the debounce period after keystroke seq ends.
type searchSettledMsg struct {
	generation int
	seq        int
	query      string
}

type todoSelectedMsg struct {
	todo *domain.Todo
}

// todoSavedMsg and todoDeletedMsg carry the id of the editor that issued
// the request. The editor may have been closed or replaced since.
type todoSavedMsg struct {
	editor int
	todo   *domain.Todo
	err    error
}

type todoDeletedMsg struct {
	editor int
	id     string
	err    error
}

// listChangedMsg asks the container to rebuild the list. deletedID is set
// when the change removed a todo.
type listChangedMsg struct {
	deletedID string
}

type closeDetailMsg struct {
	editor int
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
