package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezkam/todos/internal/domain"
)

// fakeAPI is an in-memory todo server that records every call.
type fakeAPI struct {
	mu       sync.Mutex
	todos    []*domain.Todo
	searches []string
	deleted  []string
	nextID   int
	err      error
}

func (f *fakeAPI) add(title, description string) *domain.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(title, description)
}

func (f *fakeAPI) insert(title, description string) *domain.Todo {
	f.nextID++
	todo := &domain.Todo{
		ID:          fmt.Sprintf("id-%d", f.nextID),
		Title:       title,
		Description: description,
		CreatedAt:   time.Date(2024, 3, f.nextID, 12, 0, 0, 0, time.UTC),
	}
	f.todos = append([]*domain.Todo{todo}, f.todos...)
	return todo
}

func (f *fakeAPI) ListTodos(_ context.Context, search string) ([]*domain.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, search)
	if f.err != nil {
		return nil, f.err
	}

	out := []*domain.Todo{}
	for _, t := range f.todos {
		if t.MatchesSearch(search) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateTodo(_ context.Context, title, description string) (*domain.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.insert(title, description), nil
}

func (f *fakeAPI) UpdateTodo(_ context.Context, id, title, description string) (*domain.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.todos {
		if t.ID == id {
			t.Title, t.Description = title, description
			return t, nil
		}
	}
	return nil, domain.ErrTodoNotFound
}

func (f *fakeAPI) DeleteTodo(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.err != nil {
		return f.err
	}
	i := slices.IndexFunc(f.todos, func(t *domain.Todo) bool { return t.ID == id })
	if i < 0 {
		return domain.ErrTodoNotFound
	}
	f.todos = slices.Delete(f.todos, i, i+1)
	return nil
}

func (f *fakeAPI) searchCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.searches)
}

var testOptions = Options{Debounce: time.Millisecond, RequestTimeout: time.Second}

// run executes cmd and returns the messages it produces, flattening
// batches. Commands still pending after a short wait, such as cursor
// blinks, are dropped.
func run(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, run(t, c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// only returns the messages of type T.
func only[T tea.Msg](msgs []tea.Msg) []T {
	var out []T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func press(k string) tea.KeyMsg {
	special := map[string]tea.KeyType{
		"ctrl+c": tea.KeyCtrlC,
		"ctrl+d": tea.KeyCtrlD,
		"ctrl+n": tea.KeyCtrlN,
		"ctrl+s": tea.KeyCtrlS,
		"tab":    tea.KeyTab,
		"esc":    tea.KeyEsc,
		"enter":  tea.KeyEnter,
		"up":     tea.KeyUp,
		"down":   tea.KeyDown,
	}
	if kt, ok := special[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	if r, ok := strings.CutPrefix(k, "alt+"); ok {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
