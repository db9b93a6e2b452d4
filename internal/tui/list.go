package tui

import (
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"

	"github.com/rezkam/todos/internal/domain"
)

const (
	emptySearchText = "No todos found matching your search"
	emptyListText   = "No todos yet. Create one to get started!"
	dateLayout      = "Jan 2, 2006"
)

var previewPolicy = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// ListModel shows every todo matching the debounced search, newest first.
// Keystrokes update the search box at once; the fetch waits for the
// debounce period to pass without another keystroke.
type ListModel struct {
	api        API
	opts       Options
	generation int

	search          textinput.Model
	debouncedSearch string
	seq             int

	todos      []*domain.Todo
	loading    bool
	cursor     int
	selectedID string

	width int
}

// NewListModel creates a list. generation tags its fetches so results
// meant for a replaced list are ignored.
func NewListModel(api API, opts Options, generation int) ListModel {
	opts.applyDefaults()

	search := textinput.New()
	search.Placeholder = "Search todos..."
	search.Prompt = "/ "
	search.Focus()

	return ListModel{
		api:        api,
		opts:       opts,
		generation: generation,
		search:     search,
		loading:    true,
	}
}

// Init fetches the unfiltered list.
func (m ListModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch(m.debouncedSearch))
}

func (m ListModel) fetch(query string) tea.Cmd {
	api, timeout, generation := m.api, m.opts.RequestTimeout, m.generation
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		todos, err := api.ListTodos(ctx, query)
		return todosLoadedMsg{generation: generation, query: query, todos: todos, err: err}
	}
}

func (m ListModel) debounce(query string) tea.Cmd {
	generation, seq := m.generation, m.seq
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return searchSettledMsg{generation: generation, seq: seq, query: query}
	})
}

// Update handles keys while focused and the list's own async results.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchSettledMsg:
		if msg.generation != m.generation || msg.seq != m.seq || msg.query == m.debouncedSearch {
			return m, nil
		}
		m.debouncedSearch = msg.query
		m.loading = true
		return m, m.fetch(msg.query)

	case todosLoadedMsg:
		if msg.generation != m.generation || msg.query != m.debouncedSearch {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			slog.Error("Failed to fetch todos", "search", msg.query, "error", msg.err)
			return m, nil
		}
		m.todos = msg.todos
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if !m.search.Focused() {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.todos)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, keys.Select):
			if len(m.todos) == 0 {
				return m, nil
			}
			return m, emit(todoSelectedMsg{todo: m.todos[m.cursor]})
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.seq++
	return m, tea.Batch(cmd, m.debounce(m.search.Value()))
}

func (m *ListModel) clampCursor() {
	if m.cursor >= len(m.todos) {
		m.cursor = len(m.todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Focus gives the search box keyboard focus.
func (m *ListModel) Focus() tea.Cmd {
	return m.search.Focus()
}

// Blur releases keyboard focus.
func (m *ListModel) Blur() {
	m.search.Blur()
}

// Focused reports whether the list receives keys.
func (m ListModel) Focused() bool {
	return m.search.Focused()
}

// SetSelected highlights the todo open in the detail view.
func (m *ListModel) SetSelected(id string) {
	m.selectedID = id
}

// SetWidth sets the width available to rows.
func (m *ListModel) SetWidth(width int) {
	m.width = width
	m.search.Width = max(width-len(m.search.Prompt)-1, 0)
}

// SearchQuery is the raw contents of the search box.
func (m ListModel) SearchQuery() string {
	return m.search.Value()
}

// Todos returns the last fetched todos.
func (m ListModel) Todos() []*domain.Todo {
	return m.todos
}

// Loading reports whether a fetch is in flight.
func (m ListModel) Loading() bool {
	return m.loading
}

func (m ListModel) View() string {
	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.todos) == 0:
		b.WriteString(mutedStyle.Render("Loading..."))
	case len(m.todos) == 0 && m.debouncedSearch != "":
		b.WriteString(mutedStyle.Render(emptySearchText))
	case len(m.todos) == 0:
		b.WriteString(mutedStyle.Render(emptyListText))
	default:
		rows := make([]string, 0, len(m.todos))
		for i, t := range m.todos {
			rows = append(rows, m.renderRow(i, t))
		}
		b.WriteString(strings.Join(rows, "\n\n"))
	}
	return b.String()
}

func (m ListModel) renderRow(i int, t *domain.Todo) string {
	marker := "  "
	title := titleStyle.Render(t.Title)
	if i == m.cursor && m.Focused() {
		marker = "> "
		title = activeStyle.Render(t.Title)
	}
	if t.ID == m.selectedID {
		title = selectedStyle.Render("● ") + title
	}

	lines := []string{marker + title}
	if p := preview(t.Description, m.width-len(marker)); p != "" {
		for _, line := range strings.Split(p, "\n") {
			lines = append(lines, "  "+line)
		}
	}
	lines = append(lines, "  "+mutedStyle.Render(t.CreatedAt.Local().Format(dateLayout)))
	return strings.Join(lines, "\n")
}

// preview strips markup from a description and fits it in two lines.
func preview(description string, width int) string {
	text := strings.Join(strings.Fields(html.UnescapeString(previewPolicy.Sanitize(description))), " ")
	if text == "" {
		return ""
	}
	if width <= 0 {
		width = 40
	}

	lines := strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	if len(lines) > 2 {
		lines = lines[:2]
		lines[1] += "…"
	}
	return strings.Join(lines, "\n")
}
