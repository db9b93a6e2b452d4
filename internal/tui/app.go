package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rezkam/todos/internal/domain"
)

type focusArea int

const (
	focusList focusArea = iota
	focusTitle
	focusBody
)

const listPanelWidth = 44

// AppModel owns the selection and create-mode state and routes messages
// between the list and the detail editor.
type AppModel struct {
	api  API
	opts Options

	list    ListModel
	listGen int

	detail     *DetailModel
	lastEditor int
	selected   *domain.Todo
	creating bool
	focus    focusArea

	width, height int
}

// NewAppModel creates the root model.
func NewAppModel(api API, opts Options) AppModel {
	opts.applyDefaults()
	return AppModel{
		api:  api,
		opts: opts,
		list: NewListModel(api, opts, 0),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.list.Init()
}

// Selected is the todo open for editing, nil otherwise.
func (m AppModel) Selected() *domain.Todo {
	return m.selected
}

// Creating reports whether the editor is open on a new todo.
func (m AppModel) Creating() bool {
	return m.creating
}

// Detail is the open editor, nil when closed.
func (m AppModel) Detail() *DetailModel {
	return m.detail
}

// List is the current list model.
func (m AppModel) List() ListModel {
	return m.list
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetWidth(listPanelWidth - 4)
		if m.detail != nil {
			m.detail.SetWidth(m.detailWidth())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case todoSelectedMsg:
		m.selected = msg.todo
		m.creating = false
		m.openDetail(msg.todo)
		m.list.SetSelected(msg.todo.ID)
		return m, nil

	case listChangedMsg:
		if msg.deletedID != "" && m.selected != nil && m.selected.ID == msg.deletedID {
			m.closeDetail()
			m.focus = focusList
		}
		return m, m.remountList()

	case closeDetailMsg:
		if !m.editorOpen(msg.editor) {
			return m, nil
		}
		m.closeDetail()
		return m, m.setFocus(focusList)

	case todosLoadedMsg, searchSettledMsg:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case todoSavedMsg:
		if m.editorOpen(msg.editor) {
			return m.updateDetail(msg)
		}
		// the editor is gone; only the list needs to learn about it
		if msg.err != nil {
			slog.Error("Failed to save todo", "error", msg.err)
			return m, nil
		}
		return m, emit(listChangedMsg{})

	case todoDeletedMsg:
		if m.editorOpen(msg.editor) {
			return m.updateDetail(msg)
		}
		if msg.err != nil {
			slog.Error("Failed to delete todo", "id", msg.id, "error", msg.err)
			return m, nil
		}
		return m, emit(listChangedMsg{deletedID: msg.id})
	}

	return m.routeToFocused(msg)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	// a pending delete confirmation takes the next key wherever focus is
	if m.detail != nil && m.detail.Confirming() {
		return m.updateDetail(msg)
	}

	switch {
	case key.Matches(msg, keys.New):
		m.selected = nil
		m.creating = true
		m.openDetail(nil)
		m.list.SetSelected("")
		return m, m.setFocus(focusTitle)

	case key.Matches(msg, keys.NextFocus):
		if m.detail == nil {
			return m, nil
		}
		return m, m.setFocus((m.focus + 1) % 3)

	case m.detail != nil && key.Matches(msg, keys.Save, keys.Delete):
		return m.updateDetail(msg)

	case key.Matches(msg, keys.Close):
		if m.detail == nil {
			return m, nil
		}
		m.closeDetail()
		return m, m.setFocus(focusList)
	}

	return m.routeToFocused(msg)
}

func (m AppModel) routeToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus == focusList || m.detail == nil {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m.updateDetail(msg)
}

func (m AppModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	detail, cmd := m.detail.Update(msg)
	m.detail = &detail
	return m, cmd
}

// editorOpen reports whether the editor with the given id is still open.
func (m AppModel) editorOpen(id int) bool {
	return m.detail != nil && m.detail.id == id
}

func (m *AppModel) openDetail(todo *domain.Todo) {
	m.lastEditor++
	detail := NewDetailModel(m.api, m.opts, todo)
	detail.id = m.lastEditor
	detail.SetWidth(m.detailWidth())
	m.detail = &detail
	if m.focus != focusList {
		m.detail.focusField(detailField(m.focus))
	}
}

func (m *AppModel) closeDetail() {
	m.detail = nil
	m.selected = nil
	m.creating = false
	m.list.SetSelected("")
}

// remountList replaces the list with a fresh one that refetches
// everything. Results still in flight for the old list are dropped.
func (m *AppModel) remountList() tea.Cmd {
	m.listGen++
	list := NewListModel(m.api, m.opts, m.listGen)
	list.SetWidth(m.list.width)
	if m.selected != nil {
		list.SetSelected(m.selected.ID)
	}
	if m.focus != focusList {
		list.Blur()
	}
	m.list = list
	return m.list.Init()
}

func (m *AppModel) setFocus(area focusArea) tea.Cmd {
	m.focus = area
	if area == focusList {
		if m.detail != nil {
			m.detail.focusField(fieldNone)
		}
		return m.list.Focus()
	}

	m.list.Blur()
	if m.detail == nil {
		return nil
	}
	return m.detail.focusField(detailField(area))
}

func (m AppModel) detailWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(m.width-listPanelWidth-6, 20)
}

func (m AppModel) View() string {
	header := headerStyle.Render("Todos")

	left := panel(m.list.View(), m.focus == focusList, listPanelWidth)
	right := panel(mutedStyle.Render("Select a todo or press ctrl+n to create one"), false, m.detailWidth()+2)
	if m.detail != nil {
		right = panel(m.detail.View(), m.focus != focusList, m.detailWidth()+2)
	}

	help := []string{}
	for _, b := range []key.Binding{keys.New, keys.Select, keys.NextFocus, keys.Save, keys.Delete, keys.Close, keys.Quit} {
		help = append(help, b.Help().Key+" "+b.Help().Desc)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		helpStyle.Render(strings.Join(help, " • ")),
	)
}
