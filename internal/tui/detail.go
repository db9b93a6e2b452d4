package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/richtext"
)

type detailField int

const (
	fieldNone detailField = iota
	fieldTitle
	fieldBody
)

// DetailModel edits one todo, or a new one when bound to nil. The body is
// HTML markup; formatting goes through a richtext.Toolbar over the textarea.
type DetailModel struct {
	api  API
	opts Options

	// id tells this editor's results apart from those of editors
	// opened before or after it.
	id int

	todo  *domain.Todo
	title textinput.Model
	body  textarea.Model
	focus detailField

	saving           bool
	confirmingDelete bool
	status           string
}

// NewDetailModel binds the editor to todo, seeding its fields, or to a
// blank new todo when todo is nil.
func NewDetailModel(api API, opts Options, todo *domain.Todo) DetailModel {
	opts.applyDefaults()

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""

	body := textarea.New()
	body.Placeholder = "Description"
	body.ShowLineNumbers = false
	body.SetHeight(8)

	if todo != nil {
		title.SetValue(todo.Title)
		body.SetValue(todo.Description)
	}

	return DetailModel{
		api:   api,
		opts:  opts,
		todo:  todo,
		title: title,
		body:  body,
	}
}

// IsNew reports whether the editor creates rather than updates.
func (m DetailModel) IsNew() bool {
	return m.todo == nil
}

// Todo is the bound todo, nil in create mode.
func (m DetailModel) Todo() *domain.Todo {
	return m.todo
}

// Title is the current title input.
func (m DetailModel) Title() string {
	return m.title.Value()
}

// Body is the current description markup.
func (m DetailModel) Body() string {
	return m.body.Value()
}

// CanSave reports whether both fields hold more than whitespace and no
// save is in flight.
func (m DetailModel) CanSave() bool {
	return !m.saving &&
		strings.TrimSpace(m.title.Value()) != "" &&
		strings.TrimSpace(m.body.Value()) != ""
}

// Confirming reports whether a delete confirmation is pending.
func (m DetailModel) Confirming() bool {
	return m.confirmingDelete
}

// Formats reports bold, italic and underline state at the cursor.
func (m DetailModel) Formats() richtext.Formats {
	return m.toolbar().ActiveFormats()
}

func (m *DetailModel) toolbar() *richtext.Toolbar {
	return richtext.NewToolbar(richtext.NewMarkupSurface(bodyEditor{&m.body}))
}

// bodyEditor exposes the textarea's caret to the markup surface.
type bodyEditor struct {
	*textarea.Model
}

// BeforeCaret returns the body text up to the caret.
func (e bodyEditor) BeforeCaret() string {
	lines := strings.Split(e.Value(), "\n")
	row := min(e.Line(), len(lines)-1)
	info := e.LineInfo()

	line := []rune(lines[row])
	col := min(info.StartColumn+info.ColumnOffset, len(line))
	return strings.Join(append(lines[:row:row], string(line[:col])), "\n")
}

// focusField moves keyboard focus within the editor.
func (m *DetailModel) focusField(f detailField) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.body.Blur()

	switch f {
	case fieldTitle:
		return m.title.Focus()
	case fieldBody:
		return m.body.Focus()
	}
	return nil
}

// SetWidth sets the width available to the inputs.
func (m *DetailModel) SetWidth(width int) {
	m.title.Width = max(width-1, 0)
	m.body.SetWidth(width)
}

// Update handles editor keys and the results of save and delete.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todoSavedMsg:
		m.saving = false
		if msg.err != nil {
			slog.Error("Failed to save todo", "error", msg.err)
			m.status = "Save failed"
			return m, nil
		}
		m.title.Reset()
		m.body.Reset()
		m.status = ""
		return m, tea.Batch(emit(listChangedMsg{}), emit(closeDetailMsg{editor: m.id}))

	case todoDeletedMsg:
		if msg.err != nil {
			slog.Error("Failed to delete todo", "id", msg.id, "error", msg.err)
			m.status = "Delete failed"
			if errors.Is(msg.err, domain.ErrTodoNotFound) {
				m.status = "Todo no longer exists"
			}
			return m, nil
		}
		return m, emit(listChangedMsg{deletedID: msg.id})

	case tea.KeyMsg:
		if m.confirmingDelete {
			m.confirmingDelete = false
			m.status = ""
			if key.Matches(msg, keys.Confirm) {
				return m, m.deleteCmd()
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Save):
			if !m.CanSave() {
				if !m.saving {
					m.status = "Title and description are required"
				}
				return m, nil
			}
			m.saving = true
			m.status = "Saving..."
			return m, m.saveCmd()

		case key.Matches(msg, keys.Delete):
			if m.IsNew() {
				return m, nil
			}
			m.confirmingDelete = true
			m.status = "Are you sure you want to delete this todo? (y/n)"
			return m, nil
		}

		for _, fk := range formatKeys {
			if key.Matches(msg, fk.binding) {
				if m.focus == fieldBody {
					m.applyFormat(fk.command)
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldBody:
		m.body, cmd = m.body.Update(msg)
	}
	return m, cmd
}

func (m *DetailModel) applyFormat(cmd richtext.Command) {
	if err := m.toolbar().ApplyCommand(cmd, ""); err != nil {
		slog.Warn("Formatting command failed", "command", cmd, "error", err)
		m.status = fmt.Sprintf("Cannot apply %s", cmd)
		return
	}
	m.status = ""
}

func (m DetailModel) saveCmd() tea.Cmd {
	api, timeout, editor := m.api, m.opts.RequestTimeout, m.id
	title, body := m.title.Value(), m.body.Value()
	existing := m.todo

	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		var (
			saved *domain.Todo
			err   error
		)
		if existing == nil {
			saved, err = api.CreateTodo(ctx, title, body)
		} else {
			saved, err = api.UpdateTodo(ctx, existing.ID, title, body)
		}
		return todoSavedMsg{editor: editor, todo: saved, err: err}
	}
}

func (m DetailModel) deleteCmd() tea.Cmd {
	api, timeout, editor, id := m.api, m.opts.RequestTimeout, m.id, m.todo.ID

	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		return todoDeletedMsg{editor: editor, id: id, err: api.DeleteTodo(ctx, id)}
	}
}

func (m DetailModel) View() string {
	heading := "Edit Todo"
	if m.IsNew() {
		heading = "New Todo"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderToolbar())
	b.WriteString("\n")
	b.WriteString(m.body.View())
	b.WriteString("\n\n")

	save := "[ctrl+s] Save"
	if !m.CanSave() {
		save = mutedStyle.Render(save)
	}
	b.WriteString(save)
	if !m.IsNew() {
		b.WriteString("  [ctrl+d] Delete")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.confirmingDelete {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(mutedStyle.Render(m.status))
		}
	}
	return b.String()
}

func (m DetailModel) renderToolbar() string {
	active := m.Formats()
	on := map[richtext.Command]bool{
		richtext.Bold:      active.Bold,
		richtext.Italic:    active.Italic,
		richtext.Underline: active.Underline,
	}

	buttons := make([]string, 0, len(formatKeys))
	for _, fk := range formatKeys {
		label := fk.binding.Help().Desc
		if on[fk.command] {
			buttons = append(buttons, activeStyle.Render(label))
		} else {
			buttons = append(buttons, mutedStyle.Render(label))
		}
	}
	return strings.Join(buttons, " ")
}
