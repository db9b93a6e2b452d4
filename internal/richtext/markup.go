package richtext

import (
	"slices"
	"strings"
)

// TextEditor is a plain-text editing widget with a caret, such as a
// bubbles textarea.
type TextEditor interface {
	Value() string
	InsertString(s string)
}

// CaretEditor is a TextEditor that can report the text before its caret.
// Format state follows the caret when the editor implements it; otherwise
// the caret is assumed to be at the end of the text.
type CaretEditor interface {
	TextEditor
	BeforeCaret() string
}

// inlineTags maps stateful commands to the HTML elements that express them.
// The first element is the one inserted.
var inlineTags = map[Command][]string{
	Bold:      {"b", "strong"},
	Italic:    {"i", "em"},
	Underline: {"u"},
}

var listMarkup = map[Command]string{
	InsertUnorderedList: "<ul><li></li></ul>",
	InsertOrderedList:   "<ol><li></li></ol>",
}

// MarkupSurface edits descriptions as raw HTML in a plain-text editor.
// Inline commands toggle by inserting an opening tag, or closing the
// innermost tag of that style left open before the caret. List commands
// insert an empty list. Alignment, size and colour have no plain-text form
// and return ErrUnsupported.
type MarkupSurface struct {
	editor TextEditor
}

// NewMarkupSurface wraps a text editor.
func NewMarkupSurface(editor TextEditor) *MarkupSurface {
	return &MarkupSurface{editor: editor}
}

// Exec implements Surface.
func (s *MarkupSurface) Exec(cmd Command, _ string) error {
	if tags, ok := inlineTags[cmd]; ok {
		if open := openTags(s.beforeCaret(), tags); len(open) > 0 {
			s.editor.InsertString("</" + open[len(open)-1] + ">")
		} else {
			s.editor.InsertString("<" + tags[0] + ">")
		}
		return nil
	}

	if markup, ok := listMarkup[cmd]; ok {
		s.editor.InsertString(markup)
		return nil
	}

	return ErrUnsupported
}

// QueryState implements Surface.
func (s *MarkupSurface) QueryState(cmd Command) bool {
	tags, ok := inlineTags[cmd]
	if !ok {
		return false
	}
	return len(openTags(s.beforeCaret(), tags)) > 0
}

func (s *MarkupSurface) beforeCaret() string {
	if e, ok := s.editor.(CaretEditor); ok {
		return e.BeforeCaret()
	}
	return s.editor.Value()
}

// openTags returns the elements among names still open at the end of
// text, innermost last. Matching is case-insensitive.
func openTags(text string, names []string) []string {
	text = strings.ToLower(text)

	var open []string
	for i := strings.IndexByte(text, '<'); i >= 0; i = nextTag(text, i) {
		rest := text[i+1:]
		closing := strings.HasPrefix(rest, "/")
		rest = strings.TrimPrefix(rest, "/")

		for _, name := range names {
			if !strings.HasPrefix(rest, name+">") {
				continue
			}
			if !closing {
				open = append(open, name)
				break
			}
			for j := len(open) - 1; j >= 0; j-- {
				if open[j] == name {
					open = slices.Delete(open, j, j+1)
					break
				}
			}
			break
		}
	}
	return open
}

func nextTag(text string, i int) int {
	j := strings.IndexByte(text[i+1:], '<')
	if j < 0 {
		return -1
	}
	return i + 1 + j
}
