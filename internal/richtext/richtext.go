// Package richtext is the toolbar side of the todo description editor.
//
// Formatting is never implemented here. A Surface is the platform's own
// rich-text editing capability (the browser's execCommand, or the markup
// editor used by the terminal client); the Toolbar only validates and
// forwards commands to it and reflects the inline format state back.
package richtext

import (
	"errors"
	"fmt"
)

// Command names a formatting primitive. Values match the browser's
// document.execCommand vocabulary so they can be passed through unchanged.
type Command string

// Supported commands.
const (
	Bold                Command = "bold"
	Italic              Command = "italic"
	Underline           Command = "underline"
	JustifyLeft         Command = "justifyLeft"
	JustifyCenter       Command = "justifyCenter"
	JustifyRight        Command = "justifyRight"
	JustifyFull         Command = "justifyFull"
	InsertUnorderedList Command = "insertUnorderedList"
	InsertOrderedList   Command = "insertOrderedList"
	FontSize            Command = "fontSize"
	ForeColor           Command = "foreColor"
	HiliteColor         Command = "hiliteColor"
)

// Group clusters toolbar buttons.
type Group string

// Toolbar groups, in display order.
const (
	GroupStyle     Group = "style"
	GroupAlignment Group = "alignment"
	GroupLists     Group = "lists"
	GroupFontSize  Group = "font-size"
	GroupColor     Group = "color"
)

// Spec describes one toolbar entry.
type Spec struct {
	Command Command
	Label   string // button tooltip
	Short   string // compact button text
	Group   Group

	// NeedsValue commands take an argument (a size or a colour).
	NeedsValue bool

	// Stateful commands report on/off state at the caret.
	Stateful bool
}

// Commands is the toolbar, in display order.
var Commands = []Spec{
	{Command: Bold, Label: "Bold", Short: "B", Group: GroupStyle, Stateful: true},
	{Command: Italic, Label: "Italic", Short: "I", Group: GroupStyle, Stateful: true},
	{Command: Underline, Label: "Underline", Short: "U", Group: GroupStyle, Stateful: true},
	{Command: JustifyLeft, Label: "Left Align", Short: "⇤", Group: GroupAlignment},
	{Command: JustifyCenter, Label: "Center Align", Short: "↔", Group: GroupAlignment},
	{Command: JustifyRight, Label: "Right Align", Short: "⇥", Group: GroupAlignment},
	{Command: JustifyFull, Label: "Justify", Short: "≡", Group: GroupAlignment},
	{Command: InsertUnorderedList, Label: "Bullet List", Short: "•", Group: GroupLists},
	{Command: InsertOrderedList, Label: "Numbered List", Short: "1.", Group: GroupLists},
	{Command: FontSize, Label: "Font Size", Group: GroupFontSize, NeedsValue: true},
	{Command: ForeColor, Label: "Text Color", Short: "A", Group: GroupColor, NeedsValue: true},
	{Command: HiliteColor, Label: "Background Color", Short: "▮", Group: GroupColor, NeedsValue: true},
}

// FontSizes are the sizes offered by the font size selector.
var FontSizes = []string{"12px", "14px", "16px", "18px", "20px", "24px"}

// DefaultFontSize is preselected in the font size selector.
const DefaultFontSize = "16px"

var (
	// ErrUnsupported is returned by a Surface that cannot perform a command.
	// Content is left unchanged.
	ErrUnsupported = errors.New("formatting command not supported by this editor")

	// ErrUnknownCommand is returned for a command outside the vocabulary.
	ErrUnknownCommand = errors.New("unknown formatting command")

	// ErrValueRequired is returned when a value command is applied without one.
	ErrValueRequired = errors.New("formatting command requires a value")
)

// Lookup returns the spec of a command by name.
func Lookup(name string) (Spec, bool) {
	for _, s := range Commands {
		if string(s.Command) == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Grouped returns the toolbar entries split by group, in display order.
func Grouped() [][]Spec {
	var out [][]Spec
	var current Group
	for _, s := range Commands {
		if len(out) == 0 || s.Group != current {
			out = append(out, nil)
			current = s.Group
		}
		out[len(out)-1] = append(out[len(out)-1], s)
	}
	return out
}

// Surface is a platform editing capability bound to one editable region.
type Surface interface {
	// Exec performs cmd at the caret. value is empty for commands
	// that take no argument.
	Exec(cmd Command, value string) error

	// QueryState reports whether a stateful command is active at the caret.
	QueryState(cmd Command) bool
}

// Formats is the inline format state shown on the toolbar buttons.
type Formats struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// Toolbar forwards formatting commands to a Surface.
type Toolbar struct {
	surface Surface
}

// NewToolbar binds a toolbar to an editable surface.
func NewToolbar(surface Surface) *Toolbar {
	return &Toolbar{surface: surface}
}

// ApplyCommand validates cmd and delegates it to the surface.
func (t *Toolbar) ApplyCommand(cmd Command, value string) error {
	spec, ok := Lookup(string(cmd))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	if spec.NeedsValue && value == "" {
		return fmt.Errorf("%w: %s", ErrValueRequired, cmd)
	}
	if !spec.NeedsValue {
		value = ""
	}

	if err := t.surface.Exec(cmd, value); err != nil {
		return fmt.Errorf("failed to apply %s: %w", cmd, err)
	}
	return nil
}

// ActiveFormats reports which inline styles are active at the caret.
func (t *Toolbar) ActiveFormats() Formats {
	return Formats{
		Bold:      t.surface.QueryState(Bold),
		Italic:    t.surface.QueryState(Italic),
		Underline: t.surface.QueryState(Underline),
	}
}
