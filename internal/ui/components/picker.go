package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/ui/theme"
)

// PickerOption is one entry of a Picker.
type PickerOption struct {
	Glyph string
	Label string
}

// Picker is a horizontal single-choice selector.
type Picker struct {
	Title     string
	Options   []PickerOption
	Selected  int
	Submitted bool
}

// NewPicker creates a picker with the cursor on the initial option.
func NewPicker(title string, options []PickerOption, initial int) Picker {
	if initial < 0 || initial >= len(options) {
		initial = 0
	}
	return Picker{
		Title:    title,
		Options:  options,
		Selected: initial,
	}
}

// Init returns nil.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if p.Selected > 0 {
			p.Selected--
		}
		p.Submitted = false
	case "right", "l":
		if p.Selected < len(p.Options)-1 {
			p.Selected++
		}
		p.Submitted = false
	case "enter":
		p.Submitted = true
	}

	return p, nil
}

// View renders the picker.
func (p Picker) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Title) + "\n\n"

	cells := make([]string, 0, len(p.Options))
	for i, opt := range p.Options {
		cell := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Align(lipgloss.Center)
		switch {
		case i == p.Selected && p.Submitted:
			cell = cell.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
		case i == p.Selected:
			cell = cell.BorderForeground(theme.ArcadeYellow).Foreground(theme.ArcadeYellow).Bold(true)
		default:
			cell = cell.BorderForeground(theme.Border).Foreground(theme.TextDim)
		}
		cells = append(cells, cell.Render(fmt.Sprintf("%s\n%s", opt.Glyph, opt.Label)))
	}
	s += lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	return s
}

// Value returns the currently highlighted option index.
func (p Picker) Value() int {
	return p.Selected
}
