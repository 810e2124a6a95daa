// Package profile edits the explorer's avatar name and icon.
package profile

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/avatar"
	"github.com/abhisek/shardhunt/internal/screen"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/ui/components"
	"github.com/abhisek/shardhunt/internal/ui/layout"
	"github.com/abhisek/shardhunt/internal/ui/theme"
)

type profileLoadedMsg struct {
	Profile avatar.Profile
	Err     error
}

type savedMsg struct {
	Profile avatar.Profile
	Err     error
}

const (
	focusName = iota
	focusIcon
)

// ProfileScreen lets the player rename themselves and pick an icon.
type ProfileScreen struct {
	kv     store.KV
	name   components.TextInput
	picker components.Picker
	focus  int
	loaded bool
	notice string
	errMsg string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen.
func New(kv store.KV) *ProfileScreen {
	return &ProfileScreen{
		kv:     kv,
		name:   components.NewTextInput("Explorer", false, avatar.MaxNameLen),
		picker: components.NewPicker("Choose your icon", iconOptions(), 0),
	}
}

func iconOptions() []components.PickerOption {
	icons := avatar.Icons()
	opts := make([]components.PickerOption, len(icons))
	for i, ic := range icons {
		opts[i] = components.PickerOption{
			Glyph: ic.Glyph(),
			Label: strings.TrimPrefix(string(ic), "avatar-"),
		}
	}
	return opts
}

func (s *ProfileScreen) Init() tea.Cmd {
	kv := s.kv
	return tea.Batch(s.name.Init(), func() tea.Msg {
		p, err := avatar.Load(context.Background(), kv)
		return profileLoadedMsg{Profile: p, Err: err}
	})
}

func (s *ProfileScreen) Title() string {
	return "Avatar"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Switch field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
	if s.focus == focusIcon {
		hints = append([]layout.KeyHint{{Key: "←→", Description: "Pick"}}, hints...)
	}
	return hints
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.apply(msg.Profile)
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.apply(msg.Profile)
		s.notice = "Saved, " + msg.Profile.DisplayName() + "!"
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			s.focus = 1 - s.focus
			if s.focus == focusName {
				return s, s.name.Model.Focus()
			}
			s.name.Model.Blur()
			return s, nil
		case "enter":
			return s, s.save()
		}
	}

	s.notice = ""
	var cmd tea.Cmd
	if s.focus == focusName {
		s.name, cmd = s.name.Update(msg)
	} else {
		s.picker, cmd = s.picker.Update(msg)
	}
	return s, cmd
}

func (s *ProfileScreen) apply(p avatar.Profile) {
	s.name.SetValue(p.Name)
	for i, ic := range avatar.Icons() {
		if ic == p.Icon {
			s.picker.Selected = i
		}
	}
}

func (s *ProfileScreen) save() tea.Cmd {
	kv := s.kv
	name := s.name.Value()
	icon := avatar.Icons()[s.picker.Value()]
	return func() tea.Msg {
		ctx := context.Background()
		stored, err := avatar.SetName(ctx, kv, name)
		if err != nil {
			return savedMsg{Err: err}
		}
		if err := avatar.SetIcon(ctx, kv, icon); err != nil {
			return savedMsg{Err: err}
		}
		return savedMsg{Profile: avatar.Profile{Name: stored, Icon: icon}}
	}
}

func (s *ProfileScreen) View(width, height int) string {
	if s.errMsg != "" {
		return components.CabinetFrame(theme.Bad.Render("Error: "+s.errMsg), width, height)
	}
	if !s.loaded {
		return components.CabinetFrame(theme.Hint.Render("Loading..."), width, height)
	}

	label := func(text string, focused bool) string {
		if focused {
			return theme.Selected.Render("▸ " + text)
		}
		return theme.Unselected.Render("  " + text)
	}

	var sections []string
	sections = append(sections, theme.Title.Render("YOUR AVATAR"))
	sections = append(sections, label("Name", s.focus == focusName)+"\n"+s.name.View())
	sections = append(sections, label("Icon", s.focus == focusIcon)+"\n"+s.picker.View())
	if s.notice != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
