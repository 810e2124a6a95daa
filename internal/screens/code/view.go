package code

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/cooldown"
	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/ui/components"
	"github.com/abhisek/shardhunt/internal/ui/theme"
)

func (s *CodeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.errMsg != "" {
		return components.CabinetFrame(theme.Bad.Render("Error: "+s.errMsg), width, height)
	}
	if s.task == nil {
		return components.CabinetFrame(theme.Hint.Render("Loading..."), width, height)
	}

	var sections []string
	sections = append(sections, theme.Title.Render(strings.ToUpper(quest.TaskCode.DisplayName())))

	if !s.status.Unlocked {
		sections = append(sections, theme.Locked.Render("🔒 "+quest.Message(quest.ErrLocked)))
		return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
	}

	sections = append(sections, theme.Subtitle.Width(cw).Render(quest.TaskCode.Blurb()))
	// The QR needs a light background to scan reliably.
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Text).
		Render(strings.TrimRight(s.qr, "\n")))
	sections = append(sections, s.input.View())
	sections = append(sections, s.renderState(cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *CodeScreen) renderState(cw int) string {
	st := s.status
	var lines []string

	if st.Remaining > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).
			Render("⏳ Next code in "+cooldown.Format(st.Remaining)))
	}
	if st.Message != "" {
		lines = append(lines, components.StatusLine(st.Message, st.State == quest.StateSuccess))
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}
