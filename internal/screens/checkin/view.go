package checkin

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/cooldown"
	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/ui/components"
	"github.com/abhisek/shardhunt/internal/ui/theme"
)

func (s *CheckInScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.errMsg != "" {
		return components.CabinetFrame(theme.Bad.Render("Error: "+s.errMsg), width, height)
	}
	if s.task == nil {
		return components.CabinetFrame(theme.Hint.Render("Loading..."), width, height)
	}

	var sections []string

	sections = append(sections, theme.Title.Render(strings.ToUpper(quest.TaskLocation.DisplayName())))
	sections = append(sections, theme.Subtitle.Width(cw).Render(quest.TaskLocation.Blurb()))

	target := s.task.Target()
	cfg := s.svc.Config()
	info := fmt.Sprintf("Arena  %.4f, %.4f\nRadius %.0f m", target.Lat, target.Lon, cfg.RadiusMeters)
	if s.result != nil {
		src := "GPS"
		if s.result.Simulated {
			src = "Simulated"
		}
		info += fmt.Sprintf("\n\n%s fix  %.5f, %.5f\nDistance  %s",
			src, s.result.Position.Lat, s.result.Position.Lon, formatDistance(s.result.Distance))
	}
	sections = append(sections, components.ArcadeCard(theme.Body.Render(info), cw))

	sections = append(sections, s.renderState(cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *CheckInScreen) renderState(cw int) string {
	st := s.status
	lines := []string{}

	switch {
	case !st.Unlocked:
		lines = append(lines, theme.Locked.Render("🔒 "+quest.Message(quest.ErrLocked)))
	case s.locating:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("📡 Locating..."))
	case st.Remaining > 0:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).
			Render("⏳ Next check-in in "+cooldown.Format(st.Remaining)))
	}

	if st.Message != "" {
		lines = append(lines, components.StatusLine(st.Message, st.State == quest.StateSuccess))
	}

	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

func formatDistance(m float64) string {
	if m < 1000 {
		return fmt.Sprintf("%.0f m", m)
	}
	return fmt.Sprintf("%.1f km", m/1000)
}
