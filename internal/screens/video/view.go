package video

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/cooldown"
	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/ui/components"
	"github.com/abhisek/shardhunt/internal/ui/theme"
)

// reel frames cycle while the chronicle plays.
var reel = []string{
	"◐  ═══════════  ◑",
	"◓  ═══════════  ◒",
	"◑  ═══════════  ◐",
	"◒  ═══════════  ◓",
}

func (s *VideoScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.errMsg != "" {
		return components.CabinetFrame(theme.Bad.Render("Error: "+s.errMsg), width, height)
	}
	if s.task == nil {
		return components.CabinetFrame(theme.Hint.Render("Loading..."), width, height)
	}

	var sections []string
	sections = append(sections, theme.Title.Render(strings.ToUpper(quest.TaskVideo.DisplayName())))
	sections = append(sections, theme.Subtitle.Width(cw).Render(quest.TaskVideo.Blurb()))
	sections = append(sections, components.ArcadeCard(s.renderScreen(), cw))
	sections = append(sections, s.renderBar(cw))
	sections = append(sections, s.renderState(cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *VideoScreen) renderScreen() string {
	p := s.progress
	switch {
	case !p.Playing && p.Position == 0:
		return theme.Hint.Render("▶  press space to play")
	case !p.Playing:
		return theme.Hint.Render("■  the chronicle has ended")
	case s.paused:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("❚❚  paused")
	}
	return lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(reel[s.frames%len(reel)])
}

func (s *VideoScreen) renderBar(cw int) string {
	p := s.progress
	var pct, marker float64
	if p.Length > 0 {
		pct = float64(p.Position) / float64(p.Length)
		marker = float64(p.Threshold) / float64(p.Length)
	}
	bar := components.ProgressBar{
		Label:   fmt.Sprintf("%s / %s", clock(p.Position), clock(p.Length)),
		Percent: pct,
		Marker:  marker,
		Width:   cw,
	}
	return bar.View()
}

func (s *VideoScreen) renderState(cw int) string {
	st := s.status
	var lines []string

	switch {
	case !st.Unlocked:
		lines = append(lines, theme.Locked.Render("🔒 "+quest.Message(quest.ErrLocked)))
	case st.Remaining > 0:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).
			Render("⏳ Next reward in "+cooldown.Format(st.Remaining)))
	case s.progress.Playing && !s.progress.Rewarded:
		left := s.progress.Threshold - s.progress.Highest
		if left > 0 {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("Watch %ds more to earn a shard", cooldown.Seconds(left))))
		}
	}

	if st.Message != "" {
		lines = append(lines, components.StatusLine(st.Message, st.State == quest.StateSuccess))
	}

	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

func clock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
