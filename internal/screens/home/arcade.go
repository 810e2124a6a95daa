package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/avatar"
	"github.com/abhisek/shardhunt/internal/ui/components"
	"github.com/abhisek/shardhunt/internal/ui/theme"
)

const arcadeTitle = "S · H · A · R · D · H · U · N · T"

const arcadeTitleCompact = "SHARDHUNT"

// renderTitle returns the styled title line.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitle
	if compact {
		title = arcadeTitleCompact
	}
	return centered(cw, style.Render(title))
}

// renderGreeting renders the explorer's icon and name.
func renderGreeting(p avatar.Profile, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("%s  Welcome back, %s", p.Icon.Glyph(), p.DisplayName()))
}

// renderStatsBar renders the wallet and progress counts in a bordered box
// matching content width.
func renderStatsBar(pending, shards, completed, total, cw int, compact bool) string {
	pendingStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	shardStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			pendingStyle.Render(fmt.Sprintf("✦%d", pending)),
			shardStyle.Render(fmt.Sprintf("◆%d", shards)),
			doneStyle.Render(fmt.Sprintf("✓%d/%d", completed, total)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			pendingStyle.Render(fmt.Sprintf("✦ %d PENDING", pending)),
			shardStyle.Render(fmt.Sprintf("◆ %d SHARDS", shards)),
			doneStyle.Render(fmt.Sprintf("✓ %d/%d TASKS", completed, total)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 34

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		buttons[i] = components.ArcadeButton(label, i == selected, disabled[i], buttonWidth)
	}
	return centered(cw, strings.Join(buttons, "\n"))
}

var (
	compactLocked   = lipgloss.NewStyle().Foreground(theme.TextDim)
	compactIdle     = lipgloss.NewStyle().Foreground(theme.Text)
	compactSelected = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true)
)

// renderArcadeMenuCompact drops the button borders, which overflow small
// terminals.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	lines := make([]string, len(items))
	for i, label := range items {
		switch {
		case disabled[i]:
			lines[i] = compactLocked.Render("   " + label)
		case i == selected:
			lines[i] = compactSelected.Render(" ▸ " + label + " ")
		default:
			lines[i] = compactIdle.Render("   " + label)
		}
	}
	return centered(cw, strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return centered(cw, RenderMascot(variant))
}

// renderError renders a load failure in place of the menu.
func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}

func centered(cw int, s string) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}
