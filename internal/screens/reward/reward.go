// Package reward shows the shard produced by collecting a pending reward.
package reward

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/router"
	"github.com/abhisek/shardhunt/internal/screen"
	"github.com/abhisek/shardhunt/internal/ui/layout"
	"github.com/abhisek/shardhunt/internal/ui/theme"
	"github.com/abhisek/shardhunt/internal/wallet"
)

const shardArt = `    /\
   /  \
  / %s \
  \    /
   \  /
    \/`

// RewardScreen reveals a freshly collected shard.
type RewardScreen struct {
	shard  wallet.Shard
	source wallet.RewardType
}

var _ screen.Screen = (*RewardScreen)(nil)
var _ screen.KeyHintProvider = (*RewardScreen)(nil)

// New creates a RewardScreen for shard, collected from a source reward.
func New(shard wallet.Shard, source wallet.RewardType) *RewardScreen {
	return &RewardScreen{shard: shard, source: source}
}

func (s *RewardScreen) Init() tea.Cmd {
	return nil
}

func (s *RewardScreen) Title() string {
	return "Shard Collected"
}

func (s *RewardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to vault"},
	}
}

func (s *RewardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *RewardScreen) View(width, height int) string {
	fg := ShardColor(s.shard)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(fg).Render(fmt.Sprintf(shardArt, s.shard.Icon())))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(fg).Bold(true).
		Render(fmt.Sprintf("You've uncovered the %s Shard!", s.shard)))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %s", s.source.Icon(), s.source.DisplayName())))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// ShardColor returns the theme color for a shard element.
func ShardColor(sh wallet.Shard) color.Color {
	switch sh {
	case wallet.ShardEarth:
		return theme.Earth
	case wallet.ShardWater:
		return theme.Water
	case wallet.ShardFire:
		return theme.Fire
	default:
		return theme.Text
	}
}
