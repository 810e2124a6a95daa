// Package vault is the wallet screen: pending rewards, collection and the
// shard tally.
package vault

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/avatar"
	"github.com/abhisek/shardhunt/internal/router"
	"github.com/abhisek/shardhunt/internal/screen"
	"github.com/abhisek/shardhunt/internal/screens/reward"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/ui/components"
	"github.com/abhisek/shardhunt/internal/ui/layout"
	"github.com/abhisek/shardhunt/internal/ui/theme"
	"github.com/abhisek/shardhunt/internal/wallet"
)

type walletLoadedMsg struct {
	Pending []wallet.PendingReward
	Summary *wallet.Summary
	Profile avatar.Profile
	Err     error
}

type collectedMsg struct {
	Type  wallet.RewardType
	Shard wallet.Shard
	OK    bool
	Err   error
}

type resetDoneMsg struct {
	Err error
}

// VaultScreen displays pending rewards and collected shards.
type VaultScreen struct {
	ledger *wallet.Ledger
	kv     store.KV

	pending      []wallet.PendingReward
	summary      *wallet.Summary
	profile      avatar.Profile
	selectedType int // index into AllRewardTypes
	confirmReset bool
	loaded       bool
	notice       string
	errMsg       string
}

var _ screen.Screen = (*VaultScreen)(nil)
var _ screen.KeyHintProvider = (*VaultScreen)(nil)

// New creates a VaultScreen.
func New(ledger *wallet.Ledger, kv store.KV) *VaultScreen {
	return &VaultScreen{
		ledger:  ledger,
		kv:      kv,
		summary: &wallet.Summary{},
	}
}

// Init loads the wallet. It also runs when the reward screen is popped.
func (s *VaultScreen) Init() tea.Cmd {
	return s.load()
}

func (s *VaultScreen) Title() string {
	return "Shard Vault"
}

func (s *VaultScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset wallet"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch type"},
		{Key: "Enter", Description: "Collect"},
		{Key: "R", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case walletLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.pending = msg.Pending
		s.summary = msg.Summary
		s.profile = msg.Profile
		return s, nil

	case collectedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if !msg.OK {
			s.notice = fmt.Sprintf("No %s rewards waiting.", msg.Type.DisplayName())
			return s, nil
		}
		s.notice = ""
		next := reward.New(msg.Shard, msg.Type)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case resetDoneMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.notice = "Wallet reset. Cooldowns cleared."
		return s, s.load()

	case tea.KeyMsg:
		if s.confirmReset {
			s.confirmReset = false
			switch msg.String() {
			case "y", "Y":
				return s, s.reset()
			}
			return s, nil
		}

		types := wallet.AllRewardTypes()
		switch msg.String() {
		case "tab", "down", "j":
			s.selectedType = (s.selectedType + 1) % len(types)
			s.notice = ""
		case "shift+tab", "up", "k":
			s.selectedType = (s.selectedType - 1 + len(types)) % len(types)
			s.notice = ""
		case "enter":
			return s, s.collect(types[s.selectedType])
		case "r", "R":
			s.confirmReset = true
		}
	}
	return s, nil
}

func (s *VaultScreen) load() tea.Cmd {
	ledger, kv := s.ledger, s.kv
	return func() tea.Msg {
		ctx := context.Background()
		pending, err := ledger.Pending(ctx)
		if err != nil {
			return walletLoadedMsg{Err: err}
		}
		sum, err := ledger.Summary(ctx)
		if err != nil {
			return walletLoadedMsg{Err: err}
		}
		p, err := avatar.Load(ctx, kv)
		return walletLoadedMsg{Pending: pending, Summary: sum, Profile: p, Err: err}
	}
}

func (s *VaultScreen) collect(typ wallet.RewardType) tea.Cmd {
	ledger := s.ledger
	return func() tea.Msg {
		shard, ok, err := ledger.Collect(context.Background(), typ)
		return collectedMsg{Type: typ, Shard: shard, OK: ok, Err: err}
	}
}

func (s *VaultScreen) reset() tea.Cmd {
	ledger := s.ledger
	return func() tea.Msg {
		return resetDoneMsg{Err: ledger.Reset(context.Background())}
	}
}

func (s *VaultScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Opening vault...")
	}

	var b strings.Builder

	// Owner.
	b.WriteString(center.Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("\n%s  %s's vault", s.profile.Icon.Glyph(), s.profile.DisplayName())))
	b.WriteString("\n\n")

	// Shard tally.
	var tally []string
	for _, sh := range wallet.AllShards() {
		tally = append(tally, lipgloss.NewStyle().Foreground(reward.ShardColor(sh)).Bold(true).
			Render(fmt.Sprintf("%s %s × %d", sh.Icon(), sh, s.summary.Shards[sh])))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tally, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	// Reward type tabs with pending counts.
	types := wallet.AllRewardTypes()
	var tabs []string
	for i, t := range types {
		label := fmt.Sprintf("%s %s (%d)", t.Icon(), t.DisplayName(), s.summary.Pending[t])
		if i == s.selectedType {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ "+label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "   ")))
	b.WriteString("\n\n")

	// Pending rewards of the selected type, oldest first.
	selected := types[s.selectedType]
	var lines []string
	for _, r := range s.pending {
		if r.Type != selected {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s  %s", r.EarnedAt.Local().Format("Jan 02 15:04"), r.Description))
	}

	maxVisible := height - 14
	if maxVisible < 3 {
		maxVisible = 3
	}
	switch {
	case len(lines) == 0:
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("Nothing to collect here yet"))
	case len(lines) > maxVisible:
		more := len(lines) - maxVisible
		lines = append(lines[:maxVisible], fmt.Sprintf("  ... %d more", more))
		fallthrough
	default:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(lines, "\n"))))
	}
	b.WriteString("\n\n")

	switch {
	case s.confirmReset:
		b.WriteString(center.Render(theme.Bad.Render("Reset wallet? Pending rewards and shards will be lost. (y/n)")))
	case s.notice != "":
		b.WriteString(center.Render(theme.Hint.Render(s.notice)))
	}

	return b.String()
}
