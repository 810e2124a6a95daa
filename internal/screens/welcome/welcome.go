// Package welcome is the splash shown at launch: the three shards light up
// one after another, then the banner appears and any key opens home.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/router"
	"github.com/abhisek/shardhunt/internal/screen"
	"github.com/abhisek/shardhunt/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	// Each shard lights after shardStep; the banner follows the last one.
	shardStep  = 500 * time.Millisecond
	bannerAt   = 1500 * time.Millisecond
	totalDur   = 4500 * time.Millisecond
	tagline    = "Find the Arena. Uncover the Elemental Shards."
	pressHint  = "press any key to continue"
	unlitShard = "◇"
)

type tickMsg time.Time

type shardGlyph struct {
	glyph string
	color lipgloss.Style
}

var shardRow = []shardGlyph{
	{"◆", lipgloss.NewStyle().Foreground(theme.Earth).Bold(true)},
	{"◆", lipgloss.NewStyle().Foreground(theme.Water).Bold(true)},
	{"◆", lipgloss.NewStyle().Foreground(theme.Fire).Bold(true)},
}

// twinkle alternates under the lit shards.
var twinkle = [2]string{"✦", "·"}

// WelcomeScreen plays the splash and then swaps itself for home.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	frames  int
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. next builds the screen that replaces it.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.frames++
		return w, tick()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// leave builds the next screen once; later keys are ignored.
func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	s := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

// litShards is how many shards have lit so far.
func (w *WelcomeScreen) litShards() int {
	return min(int(w.elapsed/shardStep), len(shardRow))
}

func (w *WelcomeScreen) View(width, height int) string {
	lit := w.litShards()

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	glyphs := make([]string, len(shardRow))
	sparks := make([]string, len(shardRow))
	for i, sh := range shardRow {
		if i < lit {
			glyphs[i] = sh.color.Render(sh.glyph)
			sparks[i] = sh.color.Render(twinkle[(w.frames+i)%len(twinkle)])
		} else {
			glyphs[i] = dim.Render(unlitShard)
			sparks[i] = " "
		}
	}

	lines := []string{
		strings.Join(sparks, "     "),
		strings.Join(glyphs, "     "),
	}

	if w.elapsed >= bannerAt {
		lines = append(lines,
			"",
			RenderBanner(width, height),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(pressHint),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}
