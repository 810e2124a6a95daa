package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/router"
	"github.com/abhisek/shardhunt/internal/screen"
	"github.com/abhisek/shardhunt/internal/screens/home"
	"github.com/abhisek/shardhunt/internal/screens/welcome"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/ui/layout"
	"github.com/abhisek/shardhunt/internal/wallet"
)

const headerRefresh = time.Second

// Options holds the dependencies injected into the TUI.
type Options struct {
	Service *quest.Service
	KV      store.KV
	// Locator supplies positions for check-ins. Nil means no sensor.
	Locator quest.Locator
	Logger  *zap.Logger
}

// headerTickMsg refreshes the wallet counts shown in the header.
type headerTickMsg time.Time

// headerLoadedMsg carries the wallet counts for the header.
type headerLoadedMsg struct {
	Summary *wallet.Summary
	Err     error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	ledger  *wallet.Ledger
	log     *zap.Logger
	pending int
	shards  int
	width   int
	height  int
}

// newAppModel creates an AppModel that opens on the welcome splash.
func newAppModel(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	splash := welcome.New(func() screen.Screen {
		return home.New(opts.Service, opts.KV, opts.Locator)
	})
	return AppModel{
		router: router.New(splash),
		ledger: opts.Service.Ledger(),
		log:    log,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadHeader(), headerTick())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerTickMsg:
		return m, tea.Batch(m.loadHeader(), headerTick())

	case headerLoadedMsg:
		if msg.Err != nil {
			m.log.Warn("load wallet summary", zap.Error(msg.Err))
			return m, nil
		}
		m.pending = msg.Summary.TotalPending
		m.shards = msg.Summary.TotalShards
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) loadHeader() tea.Cmd {
	ledger := m.ledger
	return func() tea.Msg {
		sum, err := ledger.Summary(context.Background())
		return headerLoadedMsg{Summary: sum, Err: err}
	}
}

func headerTick() tea.Cmd {
	return tea.Tick(headerRefresh, func(t time.Time) tea.Msg {
		return headerTickMsg(t)
	})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.pending, m.shards, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Service == nil {
		return fmt.Errorf("app: quest service is required")
	}
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
