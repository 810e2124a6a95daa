package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shardhunt/internal/avatar"
	"github.com/abhisek/shardhunt/internal/cooldown"
	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/router"
	"github.com/abhisek/shardhunt/internal/screen"
	"github.com/abhisek/shardhunt/internal/screens/checkin"
	"github.com/abhisek/shardhunt/internal/screens/code"
	"github.com/abhisek/shardhunt/internal/screens/profile"
	"github.com/abhisek/shardhunt/internal/screens/vault"
	"github.com/abhisek/shardhunt/internal/screens/video"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/ui/components"
	"github.com/abhisek/shardhunt/internal/wallet"
)

const refreshInterval = time.Second

// homeLoadedMsg carries a fresh read of task status, wallet and profile.
type homeLoadedMsg struct {
	Statuses []quest.Status
	Summary  *wallet.Summary
	Profile  avatar.Profile
	Err      error
}

// homeTickMsg drives the once-a-second refresh. gen ties it to one Init so
// re-mounting does not stack refresh loops.
type homeTickMsg struct{ gen int }

// HomeScreen lists the tasks with their lock and cooldown badges.
type HomeScreen struct {
	svc *quest.Service
	kv  store.KV
	loc quest.Locator

	menu     components.Menu
	statuses []quest.Status
	summary  *wallet.Summary
	profile  avatar.Profile
	loaded   bool
	errMsg   string
	gen      int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. loc is the position source handed to the
// check-in screen.
func New(svc *quest.Service, kv store.KV, loc quest.Locator) *HomeScreen {
	if loc == nil {
		loc = quest.NoSensor
	}
	return &HomeScreen{
		svc:     svc,
		kv:      kv,
		loc:     loc,
		summary: &wallet.Summary{},
	}
}

// Init re-evaluates the gate and restarts the refresh loop. The router
// calls it again whenever a covering screen is popped.
func (h *HomeScreen) Init() tea.Cmd {
	h.gen++
	return tea.Batch(h.load(), h.tick())
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.statuses = msg.Statuses
		h.summary = msg.Summary
		h.profile = msg.Profile
		h.rebuildMenu()
		return h, nil

	case homeTickMsg:
		if msg.gen != h.gen {
			return h, nil
		}
		return h, tea.Batch(h.load(), h.tick())
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) load() tea.Cmd {
	svc, kv := h.svc, h.kv
	return func() tea.Msg {
		ctx := context.Background()
		statuses, err := svc.Overview(ctx)
		if err != nil {
			return homeLoadedMsg{Err: err}
		}
		sum, err := svc.Ledger().Summary(ctx)
		if err != nil {
			return homeLoadedMsg{Err: err}
		}
		p, err := avatar.Load(ctx, kv)
		if err != nil {
			return homeLoadedMsg{Err: err}
		}
		return homeLoadedMsg{Statuses: statuses, Summary: sum, Profile: p}
	}
}

func (h *HomeScreen) tick() tea.Cmd {
	gen := h.gen
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return homeTickMsg{gen: gen}
	})
}

// rebuildMenu regenerates the items from the latest statuses, keeping the
// cursor where it was.
func (h *HomeScreen) rebuildMenu() {
	items := make([]components.MenuItem, 0, len(h.statuses)+3)
	for _, st := range h.statuses {
		items = append(items, components.MenuItem{
			Label:    strings.ToUpper(st.Name),
			Badge:    badgeFor(st),
			Disabled: !st.Unlocked,
			Action:   h.taskAction(st.Task),
		})
	}
	items = append(items,
		components.MenuItem{Label: "SHARD VAULT", Action: h.push(func() screen.Screen {
			return vault.New(h.svc.Ledger(), h.kv)
		})},
		components.MenuItem{Label: "AVATAR", Action: h.push(func() screen.Screen {
			return profile.New(h.kv)
		})},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	if len(h.menu.Items) == 0 {
		h.menu = components.NewMenu(items)
		return
	}
	h.menu.SetItems(items)
	if h.menu.Items[h.menu.Selected].Disabled {
		h.menu = components.NewMenu(items)
	}
}

func (h *HomeScreen) taskAction(id quest.TaskID) func() tea.Cmd {
	switch id {
	case quest.TaskLocation:
		return h.push(func() screen.Screen { return checkin.New(h.svc, h.loc) })
	case quest.TaskVideo:
		return h.push(func() screen.Screen { return video.New(h.svc) })
	case quest.TaskCode:
		return h.push(func() screen.Screen { return code.New(h.svc) })
	}
	return nil
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

// badgeFor renders the lock, cooldown or done marker for a task.
func badgeFor(st quest.Status) string {
	switch {
	case !st.Unlocked:
		return "🔒"
	case st.State == quest.StateCooldown:
		return "⏳ " + cooldown.Format(st.Remaining)
	case st.Completed:
		return "✓"
	}
	return ""
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 40 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderGreeting(h.profile, cw))

	completed := 0
	for _, st := range h.statuses {
		if st.Completed {
			completed++
		}
	}
	allDone := len(h.statuses) > 0 && completed == len(h.statuses)

	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.summary.TotalPending, allDone), cw))
	}

	sections = append(sections, renderStatsBar(
		h.summary.TotalPending, h.summary.TotalShards, completed, len(quest.AllTasks()), cw, compact))

	switch {
	case h.errMsg != "":
		sections = append(sections, renderError(h.errMsg, cw))
	case !h.loaded:
		sections = append(sections, renderError("Loading...", cw))
	default:
		labels, disabled := h.menuLabels()
		if compact {
			sections = append(sections, renderArcadeMenuCompact(labels, h.menu.Selected, cw, disabled))
		} else {
			sections = append(sections, renderArcadeMenu(labels, h.menu.Selected, cw, disabled))
		}
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) menuLabels() ([]string, map[int]bool) {
	labels := make([]string, len(h.menu.Items))
	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		labels[i] = item.Label
		if item.Badge != "" {
			labels[i] += "  " + item.Badge
		}
		if item.Disabled {
			disabled[i] = true
		}
	}
	return labels, disabled
}

func (h *HomeScreen) Title() string {
	return "Home"
}
