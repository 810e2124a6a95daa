// Package checkin is the location task screen.
package checkin

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/screen"
	"github.com/abhisek/shardhunt/internal/ui/layout"
)

// CheckInScreen runs location check-ins against the configured target.
type CheckInScreen struct {
	svc *quest.Service
	loc quest.Locator

	task     *quest.CheckIn
	status   quest.Status
	result   *quest.CheckInResult
	locating bool
	errMsg   string
}

var _ screen.Screen = (*CheckInScreen)(nil)
var _ screen.KeyHintProvider = (*CheckInScreen)(nil)

// New creates a CheckInScreen that asks loc for the player's position.
func New(svc *quest.Service, loc quest.Locator) *CheckInScreen {
	if loc == nil {
		loc = quest.NoSensor
	}
	return &CheckInScreen{svc: svc, loc: loc}
}

func (s *CheckInScreen) Init() tea.Cmd {
	return tea.Batch(s.mount(), tick())
}

func (s *CheckInScreen) Title() string {
	return quest.TaskLocation.DisplayName()
}

func (s *CheckInScreen) KeyHints() []layout.KeyHint {
	if s.locating {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check in"},
		{Key: "S", Description: "Simulate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CheckInScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.task = msg.Task
		s.status = msg.Status
		return s, nil

	case statusMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.status = msg.Status
		return s, nil

	case attemptMsg:
		s.locating = false
		if msg.Result != nil {
			s.result = msg.Result
		}
		return s, s.refresh()

	case tickMsg:
		return s, tea.Batch(s.refresh(), tick())

	case tea.KeyMsg:
		if s.task == nil || s.locating {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			s.locating = true
			return s, s.attempt(false)
		case "s", "S":
			s.locating = true
			return s, s.attempt(true)
		}
	}
	return s, nil
}

func (s *CheckInScreen) mount() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		ctx := context.Background()
		task, err := svc.CheckIn(ctx)
		if err != nil {
			return mountedMsg{Err: err}
		}
		st, err := task.Status(ctx)
		return mountedMsg{Task: task, Status: st, Err: err}
	}
}

func (s *CheckInScreen) refresh() tea.Cmd {
	task := s.task
	if task == nil {
		return nil
	}
	return func() tea.Msg {
		st, err := task.Status(context.Background())
		return statusMsg{Status: st, Err: err}
	}
}

func (s *CheckInScreen) attempt(simulated bool) tea.Cmd {
	task, loc := s.task, s.loc
	return func() tea.Msg {
		ctx := context.Background()
		if simulated {
			res, err := task.Simulate(ctx)
			return attemptMsg{Result: res, Err: err}
		}
		res, err := task.Attempt(ctx, loc)
		return attemptMsg{Result: res, Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
