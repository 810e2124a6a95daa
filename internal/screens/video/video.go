// Package video is the playback task screen. Playback is simulated: each
// frame advances the position by the frame interval.
package video

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/screen"
	"github.com/abhisek/shardhunt/internal/ui/layout"
)

const (
	frameInterval = 250 * time.Millisecond
	// statusEvery frames between status refreshes.
	statusEvery = 4
	seekStep    = 5 * time.Second
)

// VideoScreen plays the chronicle and reports the watch reward.
type VideoScreen struct {
	svc *quest.Service

	task     *quest.VideoWatch
	status   quest.Status
	progress quest.Progress
	paused   bool
	frames   int
	errMsg   string
}

var _ screen.Screen = (*VideoScreen)(nil)
var _ screen.KeyHintProvider = (*VideoScreen)(nil)

// New creates a VideoScreen.
func New(svc *quest.Service) *VideoScreen {
	return &VideoScreen{svc: svc}
}

func (s *VideoScreen) Init() tea.Cmd {
	return tea.Batch(s.mount(), frame())
}

func (s *VideoScreen) Title() string {
	return quest.TaskVideo.DisplayName()
}

func (s *VideoScreen) KeyHints() []layout.KeyHint {
	if !s.progress.Playing {
		return []layout.KeyHint{
			{Key: "Space", Description: "Play"},
			{Key: "Esc", Description: "Back"},
		}
	}
	pause := "Pause"
	if s.paused {
		pause = "Resume"
	}
	return []layout.KeyHint{
		{Key: "Space", Description: pause},
		{Key: "←→", Description: "Seek"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VideoScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.task = msg.Task
		s.status = msg.Status
		s.progress = msg.Task.Progress()
		return s, nil

	case statusMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.status = msg.Status
		return s, nil

	case progressMsg:
		s.progress = msg.Progress
		if !s.progress.Playing {
			s.paused = false
		}
		return s, s.refresh()

	case frameMsg:
		s.frames++
		cmds := []tea.Cmd{frame()}
		if s.task != nil && s.progress.Playing && !s.paused {
			cmds = append(cmds, s.advance(frameInterval))
		} else if s.frames%statusEvery == 0 {
			cmds = append(cmds, s.refresh())
		}
		return s, tea.Batch(cmds...)

	case tea.KeyMsg:
		if s.task == nil {
			return s, nil
		}
		switch msg.String() {
		case "space", " ", "enter":
			if !s.progress.Playing {
				return s, s.start()
			}
			s.paused = !s.paused
			return s, nil
		case "right", "l":
			if s.progress.Playing {
				return s, s.seek(s.progress.Position + seekStep)
			}
		case "left", "h":
			if s.progress.Playing {
				return s, s.seek(s.progress.Position - seekStep)
			}
		}
	}
	return s, nil
}

func (s *VideoScreen) mount() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		ctx := context.Background()
		task, err := svc.VideoWatch(ctx)
		if err != nil {
			return mountedMsg{Err: err}
		}
		st, err := task.Status(ctx)
		return mountedMsg{Task: task, Status: st, Err: err}
	}
}

func (s *VideoScreen) refresh() tea.Cmd {
	task := s.task
	if task == nil {
		return nil
	}
	return func() tea.Msg {
		st, err := task.Status(context.Background())
		return statusMsg{Status: st, Err: err}
	}
}

func (s *VideoScreen) start() tea.Cmd {
	task := s.task
	return func() tea.Msg {
		p, err := task.Start(context.Background())
		return progressMsg{Progress: p, Err: err}
	}
}

func (s *VideoScreen) advance(d time.Duration) tea.Cmd {
	task := s.task
	return func() tea.Msg {
		p, err := task.Advance(context.Background(), d)
		return progressMsg{Progress: p, Err: err}
	}
}

func (s *VideoScreen) seek(to time.Duration) tea.Cmd {
	task := s.task
	return func() tea.Msg {
		p, err := task.Seek(context.Background(), to)
		return progressMsg{Progress: p, Err: err}
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
