// Package code is the secret-code task screen. The secret is shown as a
// terminal QR code; players scan it with a phone and type it back.
package code

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/skip2/go-qrcode"

	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/screen"
	"github.com/abhisek/shardhunt/internal/ui/components"
	"github.com/abhisek/shardhunt/internal/ui/layout"
)

// CodeScreen shows the QR and takes the decoded code.
type CodeScreen struct {
	svc *quest.Service

	task   *quest.CodeScan
	status quest.Status
	qr     string
	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*CodeScreen)(nil)
var _ screen.KeyHintProvider = (*CodeScreen)(nil)

// New creates a CodeScreen.
func New(svc *quest.Service) *CodeScreen {
	return &CodeScreen{
		svc:   svc,
		input: components.NewTextInput("Enter the code...", true, svc.Config().SecretLength),
	}
}

func (s *CodeScreen) Init() tea.Cmd {
	return tea.Batch(s.mount(), s.input.Init(), tick())
}

func (s *CodeScreen) Title() string {
	return quest.TaskCode.DisplayName()
}

func (s *CodeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Tab", Description: "Reveal code"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CodeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.task = msg.Task
		s.status = msg.Status
		s.qr = msg.QR
		return s, nil

	case statusMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		// A solved code resets once its cooldown runs out.
		if s.status.State == quest.StateSuccess && msg.Status.State == quest.StateIdle {
			s.input.SetValue("")
		}
		s.status = msg.Status
		return s, nil

	case submitMsg:
		s.input.Submit(msg.Err == nil)
		return s, s.refresh()

	case revealMsg:
		if msg.Err == nil {
			s.input.SetValue(msg.Secret)
		}
		return s, s.refresh()

	case tickMsg:
		return s, tea.Batch(s.refresh(), tick())

	case tea.KeyMsg:
		if s.task == nil {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s, s.submit(s.input.Value())
		case "tab":
			return s, s.reveal()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.task != nil {
		s.task.SetInput(s.input.Value())
	}
	return s, cmd
}

func (s *CodeScreen) mount() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		ctx := context.Background()
		task, err := svc.CodeScan(ctx)
		if err != nil {
			return mountedMsg{Err: err}
		}
		st, err := task.Status(ctx)
		if err != nil {
			return mountedMsg{Err: err}
		}
		qr, err := renderQR(task.Secret())
		return mountedMsg{Task: task, Status: st, QR: qr, Err: err}
	}
}

func (s *CodeScreen) refresh() tea.Cmd {
	task := s.task
	if task == nil {
		return nil
	}
	return func() tea.Msg {
		st, err := task.Status(context.Background())
		return statusMsg{Status: st, Err: err}
	}
}

func (s *CodeScreen) submit(input string) tea.Cmd {
	task := s.task
	return func() tea.Msg {
		r, err := task.Submit(context.Background(), input)
		return submitMsg{Reward: r, Err: err}
	}
}

func (s *CodeScreen) reveal() tea.Cmd {
	task := s.task
	return func() tea.Msg {
		secret, err := task.Reveal(context.Background())
		return revealMsg{Secret: secret, Err: err}
	}
}

// renderQR encodes secret as a half-block terminal QR code.
func renderQR(secret string) (string, error) {
	q, err := qrcode.New(secret, qrcode.Medium)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
