package code

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/wallet"
)

const testSecret = "ARENA123"

func newTestScreen(t *testing.T, unlocked bool) (*CodeScreen, *quest.Service) {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	if unlocked {
		for _, k := range []string{store.KeyCompletedLocation, store.KeyCompletedVideo} {
			if err := kv.Set(ctx, k, store.FlagSet); err != nil {
				t.Fatal(err)
			}
		}
	}
	ledger := wallet.NewLedger(kv, zap.NewNop())
	svc := quest.NewService(kv, ledger, quest.DefaultConfig(), zap.NewNop()).
		WithSecretSource(func(int) string { return testSecret })

	s := New(svc)
	s.Update(s.mount()())
	if s.task == nil {
		t.Fatalf("task not mounted: %s", s.errMsg)
	}
	return s, svc
}

func run(s *CodeScreen, cmd tea.Cmd) {
	for cmd != nil {
		_, cmd = s.Update(cmd())
	}
}

func enter(s *CodeScreen) {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(s, cmd)
}

func TestMountRendersQR(t *testing.T) {
	s, _ := newTestScreen(t, true)
	if s.qr == "" {
		t.Fatal("expected a rendered QR code")
	}
	if s.task.Secret() != testSecret {
		t.Errorf("secret = %q, want %q", s.task.Secret(), testSecret)
	}
}

func TestWrongCode(t *testing.T) {
	s, svc := newTestScreen(t, true)
	s.input.SetValue("NOPE")
	enter(s)

	if s.status.Message != "Incorrect code. Please try again." {
		t.Errorf("message = %q", s.status.Message)
	}
	pending, _ := svc.Ledger().Pending(context.Background())
	if len(pending) != 0 {
		t.Errorf("no reward expected, got %d", len(pending))
	}
}

func TestRevealThenSubmit(t *testing.T) {
	s, svc := newTestScreen(t, true)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	run(s, cmd)
	if s.input.Value() != testSecret {
		t.Fatalf("input = %q, want revealed secret", s.input.Value())
	}

	enter(s)
	if s.status.State != quest.StateSuccess {
		t.Errorf("state = %s, want success", s.status.State)
	}
	counts, _ := svc.Ledger().PendingCounts(context.Background())
	if counts[wallet.RewardCodeScan] != 1 {
		t.Errorf("code rewards = %d, want 1", counts[wallet.RewardCodeScan])
	}
	if !strings.Contains(s.View(100, 60), "Next code in") {
		t.Error("view should show the cooldown")
	}
}

func TestTypingIsUppercasedAndFiltered(t *testing.T) {
	s, _ := newTestScreen(t, true)

	s.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	s.Update(tea.KeyPressMsg{Code: '-', Text: "-"})
	s.Update(tea.KeyPressMsg{Code: '7', Text: "7"})

	if got := s.input.Value(); got != "A7" {
		t.Errorf("input = %q, want %q", got, "A7")
	}
	if got := s.task.Input(); got != "A7" {
		t.Errorf("task input = %q, want %q", got, "A7")
	}
}

func TestLockedHidesQR(t *testing.T) {
	s, _ := newTestScreen(t, false)
	view := s.View(100, 60)
	if !strings.Contains(view, "🔒") {
		t.Error("locked view should show the lock")
	}
	if strings.Contains(view, "Enter the code") {
		t.Error("locked view should not offer input")
	}
}
