package vault

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/shardhunt/internal/router"
	"github.com/abhisek/shardhunt/internal/screens/reward"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/wallet"
)

func newTestScreen(t *testing.T) (*VaultScreen, *wallet.Ledger) {
	t.Helper()
	kv := store.NewMemoryKV()
	ledger := wallet.NewLedger(kv, zap.NewNop()).WithPicker(func(int) int { return 2 })
	return New(ledger, kv), ledger
}

func load(s *VaultScreen) {
	s.Update(s.load()())
}

func key(s *VaultScreen, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(msg)
	return cmd
}

func TestCollectPushesReward(t *testing.T) {
	s, ledger := newTestScreen(t)
	ctx := context.Background()
	if _, err := ledger.AppendPending(ctx, wallet.RewardCheckIn, "arrived"); err != nil {
		t.Fatal(err)
	}
	load(s)

	if !strings.Contains(s.View(100, 40), "arrived") {
		t.Error("pending reward should be listed")
	}

	cmd := key(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	_, next := s.Update(cmd())
	if next == nil {
		t.Fatal("expected a push after collecting")
	}
	push, ok := next().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*reward.RewardScreen); !ok {
		t.Errorf("pushed %T, want *reward.RewardScreen", push.Screen)
	}

	shards, _ := ledger.Shards(ctx)
	if len(shards) != 1 || shards[0] != wallet.ShardFire {
		t.Errorf("shards = %v, want [Fire]", shards)
	}
}

func TestCollectEmptyTypeShowsNotice(t *testing.T) {
	s, _ := newTestScreen(t)
	load(s)

	cmd := key(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	_, next := s.Update(cmd())
	if next != nil {
		t.Error("nothing should be pushed when no reward is pending")
	}
	if !strings.Contains(s.notice, "No You've Arrived rewards") {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestTabCyclesTypes(t *testing.T) {
	s, _ := newTestScreen(t)
	load(s)

	for i := 0; i < len(wallet.AllRewardTypes()); i++ {
		key(s, tea.KeyPressMsg{Code: tea.KeyTab})
	}
	if s.selectedType != 0 {
		t.Errorf("selectedType = %d, want wrap to 0", s.selectedType)
	}
}

func TestResetRequiresConfirm(t *testing.T) {
	s, ledger := newTestScreen(t)
	ctx := context.Background()
	_, _ = ledger.AppendPending(ctx, wallet.RewardVideoWatch, "watched")
	load(s)

	key(s, tea.KeyPressMsg{Code: 'r', Text: "r"})
	if !s.confirmReset {
		t.Fatal("expected reset confirmation prompt")
	}
	if cmd := key(s, tea.KeyPressMsg{Code: 'n', Text: "n"}); cmd != nil {
		t.Error("declining should not reset")
	}
	if p, _ := ledger.Pending(ctx); len(p) != 1 {
		t.Fatalf("pending = %d after cancel, want 1", len(p))
	}

	key(s, tea.KeyPressMsg{Code: 'r', Text: "r"})
	cmd := key(s, tea.KeyPressMsg{Code: 'y', Text: "y"})
	for cmd != nil {
		_, cmd = s.Update(cmd())
	}
	if p, _ := ledger.Pending(ctx); len(p) != 0 {
		t.Errorf("pending = %d after reset, want 0", len(p))
	}
	if s.summary.TotalPending != 0 {
		t.Errorf("summary not reloaded: %d pending", s.summary.TotalPending)
	}
}
