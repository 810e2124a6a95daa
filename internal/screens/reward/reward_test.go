package reward

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shardhunt/internal/router"
	"github.com/abhisek/shardhunt/internal/ui/theme"
	"github.com/abhisek/shardhunt/internal/wallet"
)

func TestRewardScreen_Title(t *testing.T) {
	s := New(wallet.ShardFire, wallet.RewardCodeScan)
	if s.Title() != "Shard Collected" {
		t.Errorf("Title = %q, want %q", s.Title(), "Shard Collected")
	}
}

func TestRewardScreen_Display(t *testing.T) {
	s := New(wallet.ShardWater, wallet.RewardVideoWatch)
	view := s.View(80, 24)
	if !strings.Contains(view, "Water Shard") {
		t.Error("expected the shard name in the view")
	}
}

func TestRewardScreen_EnterPops(t *testing.T) {
	s := New(wallet.ShardEarth, wallet.RewardCheckIn)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestShardColor(t *testing.T) {
	if ShardColor(wallet.ShardFire) != theme.Fire {
		t.Error("fire shard should use the fire color")
	}
	if ShardColor(wallet.Shard("Aether")) != theme.Text {
		t.Error("unknown shard should fall back to text color")
	}
}
