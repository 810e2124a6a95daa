package profile

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shardhunt/internal/avatar"
	"github.com/abhisek/shardhunt/internal/store"
)

func newTestScreen(t *testing.T, kv store.KV) *ProfileScreen {
	t.Helper()
	s := New(kv)
	p, err := avatar.Load(context.Background(), kv)
	s.Update(profileLoadedMsg{Profile: p, Err: err})
	return s
}

func TestLoadsExistingProfile(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	if _, err := avatar.SetName(ctx, kv, "Nova"); err != nil {
		t.Fatal(err)
	}
	if err := avatar.SetIcon(ctx, kv, avatar.IconThree); err != nil {
		t.Fatal(err)
	}

	s := newTestScreen(t, kv)
	if s.name.Value() != "Nova" {
		t.Errorf("name = %q, want Nova", s.name.Value())
	}
	if s.picker.Selected != 2 {
		t.Errorf("picker = %d, want 2", s.picker.Selected)
	}
}

func TestPickIconAndSave(t *testing.T) {
	kv := store.NewMemoryKV()
	s := newTestScreen(t, kv)
	s.name.SetValue("  Orion  ")

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.focus != focusIcon {
		t.Fatal("tab should move focus to the icon picker")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	s.Update(cmd())

	p, err := avatar.Load(context.Background(), kv)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Orion" || p.Icon != avatar.IconTwo {
		t.Errorf("saved %+v, want Orion/avatar-two", p)
	}
	if s.notice == "" {
		t.Error("expected a saved notice")
	}
}
