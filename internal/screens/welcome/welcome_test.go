package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shardhunt/internal/router"
	"github.com/abhisek/shardhunt/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newCounted() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return &stubScreen{}
	}), &built
}

func advance(w *WelcomeScreen, ticks int) {
	for range ticks {
		w.Update(tickMsg(time.Now()))
	}
}

func TestShardsLightInOrder(t *testing.T) {
	w, _ := newCounted()

	for _, tc := range []struct {
		ticks int
		lit   int
	}{
		{0, 0},
		{5, 1},
		{5, 2},
		{5, 3},
		{20, 3},
	} {
		advance(w, tc.ticks)
		if got := w.litShards(); got != tc.lit {
			t.Errorf("after %v: lit = %d, want %d", w.elapsed, got, tc.lit)
		}
	}
}

func TestBannerAppearsAfterShards(t *testing.T) {
	w, _ := newCounted()

	if strings.Contains(w.View(100, 40), tagline) {
		t.Fatal("tagline visible before the shards lit")
	}
	advance(w, 14)
	if strings.Contains(w.View(100, 40), tagline) {
		t.Fatal("tagline visible at 1.4s")
	}
	advance(w, 1)
	view := w.View(100, 40)
	if !strings.Contains(view, tagline) {
		t.Error("tagline missing at 1.5s")
	}
	if !strings.Contains(view, pressHint) {
		t.Error("press-any-key hint missing")
	}
}

func TestElapsedCapsWithoutLeaving(t *testing.T) {
	w, built := newCounted()
	advance(w, 60)

	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want %v", w.elapsed, totalDur)
	}
	if *built != 0 {
		t.Errorf("next screen built %d times without a key", *built)
	}
}

func TestAnyKeyReplacesMidAnimation(t *testing.T) {
	w, built := newCounted()
	advance(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("key press produced no command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want ReplaceScreenMsg", cmd())
	}
	if msg.Screen == nil {
		t.Error("replacement screen is nil")
	}
	if *built != 1 {
		t.Errorf("next built %d times, want 1", *built)
	}
}

func TestSecondKeyIgnored(t *testing.T) {
	w, built := newCounted()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second key produced a command")
	}
	if *built != 1 {
		t.Errorf("next built %d times, want 1", *built)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newCounted()
	if w.Title() != "" {
		t.Errorf("Title = %q, want empty", w.Title())
	}
}
