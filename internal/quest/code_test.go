package quest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/shardhunt/internal/wallet"
)

func mountCode(t *testing.T, f *fixture) *CodeScan {
	t.Helper()
	f.setFlag(t, TaskLocation)
	f.setFlag(t, TaskVideo)
	c, err := f.svc.CodeScan(context.Background())
	if err != nil {
		t.Fatalf("mount code: %v", err)
	}
	return c
}

func TestCode_LockedWithoutVideo(t *testing.T) {
	f := newFixture(t)
	f.setFlag(t, TaskLocation)
	c, err := f.svc.CodeScan(context.Background())
	if err != nil {
		t.Fatalf("mount: %v", err)
	}

	if _, err := c.Submit(context.Background(), testSecret); !errors.Is(err, ErrLocked) {
		t.Errorf("submit err = %v, want ErrLocked", err)
	}
	if _, err := c.Reveal(context.Background()); !errors.Is(err, ErrLocked) {
		t.Errorf("reveal err = %v, want ErrLocked", err)
	}
	if f.pendingCount(t, wallet.RewardCodeScan) != 0 {
		t.Error("locked submit emitted a reward")
	}
}

func TestCode_Submit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"exact", "ARENA123", nil},
		{"lowercase with spaces", "  arena123 \n", nil},
		{"wrong", "ARENA124", ErrWrongCode},
		{"empty", "", ErrWrongCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c := mountCode(t, f)

			reward, err := c.Submit(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if reward != nil || c.State() != StateIdle {
					t.Errorf("failed submit: reward %v state %s", reward, c.State())
				}
				if c.Message() != "Incorrect code. Please try again." {
					t.Errorf("message = %q", c.Message())
				}
				return
			}
			if reward == nil || reward.Type != wallet.RewardCodeScan {
				t.Fatalf("reward = %+v", reward)
			}
			if c.State() != StateSuccess {
				t.Errorf("state = %s, want success", c.State())
			}
		})
	}
}

func TestCode_Reveal(t *testing.T) {
	f := newFixture(t)
	c := mountCode(t, f)
	ctx := context.Background()

	got, err := c.Reveal(ctx)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if got != testSecret || c.Input() != testSecret {
		t.Errorf("reveal = %q, input = %q", got, c.Input())
	}

	if _, err := c.Submit(ctx, c.Input()); err != nil {
		t.Fatalf("submit revealed: %v", err)
	}
	var cd *CooldownError
	if _, err := c.Reveal(ctx); !errors.As(err, &cd) {
		t.Errorf("reveal while solved err = %v, want CooldownError", err)
	}
}

func TestCode_TickResetsAfterCooldown(t *testing.T) {
	f := newFixture(t)
	c := mountCode(t, f)
	ctx := context.Background()

	if _, err := c.Submit(ctx, testSecret); err != nil {
		t.Fatalf("submit: %v", err)
	}

	f.clock.Advance(59 * time.Second)
	if err := c.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if c.State() != StateSuccess {
		t.Errorf("state at 59s = %s, want success", c.State())
	}

	f.clock.Advance(time.Second)
	if err := c.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if c.State() != StateIdle || c.Message() != "" || c.Input() != "" {
		t.Errorf("after expiry: state %s message %q input %q", c.State(), c.Message(), c.Input())
	}

	// The same secret is accepted again.
	if _, err := c.Submit(ctx, testSecret); err != nil {
		t.Errorf("second submit: %v", err)
	}
	if n := f.pendingCount(t, wallet.RewardCodeScan); n != 2 {
		t.Errorf("pending = %d, want 2", n)
	}
}

func TestCode_RemountRegeneratesSecret(t *testing.T) {
	f := newFixture(t)
	secrets := []string{"AAAAAAAA", "BBBBBBBB"}
	i := 0
	f.svc.WithSecretSource(func(int) string {
		s := secrets[i%len(secrets)]
		i++
		return s
	})
	c := mountCode(t, f)
	if c.Secret() != "AAAAAAAA" {
		t.Fatalf("secret = %q", c.Secret())
	}
	c.SetInput("typed")
	if err := c.Remount(context.Background()); err != nil {
		t.Fatalf("remount: %v", err)
	}
	if c.Secret() != "BBBBBBBB" || c.Input() != "" {
		t.Errorf("after remount: secret %q input %q", c.Secret(), c.Input())
	}
}
