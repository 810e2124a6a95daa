package quest

import (
	"context"
	"strings"

	"github.com/abhisek/shardhunt/internal/wallet"
)

// CodeScan is the secret-code task: succeed by entering the code encoded in
// the displayed QR.
type CodeScan struct {
	taskBase
	secretLen int
	newSecret func(n int) string

	secret string
	input  string
}

func newCodeScan(em *Emitter, gate *Gate, cfg Config, newSecret func(int) string) *CodeScan {
	c := &CodeScan{
		secretLen: cfg.SecretLength,
		newSecret: newSecret,
	}
	c.init(TaskCode, em, gate)
	c.secret = newSecret(c.secretLen)
	c.onExpire = func() { c.input = "" }
	return c
}

// Secret returns the code for this session.
func (c *CodeScan) Secret() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.secret
}

// Input returns the code typed so far.
func (c *CodeScan) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// SetInput records typed text without submitting it.
func (c *CodeScan) SetInput(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = s
}

// Remount starts a new session with a fresh secret.
func (c *CodeScan) Remount(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.secret = c.newSecret(c.secretLen)
	c.input = ""
	return c.remountLocked(ctx)
}

// Reveal fills the input with the secret for players who cannot scan.
// It is refused while locked, solved, or cooling down.
func (c *CodeScan) Reveal(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.gate.Unlocked(c.id) {
		return "", ErrLocked
	}
	rem, err := c.em.Remaining(ctx, c.id)
	if err != nil {
		return "", err
	}
	c.tickLocked(rem)
	if rem > 0 {
		return "", &CooldownError{Remaining: rem}
	}
	c.input = c.secret
	return c.secret, nil
}

// Submit checks input against the secret, ignoring surrounding space and
// case.
func (c *CodeScan) Submit(ctx context.Context, input string) (*wallet.PendingReward, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = input
	if err := c.beginLocked(ctx); err != nil {
		return nil, err
	}

	if strings.ToUpper(strings.TrimSpace(input)) != c.secret {
		c.failLocked(ErrWrongCode)
		return nil, ErrWrongCode
	}
	return c.succeedLocked(ctx, "Congratulations, Explorer! You've uncovered a shard. Return to your wallet and claim your reward.")
}
