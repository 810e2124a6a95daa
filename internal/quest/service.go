package quest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/shardhunt/internal/cooldown"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/wallet"
)

// Service mounts tasks against a store and reports their status.
type Service struct {
	kv        store.KV
	ledger    *wallet.Ledger
	cfg       Config
	emitter   *Emitter
	newSecret func(n int) string
	log       *zap.Logger
}

// NewService creates a Service. A nil log discards output.
func NewService(kv store.KV, ledger *wallet.Ledger, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		kv:        kv,
		ledger:    ledger,
		cfg:       cfg,
		emitter:   NewEmitter(kv, ledger, cfg.Cooldown, log),
		newSecret: NewSecret,
		log:       log,
	}
}

// WithClock replaces the time source for cooldowns and reward timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.emitter.WithClock(now)
	s.ledger.WithClock(now)
	return s
}

// WithSecretSource replaces the code secret generator.
func (s *Service) WithSecretSource(fn func(n int) string) *Service {
	s.newSecret = fn
	return s
}

// Config returns the task settings.
func (s *Service) Config() Config { return s.cfg }

// Ledger returns the wallet ledger rewards are written to.
func (s *Service) Ledger() *wallet.Ledger { return s.ledger }

// Gate loads the current completion snapshot.
func (s *Service) Gate(ctx context.Context) (*Gate, error) {
	return LoadGate(ctx, s.kv)
}

// CheckIn mounts the location task.
func (s *Service) CheckIn(ctx context.Context) (*CheckIn, error) {
	g, err := s.Gate(ctx)
	if err != nil {
		return nil, err
	}
	t := newCheckIn(s.emitter, g, s.cfg, s.log.Named("checkin"))
	if err := t.Tick(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// VideoWatch mounts the video task.
func (s *Service) VideoWatch(ctx context.Context) (*VideoWatch, error) {
	g, err := s.Gate(ctx)
	if err != nil {
		return nil, err
	}
	t := newVideoWatch(s.emitter, g, s.cfg)
	if err := t.Tick(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// CodeScan mounts the code task with a new secret.
func (s *Service) CodeScan(ctx context.Context) (*CodeScan, error) {
	g, err := s.Gate(ctx)
	if err != nil {
		return nil, err
	}
	t := newCodeScan(s.emitter, g, s.cfg, s.newSecret)
	if err := t.Tick(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Overview returns the idle status of every task, in unlock order.
func (s *Service) Overview(ctx context.Context) ([]Status, error) {
	g, err := s.Gate(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(unlockOrder))
	for _, id := range unlockOrder {
		rem, err := s.emitter.Remaining(ctx, id)
		if err != nil {
			return nil, err
		}
		st := Status{
			Task:             id,
			Name:             id.DisplayName(),
			State:            StateIdle,
			Unlocked:         g.Unlocked(id),
			Completed:        g.Completed(id),
			Remaining:        rem,
			RemainingSeconds: cooldown.Seconds(rem),
		}
		if rem > 0 {
			st.State = StateCooldown
		}
		out = append(out, st)
	}
	return out, nil
}
