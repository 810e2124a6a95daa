package quest

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/abhisek/shardhunt/internal/wallet"
)

func TestOverview_Fresh(t *testing.T) {
	f := newFixture(t)
	got, err := f.svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	want := []Status{
		{Task: TaskLocation, Name: TaskLocation.DisplayName(), State: StateIdle, Unlocked: true},
		{Task: TaskVideo, Name: TaskVideo.DisplayName(), State: StateIdle},
		{Task: TaskCode, Name: TaskCode.DisplayName(), State: StateIdle},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overview mismatch (-want +got):\n%s", diff)
	}
}

// TestHuntScenario walks a fresh player through check-in, unlock, and
// collection.
func TestHuntScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	checkIn := mountCheckIn(t, f)
	video := mountVideo(t, f)
	if !checkIn.Unlocked() || video.Unlocked() {
		t.Fatalf("fresh unlocks: check-in %v video %v", checkIn.Unlocked(), video.Unlocked())
	}

	if _, err := checkIn.Simulate(ctx); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	// The already-mounted video view keeps its snapshot.
	if video.Unlocked() {
		t.Error("mounted video view unlocked without remount")
	}
	if err := video.Remount(ctx); err != nil {
		t.Fatalf("remount: %v", err)
	}
	if !video.Unlocked() {
		t.Error("video still locked after remount")
	}

	overview, err := f.svc.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	wantOverview := []Status{
		{Task: TaskLocation, State: StateCooldown, Unlocked: true, Completed: true, RemainingSeconds: 60},
		{Task: TaskVideo, State: StateIdle, Unlocked: true},
		{Task: TaskCode, State: StateIdle},
	}
	opts := cmpopts.IgnoreFields(Status{}, "Name", "Remaining")
	if diff := cmp.Diff(wantOverview, overview, opts); diff != "" {
		t.Errorf("overview mismatch (-want +got):\n%s", diff)
	}

	shard, ok, err := f.ledger.Collect(ctx, wallet.RewardCheckIn)
	if err != nil || !ok {
		t.Fatalf("collect = %v, %v", ok, err)
	}
	counts, err := f.ledger.ShardCounts(ctx)
	if err != nil {
		t.Fatalf("shard counts: %v", err)
	}
	if diff := cmp.Diff(map[wallet.Shard]int{shard: 1}, counts); diff != "" {
		t.Errorf("shard counts (-want +got):\n%s", diff)
	}
	if n := f.pendingCount(t, wallet.RewardCheckIn); n != 0 {
		t.Errorf("pending after collect = %d, want 0", n)
	}
}

func TestResetKeepsUnlocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := mountCheckIn(t, f).Simulate(ctx); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if err := f.ledger.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	video := mountVideo(t, f)
	if !video.Unlocked() {
		t.Error("reset should not relock video")
	}
	checkIn := mountCheckIn(t, f)
	st, err := checkIn.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Remaining != 0 {
		t.Errorf("cooldown survived reset: %v", st.Remaining)
	}
}

func TestWithClock_StampsRewards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clock.Advance(90 * time.Minute)

	res, err := mountCheckIn(t, f).Simulate(ctx)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !res.Reward.EarnedAt.Equal(f.clock.Now()) {
		t.Errorf("earnedAt = %v, want %v", res.Reward.EarnedAt, f.clock.Now())
	}
}
