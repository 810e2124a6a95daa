package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/wallet"
)

type testEnv struct {
	kv  *store.MemoryKV
	now time.Time
	h   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		kv:  store.NewMemoryKV(),
		now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	ledger := wallet.NewLedger(env.kv, nil).WithPicker(func(int) int { return 0 })
	svc := quest.NewService(env.kv, ledger, quest.DefaultConfig(), nil).
		WithClock(func() time.Time { return env.now }).
		WithSecretSource(func(int) string { return "ARENA123" })

	srv, err := NewServer(context.Background(), svc, env.kv, nil)
	require.NoError(t, err)
	env.h = srv.Router()
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestStatus_Fresh(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[statusResponse](t, rec)
	require.Len(t, resp.Tasks, 3)
	assert.True(t, resp.Tasks[0].Unlocked)
	assert.False(t, resp.Tasks[1].Unlocked)
	assert.False(t, resp.Tasks[2].Unlocked)
	assert.Equal(t, 0, resp.Wallet.TotalPending)
}

func TestVideoLockedUntilCheckIn(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/tasks/video/start", "")
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Equal(t, "locked", decode[taskResponse](t, rec).Error)

	rec = env.do(t, "POST", "/tasks/checkin/simulate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "POST", "/tasks/video/start", "")
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
}

func TestSimulateThenCooldown(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/tasks/checkin/simulate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[struct {
		Status quest.Status        `json:"status"`
		Result quest.CheckInResult `json:"result"`
	}](t, rec)
	assert.Equal(t, quest.StateSuccess, resp.Status.State)
	require.NotNil(t, resp.Result.Reward)
	assert.Equal(t, wallet.RewardCheckIn, resp.Result.Reward.Type)

	env.now = env.now.Add(15 * time.Second)
	rec = env.do(t, "POST", "/tasks/checkin/simulate", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	tr := decode[taskResponse](t, rec)
	assert.Equal(t, "cooldown", tr.Error)
	assert.Equal(t, 45, tr.RemainingSeconds)
	assert.Equal(t, "Wait 45s before trying again.", tr.Message)
}

func TestCheckIn_OutOfRange(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "POST", "/tasks/checkin", `{"lat": 48.2288, "lon": 11.6247}`)
	require.Equal(t, http.StatusOK, rec.Code)

	tr := decode[taskResponse](t, rec)
	assert.Equal(t, "out-of-range", tr.Error)
	assert.Contains(t, tr.Message, "1.1 km")
	assert.Equal(t, quest.StateIdle, tr.Status.State)
}

func TestCheckIn_BadRequest(t *testing.T) {
	env := newTestEnv(t)
	tests := []string{``, `{"lat": 1}`, `{"lat": 100, "lon": 0}`, `not json`}
	for _, body := range tests {
		rec := env.do(t, "POST", "/tasks/checkin", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestVideoFlow(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.kv.Set(context.Background(), store.KeyCompletedLocation, store.FlagSet))

	require.Equal(t, http.StatusOK, env.do(t, "POST", "/tasks/video/start", "").Code)

	rec := env.do(t, "POST", "/tasks/video/seek", `{"position": 20}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "seek-rejected", decode[taskResponse](t, rec).Error)

	env.now = env.now.Add(15 * time.Second)
	rec = env.do(t, "POST", "/tasks/video/advance", `{"seconds": 15}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[struct {
		Result videoView `json:"result"`
	}](t, rec)
	assert.Equal(t, 15.0, resp.Result.Position)
	assert.True(t, resp.Result.Rewarded)
	require.NotNil(t, resp.Result.Reward)

	rec = env.do(t, "POST", "/tasks/video/advance", `{"seconds": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVideoAdvanceBoundByClock(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.kv.Set(context.Background(), store.KeyCompletedLocation, store.FlagSet))
	require.Equal(t, http.StatusOK, env.do(t, "POST", "/tasks/video/start", "").Code)

	rec := env.do(t, "POST", "/tasks/video/advance", `{"seconds": 3600}`)
	require.Equal(t, http.StatusOK, rec.Code)
	tr := decode[taskResponse](t, rec)
	assert.Equal(t, "seek-rejected", tr.Error)
	assert.Equal(t, quest.StateInProgress, tr.Status.State)
	resp := decode[struct {
		Result videoView `json:"result"`
	}](t, rec)
	assert.Equal(t, 0.0, resp.Result.Position)
	assert.False(t, resp.Result.Rewarded)
	assert.Nil(t, resp.Result.Reward)

	rec = env.do(t, "GET", "/wallet", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[walletResponse](t, rec).Pending)

	env.now = env.now.Add(10 * time.Second)
	rec = env.do(t, "POST", "/tasks/video/advance", `{"seconds": 10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[taskResponse](t, rec).Error)
}

func TestCodeFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := env.do(t, "GET", "/tasks/code/qr.png", "")
	assert.Equal(t, http.StatusLocked, rec.Code)

	require.NoError(t, env.kv.Set(ctx, store.KeyCompletedLocation, store.FlagSet))
	require.NoError(t, env.kv.Set(ctx, store.KeyCompletedVideo, store.FlagSet))

	rec = env.do(t, "GET", "/tasks/code/qr.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = env.do(t, "POST", "/tasks/code", `{"code": "WRONG"}`)
	assert.Equal(t, "wrong-code", decode[taskResponse](t, rec).Error)

	rec = env.do(t, "POST", "/tasks/code/reveal", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"ARENA123"`)

	rec = env.do(t, "POST", "/tasks/code", `{"code": " arena123 "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	tr := decode[taskResponse](t, rec)
	assert.Empty(t, tr.Error)
	assert.Equal(t, quest.StateSuccess, tr.Status.State)
}

func TestWalletCollectAndReset(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(t, "POST", "/tasks/checkin/simulate", "").Code)

	rec := env.do(t, "POST", "/wallet/collect/check-in", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cr := decode[collectResponse](t, rec)
	assert.True(t, cr.Collected)
	assert.Equal(t, wallet.ShardEarth, cr.Shard)
	assert.Equal(t, 1, cr.Summary.TotalShards)

	rec = env.do(t, "POST", "/wallet/collect/check-in", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[collectResponse](t, rec).Collected)

	rec = env.do(t, "POST", "/wallet/collect/dance", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, "POST", "/wallet/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[wallet.Summary](t, rec).TotalShards)

	// Reset clears the cooldown, so a new check-in succeeds right away.
	assert.Equal(t, http.StatusOK, env.do(t, "POST", "/tasks/checkin/simulate", "").Code)

	rec = env.do(t, "GET", "/wallet", "")
	require.Equal(t, http.StatusOK, rec.Code)
	wr := decode[walletResponse](t, rec)
	assert.Len(t, wr.Pending, 1)
	assert.Empty(t, wr.Shards)
	assert.Equal(t, "avatar-one", string(wr.Profile.Icon))
}

func TestAvatar(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "PUT", "/avatar", `{"icon": "avatar-nine"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, "PUT", "/avatar", `{"name": "Nova", "icon": "avatar-two"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"name":"Nova"`))

	rec = env.do(t, "PUT", "/avatar", `{"name": "Orion"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"icon":"avatar-two"`)
	assert.Contains(t, rec.Body.String(), `"name":"Orion"`)
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/wallet/reset", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
