package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"

	"github.com/abhisek/shardhunt/internal/avatar"
	"github.com/abhisek/shardhunt/internal/geo"
	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/wallet"
)

type statusResponse struct {
	Tasks  []quest.Status  `json:"tasks"`
	Wallet *wallet.Summary `json:"wallet"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Overview(r.Context())
	if err != nil {
		s.internal(w, err)
		return
	}
	summary, err := s.ledger.Summary(r.Context())
	if err != nil {
		s.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Tasks: tasks, Wallet: summary})
}

// --- check-in ---

type coordRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req coordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", err.Error())
		return
	}
	if req.Lat == nil || req.Lon == nil {
		writeError(w, http.StatusBadRequest, "bad-request", "lat and lon are required")
		return
	}
	pos := geo.Coord{Lat: *req.Lat, Lon: *req.Lon}
	if !pos.Valid() {
		writeError(w, http.StatusBadRequest, "bad-request", "coordinates out of range")
		return
	}
	if err := s.checkIn.Refresh(r.Context()); err != nil {
		s.internal(w, err)
		return
	}

	res, err := s.checkIn.Attempt(r.Context(), quest.FixedLocator(pos))
	var result any
	if res != nil {
		result = res
	}
	s.respondTask(w, r, s.checkIn, result, err)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if err := s.checkIn.Refresh(r.Context()); err != nil {
		s.internal(w, err)
		return
	}
	res, err := s.checkIn.Simulate(r.Context())
	var result any
	if res != nil {
		result = res
	}
	s.respondTask(w, r, s.checkIn, result, err)
}

// --- video ---

// videoView renders playback positions in seconds.
type videoView struct {
	Position  float64               `json:"position"`
	Highest   float64               `json:"highest"`
	Length    float64               `json:"length"`
	Threshold float64               `json:"threshold"`
	Playing   bool                  `json:"playing"`
	Rewarded  bool                  `json:"rewarded"`
	Reward    *wallet.PendingReward `json:"reward,omitempty"`
}

func viewProgress(p quest.Progress) videoView {
	return videoView{
		Position:  p.Position.Seconds(),
		Highest:   p.Highest.Seconds(),
		Length:    p.Length.Seconds(),
		Threshold: p.Threshold.Seconds(),
		Playing:   p.Playing,
		Rewarded:  p.Rewarded,
		Reward:    p.Reward,
	}
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

func (s *Server) handleVideoStart(w http.ResponseWriter, r *http.Request) {
	if err := s.video.Refresh(r.Context()); err != nil {
		s.internal(w, err)
		return
	}
	p, err := s.video.Start(r.Context())
	s.respondTask(w, r, s.video, viewProgress(p), err)
}

func (s *Server) handleVideoAdvance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seconds float64 `json:"seconds"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", err.Error())
		return
	}
	if req.Seconds <= 0 || req.Seconds > 3600 {
		writeError(w, http.StatusBadRequest, "bad-request", "seconds must be in (0, 3600]")
		return
	}
	p, err := s.video.Advance(r.Context(), seconds(req.Seconds))
	s.respondTask(w, r, s.video, viewProgress(p), err)
}

func (s *Server) handleVideoSeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position *float64 `json:"position"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", err.Error())
		return
	}
	if req.Position == nil || *req.Position < 0 || *req.Position > 3600 {
		writeError(w, http.StatusBadRequest, "bad-request", "position must be in [0, 3600]")
		return
	}
	p, err := s.video.Seek(r.Context(), seconds(*req.Position))
	s.respondTask(w, r, s.video, viewProgress(p), err)
}

// --- code ---

func (s *Server) handleCodeQR(w http.ResponseWriter, r *http.Request) {
	if err := s.code.Refresh(r.Context()); err != nil {
		s.internal(w, err)
		return
	}
	if !s.code.Unlocked() {
		writeError(w, http.StatusLocked, "locked", quest.Message(quest.ErrLocked))
		return
	}
	png, err := qrcode.Encode(s.code.Secret(), qrcode.Medium, 256)
	if err != nil {
		s.internal(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

type codeResult struct {
	Code   string                `json:"code,omitempty"`
	Reward *wallet.PendingReward `json:"reward,omitempty"`
}

func (s *Server) handleCodeReveal(w http.ResponseWriter, r *http.Request) {
	if err := s.code.Refresh(r.Context()); err != nil {
		s.internal(w, err)
		return
	}
	secret, err := s.code.Reveal(r.Context())
	s.respondTask(w, r, s.code, codeResult{Code: secret}, err)
}

func (s *Server) handleCodeSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", err.Error())
		return
	}
	if err := s.code.Refresh(r.Context()); err != nil {
		s.internal(w, err)
		return
	}
	reward, err := s.code.Submit(r.Context(), req.Code)
	s.respondTask(w, r, s.code, codeResult{Reward: reward}, err)
}

// --- wallet ---

type walletResponse struct {
	Profile avatar.Profile         `json:"profile"`
	Summary *wallet.Summary        `json:"summary"`
	Pending []wallet.PendingReward `json:"pending"`
	Shards  []wallet.Shard         `json:"shards"`
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile, err := avatar.Load(ctx, s.kv)
	if err != nil {
		s.internal(w, err)
		return
	}
	summary, err := s.ledger.Summary(ctx)
	if err != nil {
		s.internal(w, err)
		return
	}
	pending, err := s.ledger.Pending(ctx)
	if err != nil {
		s.internal(w, err)
		return
	}
	shards, err := s.ledger.Shards(ctx)
	if err != nil {
		s.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, walletResponse{
		Profile: profile,
		Summary: summary,
		Pending: pending,
		Shards:  shards,
	})
}

type collectResponse struct {
	Collected bool            `json:"collected"`
	Shard     wallet.Shard    `json:"shard,omitempty"`
	Summary   *wallet.Summary `json:"summary"`
}

func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	typ, ok := wallet.ParseRewardType(mux.Vars(r)["type"])
	if !ok {
		writeError(w, http.StatusBadRequest, "bad-request", "unknown reward type")
		return
	}
	shard, collected, err := s.ledger.Collect(r.Context(), typ)
	if err != nil {
		s.internal(w, err)
		return
	}
	summary, err := s.ledger.Summary(r.Context())
	if err != nil {
		s.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collectResponse{Collected: collected, Shard: shard, Summary: summary})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Reset(r.Context()); err != nil {
		s.internal(w, err)
		return
	}
	summary, err := s.ledger.Summary(r.Context())
	if err != nil {
		s.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// --- avatar ---

func (s *Server) handleGetAvatar(w http.ResponseWriter, r *http.Request) {
	p, err := avatar.Load(r.Context(), s.kv)
	if err != nil {
		s.internal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutAvatar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name *string `json:"name"`
		Icon *string `json:"icon"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", err.Error())
		return
	}

	ctx := r.Context()
	if req.Icon != nil {
		if err := avatar.SetIcon(ctx, s.kv, avatar.Icon(*req.Icon)); err != nil {
			if errors.Is(err, avatar.ErrUnknownIcon) {
				writeError(w, http.StatusBadRequest, "bad-request", err.Error())
				return
			}
			s.internal(w, err)
			return
		}
	}
	if req.Name != nil {
		if _, err := avatar.SetName(ctx, s.kv, *req.Name); err != nil {
			s.internal(w, err)
			return
		}
	}
	s.handleGetAvatar(w, r)
}
