// Package api exposes the hunt over HTTP as JSON.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/wallet"
)

// Server holds one mounted instance of each task for the lifetime of the
// process. Each request refreshes the task's gate before acting.
type Server struct {
	svc    *quest.Service
	kv     store.KV
	ledger *wallet.Ledger
	log    *zap.Logger

	checkIn *quest.CheckIn
	video   *quest.VideoWatch
	code    *quest.CodeScan
}

// NewServer mounts the tasks.
func NewServer(ctx context.Context, svc *quest.Service, kv store.KV, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	checkIn, err := svc.CheckIn(ctx)
	if err != nil {
		return nil, fmt.Errorf("mount check-in: %w", err)
	}
	video, err := svc.VideoWatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("mount video: %w", err)
	}
	code, err := svc.CodeScan(ctx)
	if err != nil {
		return nil, fmt.Errorf("mount code: %w", err)
	}
	return &Server{
		svc:     svc,
		kv:      kv,
		ledger:  svc.Ledger(),
		log:     log,
		checkIn: checkIn,
		video:   video,
		code:    code,
	}, nil
}

// Router returns the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/status", s.handleStatus).Methods("GET")

	r.HandleFunc("/tasks/checkin", s.handleCheckIn).Methods("POST")
	r.HandleFunc("/tasks/checkin/simulate", s.handleSimulate).Methods("POST")

	r.HandleFunc("/tasks/video/start", s.handleVideoStart).Methods("POST")
	r.HandleFunc("/tasks/video/advance", s.handleVideoAdvance).Methods("POST")
	r.HandleFunc("/tasks/video/seek", s.handleVideoSeek).Methods("POST")

	r.HandleFunc("/tasks/code/qr.png", s.handleCodeQR).Methods("GET")
	r.HandleFunc("/tasks/code/reveal", s.handleCodeReveal).Methods("POST")
	r.HandleFunc("/tasks/code", s.handleCodeSubmit).Methods("POST")

	r.HandleFunc("/wallet", s.handleWallet).Methods("GET")
	r.HandleFunc("/wallet/collect/{type}", s.handleCollect).Methods("POST")
	r.HandleFunc("/wallet/reset", s.handleReset).Methods("POST")

	r.HandleFunc("/avatar", s.handleGetAvatar).Methods("GET")
	r.HandleFunc("/avatar", s.handlePutAvatar).Methods("PUT")
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
