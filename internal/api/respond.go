package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/abhisek/shardhunt/internal/cooldown"
	"github.com/abhisek/shardhunt/internal/quest"
)

// taskResponse is the body of every task action.
type taskResponse struct {
	Status           quest.Status `json:"status"`
	Error            string       `json:"error,omitempty"`
	Message          string       `json:"message,omitempty"`
	RemainingSeconds int          `json:"remainingSeconds,omitempty"`
	Result           any          `json:"result,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, kind, msg string) {
	writeJSON(w, code, errorResponse{Error: kind, Message: msg})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// errorKind names a task error for clients.
func errorKind(err error) string {
	var oor *quest.OutOfRangeError
	var cd *quest.CooldownError
	switch {
	case errors.As(err, &cd):
		return "cooldown"
	case errors.As(err, &oor):
		return "out-of-range"
	case errors.Is(err, quest.ErrLocked):
		return "locked"
	case errors.Is(err, quest.ErrBusy):
		return "busy"
	case errors.Is(err, quest.ErrNotStarted):
		return "not-started"
	case errors.Is(err, quest.ErrWrongCode):
		return "wrong-code"
	case errors.Is(err, quest.ErrSeekRejected):
		return "seek-rejected"
	case errors.Is(err, quest.ErrPermissionDenied):
		return "permission-denied"
	case errors.Is(err, quest.ErrSensorUnavailable):
		return "sensor-unavailable"
	default:
		return "internal"
	}
}

// statusCode maps a task error to an HTTP status. Task outcomes that are
// part of normal play are 200 with the error kind in the body.
func statusCode(err error) int {
	switch errorKind(err) {
	case "locked":
		return http.StatusLocked
	case "cooldown":
		return http.StatusTooManyRequests
	case "busy", "not-started":
		return http.StatusConflict
	case "internal":
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

// taskStatus is implemented by every mounted task.
type taskStatus interface {
	Status(ctx context.Context) (quest.Status, error)
}

func (s *Server) respondTask(w http.ResponseWriter, r *http.Request, task taskStatus, result any, taskErr error) {
	st, err := task.Status(r.Context())
	if err != nil {
		s.internal(w, err)
		return
	}

	resp := taskResponse{Status: st, Result: result, Message: st.Message}
	code := http.StatusOK
	if taskErr != nil {
		code = statusCode(taskErr)
		if code == http.StatusInternalServerError {
			s.internal(w, taskErr)
			return
		}
		resp.Error = errorKind(taskErr)
		resp.Message = quest.Message(taskErr)
		var cd *quest.CooldownError
		if errors.As(taskErr, &cd) {
			resp.RemainingSeconds = cooldown.Seconds(cd.Remaining)
		}
	}
	writeJSON(w, code, resp)
}

func (s *Server) internal(w http.ResponseWriter, err error) {
	s.log.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}
