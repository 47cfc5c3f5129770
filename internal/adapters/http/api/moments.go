package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/momentum/internal/adapters/mq/queue"
	"github.com/okian/momentum/internal/adapters/repository"
	service "github.com/okian/momentum/internal/app"
	"github.com/okian/momentum/internal/domain/model"
)

const maxBodyBytes = 1 << 20

// MomentDependencies defines the moment scoring operations.
type MomentDependencies interface {
	// Submit queues a moment and reports whether it was seen before.
	Submit(ctx context.Context, m model.Moment) (string, bool, error)
	// Calculate scores a moment synchronously.
	Calculate(ctx context.Context, m model.Moment) (Bundle, error)
	// Result returns a stored moment result.
	Result(ctx context.Context, id string) (Bundle, error)
}

// MomentsHandler handles moment requests.
type MomentsHandler struct {
	deps MomentDependencies
}

// NewMomentsHandler creates a new moments handler.
func NewMomentsHandler(deps MomentDependencies) *MomentsHandler {
	return &MomentsHandler{deps: deps}
}

// HandleSubmit handles POST /moments requests.
func (h *MomentsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_moment"
	m, err := decodeMoment(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	id, duplicate, err := h.deps.Submit(r.Context(), m)
	switch {
	case err == nil && duplicate:
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", MomentID: id, Duplicate: true})
	case err == nil:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", MomentID: id})
	case errors.Is(err, model.ErrInvalidMoment):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, queue.ErrFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
	case errors.Is(err, queue.ErrClosed), errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// HandleScore handles POST /moments/score requests.
func (h *MomentsHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_moment"
	m, err := decodeMoment(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	b, err := h.deps.Calculate(r.Context(), m)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, b)
	case errors.Is(err, model.ErrInvalidMoment):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// HandleGet handles GET /moments/{id} requests.
func (h *MomentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_moment"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	b, err := h.deps.Result(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func decodeMoment(w http.ResponseWriter, r *http.Request) (model.Moment, error) {
	var req momentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return model.Moment{}, err
	}
	if err := req.Validate(); err != nil {
		return model.Moment{}, err
	}
	return req, nil
}
