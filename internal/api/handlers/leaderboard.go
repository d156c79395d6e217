package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/baharkarakas/credits-leaderboard/internal/api/httpx"
	"github.com/baharkarakas/credits-leaderboard/internal/api/validate"
	"github.com/baharkarakas/credits-leaderboard/internal/codec"
	"github.com/baharkarakas/credits-leaderboard/internal/middleware"
	"github.com/baharkarakas/credits-leaderboard/internal/services"
)

type LeaderboardHandler struct {
	Svc          *services.LeaderboardService
	MaxBodyBytes int64
	Log          *slog.Logger
}

func NewLeaderboardHandler(svc *services.LeaderboardService, maxBody int64, log *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{Svc: svc, MaxBodyBytes: maxBody, Log: log}
}

// Rank takes the same JSON array as the batch command and answers with the ranked array.
func (h *LeaderboardHandler) Rank(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	var out bytes.Buffer
	err := h.Svc.Transform(body, &out)

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		httpx.WriteEncoded(w, http.StatusOK, out.Bytes())
	case errors.As(err, &tooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "too_large", "request body too large", nil)
	case errors.Is(err, codec.ErrRead):
		httpx.WriteError(w, http.StatusBadRequest, "read_failed", "could not read request body", nil)
	case errors.Is(err, codec.ErrDecode):
		var details any
		var fields validate.Errs
		if errors.As(err, &fields) {
			details = fields
		}
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error(), details)
	default:
		h.Log.Error("rank", "err", err, "request_id", middleware.RequestIDFrom(r.Context()))
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

// Group serves the stored leaderboard of one group to its members.
func (h *LeaderboardHandler) Group(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if _, err := uuid.Parse(groupID); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_group_id", "groupId must be a UUID", nil)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing user", nil)
		return
	}

	rows, err := h.Svc.GroupLeaderboard(r.Context(), groupID, userID)
	if errors.Is(err, services.ErrNotMember) {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "not a member", nil)
		return
	}
	if err != nil {
		h.Log.Error("group leaderboard", "err", err, "group_id", groupID, "request_id", middleware.RequestIDFrom(r.Context()))
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
		return
	}

	var out bytes.Buffer
	if err := codec.Encode(&out, rows); err != nil {
		h.Log.Error("encode leaderboard", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
		return
	}
	httpx.WriteEncoded(w, http.StatusOK, out.Bytes())
}
