package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"rachaAPI/internal/chat"
	"rachaAPI/internal/gateway"
	"rachaAPI/services"
)

type CoachHandler struct {
	coachService *services.CoachService
	gw           gateway.Gateway
}

func NewCoachHandler(coachService *services.CoachService, gw gateway.Gateway) *CoachHandler {
	return &CoachHandler{
		coachService: coachService,
		gw:           gw,
	}
}

// Chat produces one coach reply per request. Provider failures never reach
// the client as errors; they come back as offline replies instead.
func (h *CoachHandler) Chat(w http.ResponseWriter, r *http.Request) {
	// Generous timeout: the provider round-trip plus the offline delay.
	ctx, cancel := context.WithTimeout(r.Context(), 35*time.Second)
	defer cancel()

	userID, ok := authedUser(w, ctx, h.gw)
	if !ok {
		return
	}

	var req chat.ConverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondWithError(w, http.StatusBadRequest, "Message is required")
		return
	}

	// Streak numbers feed the coach preamble. Losing them only degrades the
	// reply, so a missing profile is not an error here.
	var streakCtx chat.StreakContext
	if p, err := h.gw.GetProfile(ctx, userID); err == nil {
		streakCtx.CurrentStreak = p.CurrentStreak
		streakCtx.LongestStreak = p.LongestStreak
	}

	reply := h.coachService.Converse(ctx, req.History, req.Message, streakCtx)
	respondWithJSON(w, http.StatusOK, reply)
}
