package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"rachaAPI/internal/gateway"
	"rachaAPI/services"
)

type StreakHandler struct {
	streakService *services.StreakService
	gw            gateway.Gateway
}

func NewStreakHandler(streakService *services.StreakService, gw gateway.Gateway) *StreakHandler {
	return &StreakHandler{
		streakService: streakService,
		gw:            gw,
	}
}

// GetStreak runs the once-per-load reconciliation and returns the streak
// view the client should display.
func (h *StreakHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUser(w, ctx, h.gw)
	if !ok {
		return
	}

	view, err := h.streakService.ReconcileOnLoad(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileUnavailable) {
			respondWithError(w, http.StatusNotFound, "Your profile is still being set up. Try again in a moment.")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load streak. Please try again.")
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// CheckIn marks today's activity done. Safe to call twice: the second call
// reports already_done without touching the counter.
func (h *StreakHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUser(w, ctx, h.gw)
	if !ok {
		return
	}

	result, err := h.streakService.CheckInToday(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProfileUnavailable):
			respondWithError(w, http.StatusNotFound, "Your profile is still being set up. Try again in a moment.")
		case errors.Is(err, services.ErrPersistenceWrite):
			respondWithError(w, http.StatusInternalServerError, "Check-in was not saved. Please try again.")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to check in. Please try again.")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
