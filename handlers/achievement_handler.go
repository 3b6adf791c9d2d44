package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"rachaAPI/internal/gateway"
	"rachaAPI/services"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
	gw                 gateway.Gateway
}

func NewAchievementHandler(achievementService *services.AchievementService, gw gateway.Gateway) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
		gw:                 gw,
	}
}

func (h *AchievementHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUser(w, ctx, h.gw)
	if !ok {
		return
	}

	achievements, stats, err := h.achievementService.GetAchievements(ctx, userID)
	if err != nil {
		log.Printf("GetAchievements Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load achievements")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": achievements,
		"stats":        stats,
	})
}
