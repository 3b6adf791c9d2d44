package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"rachaAPI/internal/gateway"
	"rachaAPI/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	gw                  gateway.Gateway
}

func NewNotificationHandler(notificationService *services.NotificationService, gw gateway.Gateway) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		gw:                  gw,
	}
}

type registerDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUser(w, ctx, h.gw)
	if !ok {
		return
	}

	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.notificationService.RegisterDevice(ctx, userID, req.Token, req.Platform); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Device registered"})
}
