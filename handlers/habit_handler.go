package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"rachaAPI/internal/gateway"
	"rachaAPI/internal/habit"
	"rachaAPI/services"
)

type HabitHandler struct {
	habitService *services.HabitService
	gw           gateway.Gateway
}

func NewHabitHandler(habitService *services.HabitService, gw gateway.Gateway) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
		gw:           gw,
	}
}

func (h *HabitHandler) GetHabits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUser(w, ctx, h.gw)
	if !ok {
		return
	}

	habits, err := h.habitService.ListHabits(ctx, userID)
	if err != nil {
		log.Printf("GetHabits Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load habits")
		return
	}

	respondWithJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUser(w, ctx, h.gw)
	if !ok {
		return
	}

	var req habit.CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.habitService.CreateHabit(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrPersistenceWrite) {
			respondWithError(w, http.StatusInternalServerError, "Habit was not saved. Please try again.")
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// ToggleCheckIn flips one day in the habit's 7-day grid.
func (h *HabitHandler) ToggleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUser(w, ctx, h.gw)
	if !ok {
		return
	}

	habitID, err := uuid.Parse(mux.Vars(r)["habitID"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid habit id")
		return
	}

	var req habit.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.habitService.Toggle(ctx, userID, habitID, req.DayIndex)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFutureDate):
			respondWithError(w, http.StatusBadRequest, "You can't mark a future day")
		case errors.Is(err, services.ErrDayOutOfRange):
			respondWithError(w, http.StatusBadRequest, "Day index out of range")
		case services.IsNotFound(err):
			respondWithError(w, http.StatusNotFound, "Habit not found")
		case errors.Is(err, services.ErrPersistenceWrite):
			respondWithError(w, http.StatusInternalServerError, "Check-in was not saved. Please try again.")
		default:
			log.Printf("ToggleCheckIn Handler: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to toggle check-in")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
