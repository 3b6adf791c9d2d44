package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rachaAPI/handlers"
	"rachaAPI/internal/achievement"
	"rachaAPI/internal/chat"
	"rachaAPI/internal/gateway"
	"rachaAPI/internal/habit"
	"rachaAPI/internal/profile"
	"rachaAPI/middleware"
	"rachaAPI/services"
	"rachaAPI/tests/helpers"
)

// testApp wires the full handler stack over the in-memory gateway, mounted on
// the same routes main registers.
type testApp struct {
	router *mux.Router
	gw     *gateway.Memory
}

func newTestApp() *testApp {
	gw := gateway.NewMemory()

	notificationService := services.NewNotificationService(gw)
	streakService := services.NewStreakService(gw, notificationService)
	habitService := services.NewHabitService(gw)
	achievementService := services.NewAchievementService(gw)
	coachService := services.NewCoachServiceWithConfig(services.CoachConfig{
		FallbackDelay: time.Millisecond, // offline coach, no provider key
	})

	streakHandler := handlers.NewStreakHandler(streakService, gw)
	habitHandler := handlers.NewHabitHandler(habitService, gw)
	achievementHandler := handlers.NewAchievementHandler(achievementService, gw)
	coachHandler := handlers.NewCoachHandler(coachService, gw)
	webhookHandler := handlers.NewWebhookHandler(gw)

	router := mux.NewRouter()
	router.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/streak", streakHandler.GetStreak).Methods("GET")
	api.HandleFunc("/streak/check-in", streakHandler.CheckIn).Methods("POST")
	api.HandleFunc("/habits", habitHandler.GetHabits).Methods("GET")
	api.HandleFunc("/habits", habitHandler.CreateHabit).Methods("POST")
	api.HandleFunc("/habits/{habitID}/toggle", habitHandler.ToggleCheckIn).Methods("POST")
	api.HandleFunc("/achievements", achievementHandler.GetAchievements).Methods("GET")
	api.HandleFunc("/coach/chat", coachHandler.Chat).Methods("POST")

	return &testApp{router: router, gw: gw}
}

func (a *testApp) do(t *testing.T, clerkID, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if clerkID != "" {
		ctx := context.WithValue(req.Context(), middleware.ClerkIDKey, clerkID)
		req = req.WithContext(ctx)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// TestFullStreakFlow walks the lifecycle: sign-up webhook, first load, first
// check-in, a habit with a toggled day, achievements, a coach chat, deletion.
func TestFullStreakFlow(t *testing.T) {
	app := newTestApp()

	os.Setenv("CLERK_WEBHOOK_SECRET", "")
	defer os.Unsetenv("CLERK_WEBHOOK_SECRET")

	clerkID := "user_test_" + time.Now().Format("20060102150405")

	// Step 1: Clerk reports the sign-up, which provisions user and profile.
	t.Log("Step 1: sign-up webhook")
	payload := helpers.MockClerkWebhookPayload("user.created", clerkID)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// Step 2: first app load sees a zeroed streak.
	t.Log("Step 2: first load")
	rr = app.do(t, clerkID, http.MethodGet, "/api/v1/streak", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var view profile.StreakView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, 0, view.CurrentStreak)
	assert.False(t, view.CompletedToday)

	// Step 3: first check-in starts the streak; a repeat is a no-op.
	t.Log("Step 3: check-in twice")
	rr = app.do(t, clerkID, http.MethodPost, "/api/v1/streak/check-in", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var result profile.CheckInResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, 1, result.CurrentStreak)
	assert.Equal(t, 1, result.LongestStreak)
	assert.False(t, result.AlreadyDone)

	rr = app.do(t, clerkID, http.MethodPost, "/api/v1/streak/check-in", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.AlreadyDone)
	assert.Equal(t, 1, result.CurrentStreak)

	// Step 4: the streak screen now shows today as done.
	rr = app.do(t, clerkID, http.MethodGet, "/api/v1/streak", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, 1, view.CurrentStreak)
	assert.True(t, view.CompletedToday)

	// Step 5: create a habit and mark today in its grid.
	t.Log("Step 5: habit with one check-in")
	rr = app.do(t, clerkID, http.MethodPost, "/api/v1/habits", `{"name": "Stretch", "icon": "🧘"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created habit.WithWindow
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = app.do(t, clerkID, http.MethodPost, "/api/v1/habits/"+created.ID.String()+"/toggle",
		`{"day_index": 6}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var toggled habit.ToggleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &toggled))
	assert.True(t, toggled.Celebrate)
	assert.Equal(t, 1, toggled.Habit.TrailingStreak)

	// Step 6: the first habit check-in unlocks first-fire.
	t.Log("Step 6: achievements")
	rr = app.do(t, clerkID, http.MethodGet, "/api/v1/achievements", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var achResp struct {
		Achievements []achievement.WithStatus `json:"achievements"`
		Stats        achievement.Stats        `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &achResp))
	assert.Equal(t, 1, achResp.Stats.TotalCheckIns)

	unlocked := map[achievement.Badge]bool{}
	for _, a := range achResp.Achievements {
		unlocked[a.Badge] = a.Unlocked
	}
	assert.True(t, unlocked[achievement.BadgeFirstFire])
	assert.False(t, unlocked[achievement.BadgeIronWeek])

	// Step 7: the coach answers even without a provider key.
	t.Log("Step 7: coach chat")
	rr = app.do(t, clerkID, http.MethodPost, "/api/v1/coach/chat", `{"message": "how am I doing?"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var reply chat.Reply
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reply))
	assert.True(t, reply.Offline)
	assert.NotEmpty(t, reply.Content)

	// Step 8: account deletion removes the user.
	t.Log("Step 8: deletion webhook")
	payload = helpers.MockClerkWebhookPayload("user.deleted", clerkID)
	req = httptest.NewRequest(http.MethodPost, "/webhooks/clerk", bytes.NewReader(payload))
	rr = httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = app.do(t, clerkID, http.MethodGet, "/api/v1/streak", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStreakEndpointRejectsMissingAuth(t *testing.T) {
	app := newTestApp()

	rr := app.do(t, "", http.MethodGet, "/api/v1/streak", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
