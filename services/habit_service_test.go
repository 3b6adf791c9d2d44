package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rachaAPI/internal/dateutil"
	"rachaAPI/internal/gateway"
	"rachaAPI/internal/habit"
)

func newHabitFixture(t *testing.T) (*HabitService, *gateway.Memory, uuid.UUID) {
	t.Helper()
	mem := gateway.NewMemory()
	userID, err := mem.CreateUser(context.Background(), "user_habits", "test@example.com", "tester")
	require.NoError(t, err)
	return NewHabitService(mem), mem, userID
}

func TestCreateHabitRequiresName(t *testing.T) {
	svc, _, userID := newHabitFixture(t)

	_, err := svc.CreateHabit(context.Background(), userID, &habit.CreateHabitRequest{Name: "   "})
	assert.Error(t, err)
}

func TestCreateHabitDefaultsIcon(t *testing.T) {
	svc, _, userID := newHabitFixture(t)

	created, err := svc.CreateHabit(context.Background(), userID, &habit.CreateHabitRequest{Name: "Read 30 minutes"})
	require.NoError(t, err)
	assert.Equal(t, "Read 30 minutes", created.Name)
	assert.Equal(t, "🎯", created.Icon)
	assert.Len(t, created.CheckIns, habit.WindowDays)
	assert.Equal(t, 0, created.TrailingStreak)
}

func TestToggleMarksAndUnmarks(t *testing.T) {
	svc, _, userID := newHabitFixture(t)
	created, err := svc.CreateHabit(context.Background(), userID, &habit.CreateHabitRequest{Name: "Stretch", Icon: "🧘"})
	require.NoError(t, err)

	today := habit.WindowDays - 1
	result, err := svc.Toggle(context.Background(), userID, created.ID, today)
	require.NoError(t, err)
	assert.True(t, result.Celebrate)
	assert.True(t, result.Habit.CheckIns[today])
	assert.Equal(t, 1, result.Habit.TrailingStreak)

	// Toggling again returns the day to unchecked.
	result, err = svc.Toggle(context.Background(), userID, created.ID, today)
	require.NoError(t, err)
	assert.False(t, result.Celebrate)
	assert.False(t, result.Habit.CheckIns[today])
	assert.Equal(t, 0, result.Habit.TrailingStreak)
}

func TestTogglePastDayDoesNotCelebrate(t *testing.T) {
	svc, _, userID := newHabitFixture(t)
	created, err := svc.CreateHabit(context.Background(), userID, &habit.CreateHabitRequest{Name: "Run"})
	require.NoError(t, err)

	result, err := svc.Toggle(context.Background(), userID, created.ID, 3)
	require.NoError(t, err)
	assert.False(t, result.Celebrate)
	assert.True(t, result.Habit.CheckIns[3])
}

func TestToggleRejectsFutureDate(t *testing.T) {
	svc, mem, userID := newHabitFixture(t)
	created, err := svc.CreateHabit(context.Background(), userID, &habit.CreateHabitRequest{Name: "Run"})
	require.NoError(t, err)

	tomorrow := dateutil.Today().AddDate(0, 0, 1)
	_, err = svc.ToggleDate(context.Background(), userID, created.ID, tomorrow)
	assert.ErrorIs(t, err, ErrFutureDate)

	// The rejection happens before any write.
	count, err := mem.CountCheckIns(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestToggleRejectsOutOfRangeIndex(t *testing.T) {
	svc, _, userID := newHabitFixture(t)
	created, err := svc.CreateHabit(context.Background(), userID, &habit.CreateHabitRequest{Name: "Run"})
	require.NoError(t, err)

	_, err = svc.Toggle(context.Background(), userID, created.ID, habit.WindowDays)
	assert.ErrorIs(t, err, ErrDayOutOfRange)
	_, err = svc.Toggle(context.Background(), userID, created.ID, -1)
	assert.ErrorIs(t, err, ErrDayOutOfRange)
}

func TestToggleForeignHabitIsNotFound(t *testing.T) {
	svc, mem, userID := newHabitFixture(t)
	otherID, err := mem.CreateUser(context.Background(), "user_other", "", "")
	require.NoError(t, err)
	foreign, err := svc.CreateHabit(context.Background(), otherID, &habit.CreateHabitRequest{Name: "Theirs"})
	require.NoError(t, err)

	_, err = svc.Toggle(context.Background(), userID, foreign.ID, 0)
	assert.True(t, IsNotFound(err))
}

func TestWindowRecomputedFromStorage(t *testing.T) {
	svc, mem, userID := newHabitFixture(t)
	created, err := svc.CreateHabit(context.Background(), userID, &habit.CreateHabitRequest{Name: "Hydrate"})
	require.NoError(t, err)

	// A check-in written behind the service's back must show up after the
	// next toggle, because the window is re-read rather than patched.
	yesterday := dateutil.Today().AddDate(0, 0, -1)
	require.NoError(t, mem.InsertCheckIn(context.Background(), created.ID, userID, yesterday))

	result, err := svc.Toggle(context.Background(), userID, created.ID, habit.WindowDays-1)
	require.NoError(t, err)
	assert.True(t, result.Habit.CheckIns[habit.WindowDays-2])
	assert.True(t, result.Habit.CheckIns[habit.WindowDays-1])
	assert.Equal(t, 2, result.Habit.TrailingStreak)
}

func TestListHabitsIncludesWindows(t *testing.T) {
	svc, _, userID := newHabitFixture(t)
	_, err := svc.CreateHabit(context.Background(), userID, &habit.CreateHabitRequest{Name: "A"})
	require.NoError(t, err)
	_, err = svc.CreateHabit(context.Background(), userID, &habit.CreateHabitRequest{Name: "B"})
	require.NoError(t, err)

	habits, err := svc.ListHabits(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, habits, 2)
	for _, h := range habits {
		assert.Len(t, h.CheckIns, habit.WindowDays)
		assert.Len(t, h.Days, habit.WindowDays)
		assert.Equal(t, dateutil.Today().Format(dateutil.Layout), h.Days[habit.WindowDays-1])
	}
}
