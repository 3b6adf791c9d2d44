// Package gateway is the persistence boundary of the API. Services talk to the
// Gateway interface only; the pgx implementation lives in postgres.go and an
// in-memory one for tests in memory.go.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rachaAPI/internal/habit"
	"rachaAPI/internal/profile"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ProfileUpdate carries the streak fields written by a check-in or a reset.
// Nil pointers leave the column untouched.
type ProfileUpdate struct {
	CurrentStreak    *int
	LongestStreak    *int
	LastActivityDate *time.Time
}

type Gateway interface {
	// Users and profiles. Profiles are provisioned by the auth webhook, so a
	// freshly signed-up user may briefly have no profile row.
	CreateUser(ctx context.Context, clerkID, email, username string) (uuid.UUID, error)
	GetUserID(ctx context.Context, clerkID string) (uuid.UUID, error)
	DeleteUser(ctx context.Context, clerkID string) error
	CreateProfile(ctx context.Context, userID uuid.UUID) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, fields ProfileUpdate) error

	// Habits and their check-in rows. (habit_id, date) is unique.
	ListHabits(ctx context.Context, userID uuid.UUID) ([]*habit.Habit, error)
	InsertHabit(ctx context.Context, userID uuid.UUID, name, icon string) (*habit.Habit, error)
	GetHabit(ctx context.Context, habitID uuid.UUID) (*habit.Habit, error)
	ListCheckIns(ctx context.Context, habitID uuid.UUID, from, to time.Time) ([]time.Time, error)
	InsertCheckIn(ctx context.Context, habitID, userID uuid.UUID, date time.Time) error
	DeleteCheckIn(ctx context.Context, habitID uuid.UUID, date time.Time) error
	CountCheckIns(ctx context.Context, userID uuid.UUID) (int, error)

	// ComputeHabitStreak runs server-side: consecutive days with a check-in,
	// ending today or yesterday.
	ComputeHabitStreak(ctx context.Context, habitID uuid.UUID) (int, error)

	// Best-effort activity log.
	InsertExerciseLog(ctx context.Context, userID uuid.UUID, date time.Time, typ, note string) error

	// Push notification device tokens.
	RegisterDeviceToken(ctx context.Context, userID uuid.UUID, token, platform string) error
	ListDeviceTokens(ctx context.Context, userID uuid.UUID) ([]string, error)
}
