package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the single daily-activity streak for a user. LastActivityDate
// is nil until the first check-in. Invariant: LongestStreak >= CurrentStreak.
type Profile struct {
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	CurrentStreak    int        `json:"current_streak" db:"current_streak"`
	LongestStreak    int        `json:"longest_streak" db:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date" db:"last_activity_date"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// CheckInResult is returned from the daily check-in operation.
type CheckInResult struct {
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
	AlreadyDone   bool `json:"already_done"`
}

// StreakView is the payload for the streak screen after load reconciliation.
type StreakView struct {
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	CompletedToday bool   `json:"completed_today"`
	LastActivity   string `json:"last_activity_date,omitempty"`
}
