package habit

import (
	"time"

	"github.com/google/uuid"
)

// WindowDays is the size of the rolling check-in grid shown per habit.
const WindowDays = 7

type Habit struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Icon      string    `json:"icon" db:"icon"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// WithWindow pairs a habit with its rolling window, oldest day first.
// TrailingStreak counts only the unbroken suffix of the window; it is not the
// all-time streak kept on the profile.
type WithWindow struct {
	Habit
	Days           []string `json:"days"`
	CheckIns       []bool   `json:"check_ins"`
	TrailingStreak int      `json:"trailing_streak"`
}
