package activity

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseLog is an append-only record of a successful daily check-in.
// Writes are best-effort: a failed insert never rolls back the streak update.
type ExerciseLog struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Date     time.Time `json:"date" db:"date"`
	Type     string    `json:"type" db:"type"`
	Note     string    `json:"note" db:"note"`
	LoggedAt time.Time `json:"logged_at" db:"logged_at"`
}
