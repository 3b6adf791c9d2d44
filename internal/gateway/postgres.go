package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rachaAPI/internal/habit"
	"rachaAPI/internal/profile"
)

// Postgres implements Gateway over a pgx connection pool.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (g *Postgres) CreateUser(ctx context.Context, clerkID, email, username string) (uuid.UUID, error) {
	id := uuid.New()
	query := `
	INSERT INTO users (id, clerk_id, email, username, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW())
	ON CONFLICT (clerk_id) DO UPDATE SET email = $3, updated_at = NOW()
	RETURNING id
	`
	err := g.db.QueryRow(ctx, query, id, clerkID, email, username).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (g *Postgres) GetUserID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	var id uuid.UUID
	err := g.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get user: %w", err)
	}
	return id, nil
}

func (g *Postgres) DeleteUser(ctx context.Context, clerkID string) error {
	result, err := g.db.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Postgres) CreateProfile(ctx context.Context, userID uuid.UUID) error {
	query := `
	INSERT INTO profiles (user_id, current_streak, longest_streak, updated_at)
	VALUES ($1, 0, 0, NOW())
	ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := g.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (g *Postgres) GetProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `
	SELECT user_id, current_streak, longest_streak, last_activity_date, updated_at
	FROM profiles
	WHERE user_id = $1
	`
	p := &profile.Profile{}
	err := g.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.CurrentStreak,
		&p.LongestStreak,
		&p.LastActivityDate,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (g *Postgres) UpdateProfile(ctx context.Context, userID uuid.UUID, fields ProfileUpdate) error {
	query := `
	UPDATE profiles
	SET
		current_streak = COALESCE($2, current_streak),
		longest_streak = COALESCE($3, longest_streak),
		last_activity_date = COALESCE($4, last_activity_date),
		updated_at = NOW()
	WHERE user_id = $1
	`
	result, err := g.db.Exec(ctx, query, userID, fields.CurrentStreak, fields.LongestStreak, fields.LastActivityDate)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Postgres) ListHabits(ctx context.Context, userID uuid.UUID) ([]*habit.Habit, error) {
	query := `
	SELECT id, user_id, name, icon, created_at
	FROM habits
	WHERE user_id = $1
	ORDER BY created_at ASC
	`
	rows, err := g.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	habits := []*habit.Habit{}
	for rows.Next() {
		h := &habit.Habit{}
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Icon, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habits: %w", err)
	}
	return habits, nil
}

func (g *Postgres) InsertHabit(ctx context.Context, userID uuid.UUID, name, icon string) (*habit.Habit, error) {
	h := &habit.Habit{ID: uuid.New(), UserID: userID, Name: name, Icon: icon}
	query := `
	INSERT INTO habits (id, user_id, name, icon, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	RETURNING created_at
	`
	err := g.db.QueryRow(ctx, query, h.ID, h.UserID, h.Name, h.Icon).Scan(&h.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert habit: %w", err)
	}
	return h, nil
}

func (g *Postgres) GetHabit(ctx context.Context, habitID uuid.UUID) (*habit.Habit, error) {
	h := &habit.Habit{}
	query := `SELECT id, user_id, name, icon, created_at FROM habits WHERE id = $1`
	err := g.db.QueryRow(ctx, query, habitID).Scan(&h.ID, &h.UserID, &h.Name, &h.Icon, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	return h, nil
}

func (g *Postgres) ListCheckIns(ctx context.Context, habitID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	query := `
	SELECT check_in_date
	FROM habit_check_ins
	WHERE habit_id = $1
		AND check_in_date >= $2
		AND check_in_date <= $3
	ORDER BY check_in_date
	`
	rows, err := g.db.Query(ctx, query, habitID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check-ins: %w", err)
	}
	return dates, nil
}

func (g *Postgres) InsertCheckIn(ctx context.Context, habitID, userID uuid.UUID, date time.Time) error {
	// The unique (habit_id, check_in_date) index makes a duplicate toggle a
	// no-op instead of a double row.
	query := `
	INSERT INTO habit_check_ins (habit_id, user_id, check_in_date)
	VALUES ($1, $2, $3)
	ON CONFLICT (habit_id, check_in_date) DO NOTHING
	`
	if _, err := g.db.Exec(ctx, query, habitID, userID, date); err != nil {
		return fmt.Errorf("failed to insert check-in: %w", err)
	}
	return nil
}

func (g *Postgres) DeleteCheckIn(ctx context.Context, habitID uuid.UUID, date time.Time) error {
	query := `DELETE FROM habit_check_ins WHERE habit_id = $1 AND check_in_date = $2`
	if _, err := g.db.Exec(ctx, query, habitID, date); err != nil {
		return fmt.Errorf("failed to delete check-in: %w", err)
	}
	return nil
}

func (g *Postgres) CountCheckIns(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM habit_check_ins WHERE user_id = $1`
	if err := g.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count check-ins: %w", err)
	}
	return count, nil
}

func (g *Postgres) ComputeHabitStreak(ctx context.Context, habitID uuid.UUID) (int, error) {
	query := `
	WITH RECURSIVE streak_calc AS (
		-- Anchor on the most recent check-in, but only if it is today or
		-- yesterday; anything older means the streak is already broken.
		SELECT
			habit_id,
			check_in_date,
			1 as streak_length
		FROM habit_check_ins
		WHERE habit_id = $1
			AND check_in_date = (
				SELECT MAX(check_in_date)
				FROM habit_check_ins
				WHERE habit_id = $1
					AND check_in_date <= CURRENT_DATE
			)
			AND check_in_date >= CURRENT_DATE - INTERVAL '1 day'

		UNION ALL

		SELECT
			hc.habit_id,
			hc.check_in_date,
			sc.streak_length + 1
		FROM habit_check_ins hc
		INNER JOIN streak_calc sc ON hc.habit_id = sc.habit_id
			AND hc.check_in_date = sc.check_in_date - INTERVAL '1 day'
	)
	SELECT COALESCE(MAX(streak_length), 0) FROM streak_calc
	`
	var streak int
	if err := g.db.QueryRow(ctx, query, habitID).Scan(&streak); err != nil {
		return 0, fmt.Errorf("failed to compute habit streak: %w", err)
	}
	return streak, nil
}

func (g *Postgres) InsertExerciseLog(ctx context.Context, userID uuid.UUID, date time.Time, typ, note string) error {
	query := `
	INSERT INTO exercise_logs (id, user_id, date, type, note, logged_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	`
	if _, err := g.db.Exec(ctx, query, uuid.New(), userID, date, typ, note); err != nil {
		return fmt.Errorf("failed to insert exercise log: %w", err)
	}
	return nil
}

func (g *Postgres) RegisterDeviceToken(ctx context.Context, userID uuid.UUID, token, platform string) error {
	query := `
	INSERT INTO device_tokens (user_id, token, platform, registered_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (token) DO UPDATE SET user_id = $1, platform = $3, registered_at = NOW()
	`
	if _, err := g.db.Exec(ctx, query, userID, token, platform); err != nil {
		return fmt.Errorf("failed to register device token: %w", err)
	}
	return nil
}

func (g *Postgres) ListDeviceTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := g.db.Query(ctx, `SELECT token FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device tokens: %w", err)
	}
	return tokens, nil
}
