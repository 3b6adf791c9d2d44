package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rachaAPI/internal/dateutil"
	"rachaAPI/internal/gateway"
	"rachaAPI/internal/habit"
)

const defaultHabitIcon = "🎯"

type HabitService struct {
	gw gateway.Gateway
}

func NewHabitService(gw gateway.Gateway) *HabitService {
	return &HabitService{gw: gw}
}

// ListHabits returns every habit the user owns together with its rolling
// 7-day check-in window.
func (s *HabitService) ListHabits(ctx context.Context, userID uuid.UUID) ([]*habit.WithWindow, error) {
	habits, err := s.gw.ListHabits(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := []*habit.WithWindow{}
	for _, h := range habits {
		hw, err := s.loadWindow(ctx, h)
		if err != nil {
			return nil, err
		}
		result = append(result, hw)
	}
	return result, nil
}

func (s *HabitService) CreateHabit(ctx context.Context, userID uuid.UUID, req *habit.CreateHabitRequest) (*habit.WithWindow, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("habit name is required")
	}
	icon := req.Icon
	if icon == "" {
		icon = defaultHabitIcon
	}

	h, err := s.gw.InsertHabit(ctx, userID, name, icon)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	return s.loadWindow(ctx, h)
}

// Toggle flips the check-in for one day of the habit's window. DayIndex 0 is
// the oldest day, WindowDays-1 is today.
func (s *HabitService) Toggle(ctx context.Context, userID, habitID uuid.UUID, dayIndex int) (*habit.ToggleResponse, error) {
	if dayIndex < 0 || dayIndex >= habit.WindowDays {
		return nil, fmt.Errorf("%w: %d", ErrDayOutOfRange, dayIndex)
	}
	days := dateutil.LastNDays(habit.WindowDays, dateutil.Today())
	return s.ToggleDate(ctx, userID, habitID, days[dayIndex])
}

// ToggleDate flips the check-in for an arbitrary date. Future dates are
// rejected before any read or write happens.
func (s *HabitService) ToggleDate(ctx context.Context, userID, habitID uuid.UUID, date time.Time) (*habit.ToggleResponse, error) {
	today := dateutil.Today()
	target := dateutil.Day(date)
	if target.After(today) {
		return nil, ErrFutureDate
	}

	h, err := s.gw.GetHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if h.UserID != userID {
		return nil, gateway.ErrNotFound
	}

	existing, err := s.gw.ListCheckIns(ctx, habitID, target, target)
	if err != nil {
		return nil, err
	}

	celebrate := false
	if len(existing) > 0 {
		if err := s.gw.DeleteCheckIn(ctx, habitID, target); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
		}
	} else {
		if err := s.gw.InsertCheckIn(ctx, habitID, userID, target); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
		}
		celebrate = target.Equal(today)
	}

	// Re-read the window from storage instead of patching the slice so the
	// response reflects any concurrent changes.
	hw, err := s.loadWindow(ctx, h)
	if err != nil {
		return nil, err
	}
	return &habit.ToggleResponse{Habit: hw, Celebrate: celebrate}, nil
}

func (s *HabitService) loadWindow(ctx context.Context, h *habit.Habit) (*habit.WithWindow, error) {
	days := dateutil.LastNDays(habit.WindowDays, dateutil.Today())

	checked, err := s.gw.ListCheckIns(ctx, h.ID, days[0], days[len(days)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to load check-in window: %w", err)
	}

	checkedSet := make(map[string]bool, len(checked))
	for _, d := range checked {
		checkedSet[dateutil.Day(d).Format(dateutil.Layout)] = true
	}

	hw := &habit.WithWindow{Habit: *h}
	for _, d := range days {
		key := d.Format(dateutil.Layout)
		hw.Days = append(hw.Days, key)
		hw.CheckIns = append(hw.CheckIns, checkedSet[key])
	}
	hw.TrailingStreak = habit.TrailingStreak(hw.CheckIns)
	return hw, nil
}

// IsNotFound lets handlers distinguish a missing row from other lookup
// failures without importing the gateway package.
func IsNotFound(err error) bool {
	return errors.Is(err, gateway.ErrNotFound)
}
