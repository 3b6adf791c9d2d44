package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"rachaAPI/internal/dateutil"
	"rachaAPI/internal/gateway"
	"rachaAPI/internal/profile"
)

// streakMilestones are the day counts worth a push notification.
var streakMilestones = map[int]string{
	7:   "One full week! Your streak is on fire 🔥",
	30:  "30 days straight. You are unstoppable ⭐",
	100: "100 days. Goal met 🎯",
}

type StreakService struct {
	gw            gateway.Gateway
	notifications *NotificationService

	// How long to wait for the provisioning webhook before giving up on a
	// missing profile row.
	profileRetryWait time.Duration
}

func NewStreakService(gw gateway.Gateway, notifications *NotificationService) *StreakService {
	return &StreakService{
		gw:               gw,
		notifications:    notifications,
		profileRetryWait: 500 * time.Millisecond,
	}
}

// CheckInToday extends the daily streak by one, exactly once per calendar day.
// A second call on the same day reports AlreadyDone and mutates nothing.
func (s *StreakService) CheckInToday(ctx context.Context, userID uuid.UUID) (*profile.CheckInResult, error) {
	p, err := s.fetchProfileWithRetry(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := dateutil.Today()
	if p.LastActivityDate != nil && dateutil.SameDay(*p.LastActivityDate, today) {
		return &profile.CheckInResult{
			CurrentStreak: p.CurrentStreak,
			LongestStreak: p.LongestStreak,
			AlreadyDone:   true,
		}, nil
	}

	newStreak := p.CurrentStreak + 1
	longest := p.LongestStreak
	if newStreak > longest {
		longest = newStreak
	}

	err = s.gw.UpdateProfile(ctx, userID, gateway.ProfileUpdate{
		CurrentStreak:    &newStreak,
		LongestStreak:    &longest,
		LastActivityDate: &today,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}

	// The activity log is best-effort: a failed insert never rolls back the
	// streak update above.
	if err := s.gw.InsertExerciseLog(ctx, userID, today, "daily_check_in", ""); err != nil {
		log.Printf("StreakService: failed to write exercise log for %s: %v", userID, err)
	}

	if body, ok := streakMilestones[newStreak]; ok && s.notifications != nil {
		if err := s.notifications.SendStreakMilestone(ctx, userID, newStreak, body); err != nil {
			log.Printf("StreakService: milestone push failed for %s: %v", userID, err)
		}
	}

	return &profile.CheckInResult{
		CurrentStreak: newStreak,
		LongestStreak: longest,
		AlreadyDone:   false,
	}, nil
}

// ReconcileOnLoad applies streak decay once per session load. Missing more
// than one full calendar day breaks the streak and persists the reset; a
// single missed day is forgiven until the next check-in.
func (s *StreakService) ReconcileOnLoad(ctx context.Context, userID uuid.UUID) (*profile.StreakView, error) {
	p, err := s.fetchProfileWithRetry(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &profile.StreakView{
		CurrentStreak: p.CurrentStreak,
		LongestStreak: p.LongestStreak,
	}
	if p.LastActivityDate == nil {
		return view, nil
	}

	today := dateutil.Today()
	view.LastActivity = dateutil.Day(*p.LastActivityDate).Format(dateutil.Layout)
	view.CompletedToday = dateutil.SameDay(*p.LastActivityDate, today)

	daysSince := dateutil.DaysBetween(*p.LastActivityDate, today)
	if daysSince <= 1 {
		return view, nil
	}

	view.CurrentStreak = 0
	if p.CurrentStreak == 0 {
		// Already reconciled; repeating is a no-op.
		return view, nil
	}

	zero := 0
	if err := s.gw.UpdateProfile(ctx, userID, gateway.ProfileUpdate{CurrentStreak: &zero}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	return view, nil
}

// fetchProfileWithRetry reads the profile, waiting once for the provisioning
// webhook when the row does not exist yet.
func (s *StreakService) fetchProfileWithRetry(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := s.gw.GetProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gateway.ErrNotFound) {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	select {
	case <-time.After(s.profileRetryWait):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	p, err = s.gw.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrProfileUnavailable
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return p, nil
}
