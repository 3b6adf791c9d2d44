package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rachaAPI/internal/achievement"
	"rachaAPI/internal/gateway"
)

type AchievementService struct {
	gw gateway.Gateway
}

func NewAchievementService(gw gateway.Gateway) *AchievementService {
	return &AchievementService{gw: gw}
}

// GetAchievements evaluates the full badge catalog against fresh aggregates.
// Nothing is cached or persisted: unlock state is recomputed on every call.
func (s *AchievementService) GetAchievements(ctx context.Context, userID uuid.UUID) ([]achievement.WithStatus, achievement.Stats, error) {
	stats, err := s.collectStats(ctx, userID)
	if err != nil {
		return nil, achievement.Stats{}, err
	}

	unlocked := achievement.Evaluate(stats)
	result := make([]achievement.WithStatus, 0, len(achievement.Catalog))
	for _, def := range achievement.Catalog {
		result = append(result, achievement.WithStatus{
			Definition: def,
			Unlocked:   unlocked[def.Badge],
		})
	}
	return result, stats, nil
}

// collectStats pulls the aggregates the evaluator needs. The per-habit streak
// is computed server-side; the maximum across all owned habits feeds the
// streak-based badges. A user with no habits scores 0.
func (s *AchievementService) collectStats(ctx context.Context, userID uuid.UUID) (achievement.Stats, error) {
	total, err := s.gw.CountCheckIns(ctx, userID)
	if err != nil {
		return achievement.Stats{}, fmt.Errorf("failed to count check-ins: %w", err)
	}

	habits, err := s.gw.ListHabits(ctx, userID)
	if err != nil {
		return achievement.Stats{}, fmt.Errorf("failed to list habits: %w", err)
	}

	maxStreak := 0
	for _, h := range habits {
		streak, err := s.gw.ComputeHabitStreak(ctx, h.ID)
		if err != nil {
			return achievement.Stats{}, fmt.Errorf("failed to compute streak for habit %s: %w", h.ID, err)
		}
		if streak > maxStreak {
			maxStreak = streak
		}
	}

	return achievement.Stats{
		TotalCheckIns:  total,
		MaxHabitStreak: maxStreak,
		HasAnyCheckIn:  total > 0,
	}, nil
}
