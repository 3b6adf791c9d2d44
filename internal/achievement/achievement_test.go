package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateNoActivity(t *testing.T) {
	unlocked := Evaluate(Stats{})

	assert.False(t, unlocked[BadgeFirstFire])
	assert.False(t, unlocked[BadgeIronWeek])
	assert.False(t, unlocked[BadgeUnstoppable])
	assert.False(t, unlocked[BadgeGoalMet])
}

func TestEvaluateFirstFire(t *testing.T) {
	unlocked := Evaluate(Stats{TotalCheckIns: 1, HasAnyCheckIn: true})
	assert.True(t, unlocked[BadgeFirstFire])
	assert.False(t, unlocked[BadgeIronWeek])
}

func TestEvaluateIronWeekBoundary(t *testing.T) {
	// 6 consecutive days stay locked, 7 unlocks.
	unlocked := Evaluate(Stats{TotalCheckIns: 6, MaxHabitStreak: 6, HasAnyCheckIn: true})
	assert.False(t, unlocked[BadgeIronWeek])

	unlocked = Evaluate(Stats{TotalCheckIns: 7, MaxHabitStreak: 7, HasAnyCheckIn: true})
	assert.True(t, unlocked[BadgeIronWeek])
}

func TestEvaluateTotalsBoundaries(t *testing.T) {
	unlocked := Evaluate(Stats{TotalCheckIns: 29, HasAnyCheckIn: true})
	assert.False(t, unlocked[BadgeUnstoppable])

	unlocked = Evaluate(Stats{TotalCheckIns: 30, HasAnyCheckIn: true})
	assert.True(t, unlocked[BadgeUnstoppable])
	assert.False(t, unlocked[BadgeGoalMet])

	unlocked = Evaluate(Stats{TotalCheckIns: 100, HasAnyCheckIn: true})
	assert.True(t, unlocked[BadgeGoalMet])
}

func TestEvaluateIsIdempotent(t *testing.T) {
	stats := Stats{TotalCheckIns: 42, MaxHabitStreak: 9, HasAnyCheckIn: true}
	assert.Equal(t, Evaluate(stats), Evaluate(stats))
}

func TestCatalogCoversEveryBadge(t *testing.T) {
	seen := map[Badge]bool{}
	for _, def := range Catalog {
		seen[def.Badge] = true
	}
	for _, badge := range []Badge{BadgeFirstFire, BadgeIronWeek, BadgeUnstoppable, BadgeGoalMet} {
		assert.True(t, seen[badge], "catalog missing %s", badge)
	}
}
