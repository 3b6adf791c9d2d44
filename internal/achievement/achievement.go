package achievement

// Badge identifies one unlockable achievement.
type Badge string

const (
	BadgeFirstFire   Badge = "first-fire"
	BadgeIronWeek    Badge = "iron-week"
	BadgeUnstoppable Badge = "unstoppable"
	BadgeGoalMet     Badge = "goal-met"
)

const (
	ironWeekStreak   = 7
	unstoppableTotal = 30
	goalMetTotal     = 100
)

// Stats are the fresh aggregates achievements are evaluated from. Nothing here
// is cached; callers recompute before every evaluation.
type Stats struct {
	TotalCheckIns  int  `json:"total_check_ins"`
	MaxHabitStreak int  `json:"max_habit_streak"`
	HasAnyCheckIn  bool `json:"has_any_check_in"`
}

type Definition struct {
	Badge       Badge  `json:"badge"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type WithStatus struct {
	Definition
	Unlocked bool `json:"unlocked"`
}

// Catalog lists every badge in display order.
var Catalog = []Definition{
	{Badge: BadgeFirstFire, Name: "First Fire", Description: "Complete your first check-in", Icon: "🔥"},
	{Badge: BadgeIronWeek, Name: "Iron Week", Description: "7 days in a row on one habit", Icon: "🏅"},
	{Badge: BadgeUnstoppable, Name: "Unstoppable", Description: "30 check-ins logged", Icon: "⭐"},
	{Badge: BadgeGoalMet, Name: "Goal Met", Description: "100 check-ins logged", Icon: "🎯"},
}

// Evaluate maps aggregate stats to the set of unlocked badges. Pure and
// idempotent: calling it again with the same stats yields the same set.
func Evaluate(s Stats) map[Badge]bool {
	return map[Badge]bool{
		BadgeFirstFire:   s.HasAnyCheckIn,
		BadgeIronWeek:    s.MaxHabitStreak >= ironWeekStreak,
		BadgeUnstoppable: s.TotalCheckIns >= unstoppableTotal,
		BadgeGoalMet:     s.TotalCheckIns >= goalMetTotal,
	}
}
