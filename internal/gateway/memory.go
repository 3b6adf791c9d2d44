package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"rachaAPI/internal/activity"
	"rachaAPI/internal/dateutil"
	"rachaAPI/internal/habit"
	"rachaAPI/internal/profile"
)

// Memory is an in-memory Gateway used by the test suites. The Fail* switches
// inject write failures so error paths can be exercised without a database.
type Memory struct {
	mu sync.Mutex

	users    map[string]uuid.UUID // clerk id -> user id
	profiles map[uuid.UUID]*profile.Profile
	habits   map[uuid.UUID]*habit.Habit
	checkIns map[uuid.UUID]map[string]bool // habit id -> YYYY-MM-DD
	logs     []activity.ExerciseLog
	tokens   map[uuid.UUID][]string

	FailUpdateProfile bool
	FailCheckInWrite  bool
	FailExerciseLog   bool
}

var _ Gateway = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]uuid.UUID),
		profiles: make(map[uuid.UUID]*profile.Profile),
		habits:   make(map[uuid.UUID]*habit.Habit),
		checkIns: make(map[uuid.UUID]map[string]bool),
		tokens:   make(map[uuid.UUID][]string),
	}
}

func (m *Memory) CreateUser(_ context.Context, clerkID, _, _ string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.users[clerkID]; ok {
		return id, nil
	}
	id := uuid.New()
	m.users[clerkID] = id
	return id, nil
}

func (m *Memory) GetUserID(_ context.Context, clerkID string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.users[clerkID]
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	return id, nil
}

func (m *Memory) DeleteUser(_ context.Context, clerkID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.users[clerkID]
	if !ok {
		return ErrNotFound
	}
	delete(m.users, clerkID)
	delete(m.profiles, id)
	return nil
}

func (m *Memory) CreateProfile(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[userID]; !ok {
		m.profiles[userID] = &profile.Profile{UserID: userID, UpdatedAt: time.Now()}
	}
	return nil
}

// SeedProfile installs a profile directly, for tests.
func (m *Memory) SeedProfile(p *profile.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p
}

func (m *Memory) GetProfile(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) UpdateProfile(_ context.Context, userID uuid.UUID, fields ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUpdateProfile {
		return errFailInjected
	}
	p, ok := m.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	if fields.CurrentStreak != nil {
		p.CurrentStreak = *fields.CurrentStreak
	}
	if fields.LongestStreak != nil {
		p.LongestStreak = *fields.LongestStreak
	}
	if fields.LastActivityDate != nil {
		d := *fields.LastActivityDate
		p.LastActivityDate = &d
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (m *Memory) ListHabits(_ context.Context, userID uuid.UUID) ([]*habit.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	habits := []*habit.Habit{}
	for _, h := range m.habits {
		if h.UserID == userID {
			cp := *h
			habits = append(habits, &cp)
		}
	}
	return habits, nil
}

func (m *Memory) InsertHabit(_ context.Context, userID uuid.UUID, name, icon string) (*habit.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := &habit.Habit{ID: uuid.New(), UserID: userID, Name: name, Icon: icon, CreatedAt: time.Now()}
	m.habits[h.ID] = h
	m.checkIns[h.ID] = make(map[string]bool)
	return h, nil
}

func (m *Memory) GetHabit(_ context.Context, habitID uuid.UUID) (*habit.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[habitID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *h
	return &cp, nil
}

func (m *Memory) ListCheckIns(_ context.Context, habitID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var dates []time.Time
	for d := dateutil.Day(from); !d.After(dateutil.Day(to)); d = d.AddDate(0, 0, 1) {
		if m.checkIns[habitID][d.Format(dateutil.Layout)] {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

func (m *Memory) InsertCheckIn(_ context.Context, habitID, _ uuid.UUID, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCheckInWrite {
		return errFailInjected
	}
	if m.checkIns[habitID] == nil {
		m.checkIns[habitID] = make(map[string]bool)
	}
	m.checkIns[habitID][dateutil.Day(date).Format(dateutil.Layout)] = true
	return nil
}

func (m *Memory) DeleteCheckIn(_ context.Context, habitID uuid.UUID, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCheckInWrite {
		return errFailInjected
	}
	delete(m.checkIns[habitID], dateutil.Day(date).Format(dateutil.Layout))
	return nil
}

func (m *Memory) CountCheckIns(_ context.Context, userID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for id, h := range m.habits {
		if h.UserID == userID {
			count += len(m.checkIns[id])
		}
	}
	return count, nil
}

func (m *Memory) ComputeHabitStreak(_ context.Context, habitID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	days := m.checkIns[habitID]
	today := dateutil.Today()
	start := today
	if !days[start.Format(dateutil.Layout)] {
		start = start.AddDate(0, 0, -1) // streak may still end yesterday
	}
	streak := 0
	for d := start; days[d.Format(dateutil.Layout)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak, nil
}

func (m *Memory) InsertExerciseLog(_ context.Context, userID uuid.UUID, date time.Time, typ, note string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailExerciseLog {
		return errFailInjected
	}
	m.logs = append(m.logs, activity.ExerciseLog{
		ID: uuid.New(), UserID: userID, Date: dateutil.Day(date), Type: typ, Note: note, LoggedAt: time.Now(),
	})
	return nil
}

// ExerciseLogs returns a copy of the logged entries, for assertions.
func (m *Memory) ExerciseLogs() []activity.ExerciseLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]activity.ExerciseLog(nil), m.logs...)
}

func (m *Memory) RegisterDeviceToken(_ context.Context, userID uuid.UUID, token, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens[userID] {
		if t == token {
			return nil
		}
	}
	m.tokens[userID] = append(m.tokens[userID], token)
	return nil
}

func (m *Memory) ListDeviceTokens(_ context.Context, userID uuid.UUID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tokens[userID]...), nil
}
