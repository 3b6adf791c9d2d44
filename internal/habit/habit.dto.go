package habit

type CreateHabitRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type ToggleRequest struct {
	DayIndex int `json:"day_index"`
}

type ToggleResponse struct {
	Habit     *WithWindow `json:"habit"`
	Celebrate bool        `json:"celebrate"`
}
