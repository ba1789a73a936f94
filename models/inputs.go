package models

// HabitInput is the create/update request body for habits.
type HabitInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Frequency   string  `json:"frequency"`
	TargetValue float64 `json:"targetValue"`
	Unit        string  `json:"unit,omitempty"`
	Color       string  `json:"color,omitempty"`
	Icon        string  `json:"icon,omitempty"`
}

// CompletionInput is the request body for recording a habit completion.
type CompletionInput struct {
	Value float64 `json:"value,omitempty"`
	Notes string  `json:"notes,omitempty"`
}

// MoodInput is the create/update request body for mood entries.
type MoodInput struct {
	Mood       string   `json:"mood"`
	Energy     float64  `json:"energy"`
	Stress     float64  `json:"stress"`
	Sleep      *Sleep   `json:"sleep,omitempty"`
	Activities []string `json:"activities,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// GoalInput is the create/update request body for goals.
type GoalInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	TargetValue float64 `json:"targetValue"`
	Unit        string  `json:"unit,omitempty"`
	Deadline    string  `json:"deadline,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	IsPublic    bool    `json:"isPublic,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// ProgressInput is the request body for recording goal progress.
type ProgressInput struct {
	Value float64 `json:"value"`
	Notes string  `json:"notes,omitempty"`
}
