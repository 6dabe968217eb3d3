package entity

import "time"

// NavigationPage is one row of the navigation catalog the assistant
// resolves destinations against. Keywords and aliases are stored as text
// arrays.
type NavigationPage struct {
	Name        string
	Path        string
	Description string
	Category    string
	Keywords    []string
	Aliases     []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AssistantCommand is one resolved conversation turn, persisted for the
// history and analytics endpoints.
type AssistantCommand struct {
	ID         string
	UserID     string
	Input      string
	Intent     string
	Confidence float64
	Target     string
	Year       int
	Response   string
	CreatedAt  time.Time
}
