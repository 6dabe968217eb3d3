package assistant

import (
	"time"

	"fineo-backend/pkg/nav"
)

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// QuickActionRequest carries either a suggestion keyword fed through the
// normal turn pipeline, or a destination path (leading slash) navigated to
// directly as a clicked suggestion chip.
type QuickActionRequest struct {
	Keyword string `json:"keyword" validate:"required,max=200"`
}

type ReportPathRequest struct {
	Path string `json:"path" validate:"required,startswith=/,max=200"`
}

type SendMessageResponse struct {
	Accepted bool `json:"accepted"`
	Busy     bool `json:"busy"`
}

type StateResponse struct {
	Busy        bool     `json:"busy"`
	CurrentPath string   `json:"current_path"`
	History     []string `json:"history"`
}

type IntentTestRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

type IntentTestResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Target     string  `json:"target,omitempty"`
	Year       int     `json:"year,omitempty"`
}

type PageRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Path        string   `json:"path" validate:"required,startswith=/,max=200"`
	Description string   `json:"description" validate:"max=300"`
	Category    string   `json:"category" validate:"required,max=50"`
	Keywords    []string `json:"keywords"`
	Aliases     []string `json:"aliases"`
	IsActive    *bool    `json:"is_active"`
}

type PageResponse struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
	Aliases     []string `json:"aliases"`
	IsActive    bool     `json:"is_active"`
}

type CommandHistoryItem struct {
	ID         string    `json:"id"`
	Input      string    `json:"input"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Target     string    `json:"target,omitempty"`
	Year       int       `json:"year,omitempty"`
	Response   string    `json:"response"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommandHistoryResponse struct {
	Commands []CommandHistoryItem `json:"commands"`
	Total    int                  `json:"total"`
}

// Event is pushed to the user's websocket stream as the conversation
// advances. Exactly one payload field is set depending on Type.
type Event struct {
	Type        string       `json:"type"`
	Message     *nav.Message `json:"message,omitempty"`
	Path        string       `json:"path,omitempty"`
	Suggestions []nav.Option `json:"suggestions,omitempty"`
}

const (
	EventMessage     = "message"
	EventNavigate    = "navigate"
	EventSuggestions = "suggestions"
)

// ClientFrame is what a websocket client may send: a location report or a
// message submission.
type ClientFrame struct {
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
	Text string `json:"text,omitempty"`
}

const (
	FramePath    = "path"
	FrameMessage = "message"
)
