package model

import "time"

// Session statuses
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// maxHistoryTurns bounds the persisted transcript; older turns fall off.
const maxHistoryTurns = 100

// ChatTurn is one message of a session's conversation transcript.
type ChatTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one document-filling conversation. The document and placeholder
// index are fixed at upload time; FilledValues, CurrentIndex and History
// mutate as the conversation advances. Concurrent mutation of one session is
// serialized by the store's single-writer contract.
type Session struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Filename       string     `json:"filename"`
	TemplateObject string     `json:"template_object"`
	DocumentType   string     `json:"document_type"`
	Document       Document   `json:"document"`
	Placeholders   Index      `json:"placeholders"`
	FilledValues   Values     `json:"filled_values"`
	CurrentIndex   int        `json:"current_index"` // -1 when every field is filled
	Status         string     `json:"status"`
	History        []ChatTurn `json:"history,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
}

// AppendTurn records one conversation message, trimming the transcript to
// its bound.
func (s *Session) AppendTurn(role, content string) {
	s.History = append(s.History, ChatTurn{Role: role, Content: content, Timestamp: time.Now()})
	if len(s.History) > maxHistoryTurns {
		s.History = s.History[len(s.History)-maxHistoryTurns:]
	}
}

// Progress summarizes fill state for API responses.
type Progress struct {
	Filled     int     `json:"filled"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	NextIndex  int     `json:"next_index"` // -1 when done
}

// SessionSummary is the list-view projection of a session.
type SessionSummary struct {
	ID             string    `json:"session_id"`
	Filename       string    `json:"filename"`
	Status         string    `json:"status"`
	Progress       float64   `json:"progress"`
	Total          int       `json:"placeholders_count"`
	Filled         int       `json:"filled_count"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}

// Summary builds the list-view projection.
func (s *Session) Summary() SessionSummary {
	total := len(s.Placeholders)
	filled := 0
	for i := range s.Placeholders {
		if s.FilledValues.Has(&s.Placeholders[i]) {
			filled++
		}
	}
	pct := 0.0
	if total > 0 {
		pct = float64(filled) / float64(total) * 100
	}
	return SessionSummary{
		ID:             s.ID,
		Filename:       s.Filename,
		Status:         s.Status,
		Progress:       pct,
		Total:          total,
		Filled:         filled,
		CreatedAt:      s.CreatedAt,
		LastAccessedAt: s.LastAccessedAt,
	}
}
