package analysis

import "time"

// LogEntryID identifier type
type LogEntryID string

// LogEntry is one durable prompt/response pair in the responses table.
// Entries are insert-only; nothing in this program mutates or deletes them.
type LogEntry struct {
	ID         LogEntryID `json:"id"`
	SessionID  string     `json:"session_id,omitempty"`
	Prompt     string     `json:"user_prompt"`
	Response   string     `json:"response"`
	Model      string     `json:"model,omitempty"`
	DurationMS int64      `json:"duration_ms"`
	CreatedAt  time.Time  `json:"created_at"`
}
