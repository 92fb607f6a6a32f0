package analysis

import "context"

// Repository is the persistence port for the responses log table.
type Repository interface {
	Save(ctx context.Context, e *LogEntry) error
	// Recent returns the last limit entries ordered most-recent-first.
	Recent(ctx context.Context, limit int) ([]*LogEntry, error)
}

// Analyzer is the inference port. Analyze issues one synchronous
// chat-completion call and returns the generated text.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// Archiver is an optional port for best-effort archival of rendered analyses.
type Archiver interface {
	Archive(ctx context.Context, key string, body []byte) (string, error)
}
