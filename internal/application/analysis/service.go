package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okandemirel/sales-analyst/internal/application"
	domain "github.com/okandemirel/sales-analyst/internal/domain/analysis"
	"github.com/okandemirel/sales-analyst/internal/domain/sales"
	"github.com/okandemirel/sales-analyst/internal/domain/session"
	"github.com/okandemirel/sales-analyst/internal/infra/ai/prompt"
)

const logWriteTimeout = 10 * time.Second

// Service implements the analysis turn use-case: validate → fetch sales →
// build prompt → infer → record history → best-effort log/archive.
// One call per user click; the two remote calls are synchronous, the log
// write and archive are detached.
type Service struct {
	Sales   sales.Repository
	Log     domain.Repository
	AI      domain.Analyzer
	Archive domain.Archiver // optional
	Clock   application.Clock
	Model   string

	// MaxPromptRows caps how many sales rows are rendered into the prompt.
	// Zero means no cap.
	MaxPromptRows int
}

// TurnResult is the outcome of one completed analysis turn.
type TurnResult struct {
	ID         string    `json:"id"`
	Response   string    `json:"response"`
	RowCount   int       `json:"row_count"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// RunTurn executes one analysis turn for the given session. A failed
// inference is a real failure: nothing is appended to the history and
// nothing is persisted for it.
func (s *Service) RunTurn(ctx context.Context, sessionID string, hist *session.History, userPrompt string) (*TurnResult, error) {
	trimmed := strings.TrimSpace(userPrompt)
	if trimmed == "" {
		return nil, domain.ErrEmptyPrompt
	}

	table, err := s.Sales.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales fetch failed: %w", err)
	}
	if table.Empty() {
		return nil, domain.ErrNoSalesData
	}

	capped := table.Head(s.MaxPromptRows)
	full := prompt.Build(capped, table.RowCount(), trimmed, hist.RecentResponses(session.MaxRecentResponses))

	start := s.Clock.Now()
	text, err := s.AI.Analyze(ctx, full)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now()

	hist.RecordTurn(trimmed, text)

	entry := &domain.LogEntry{
		ID:         domain.LogEntryID(uuid.New().String()),
		SessionID:  sessionID,
		Prompt:     trimmed,
		Response:   text,
		Model:      s.Model,
		DurationMS: now.Sub(start).Milliseconds(),
		CreatedAt:  now,
	}
	s.logAsync(entry)
	s.archiveAsync(entry)

	return &TurnResult{
		ID:         string(entry.ID),
		Response:   text,
		RowCount:   table.RowCount(),
		DurationMS: entry.DurationMS,
		CreatedAt:  now,
	}, nil
}

// RecentLogged returns the last limit persisted responses, newest first.
func (s *Service) RecentLogged(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	return s.Log.Recent(ctx, limit)
}

// logAsync writes the log entry on a detached goroutine. The write is best
// effort: a failure is logged and never blocks or undoes the rendered turn.
func (s *Service) logAsync(e *domain.LogEntry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
		defer cancel()
		if err := s.Log.Save(ctx, e); err != nil {
			log.Printf("response log write failed: id=%s err=%v", e.ID, err)
		}
	}()
}

// archiveAsync uploads the rendered analysis when an archiver is configured.
func (s *Service) archiveAsync(e *domain.LogEntry) {
	if s.Archive == nil {
		return
	}
	body := []byte(fmt.Sprintf("## Komut\n\n%s\n\n## Analiz\n\n%s\n", e.Prompt, e.Response))
	key := fmt.Sprintf("analyses/%s.md", e.ID)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
		defer cancel()
		if _, err := s.Archive.Archive(ctx, key, body); err != nil {
			log.Printf("analysis archive failed: key=%s err=%v", key, err)
		}
	}()
}
