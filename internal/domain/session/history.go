package session

// Bounds for the per-session history. The response list is hard-capped: the
// oldest entry is evicted once the cap is exceeded. The prompt list is
// append-only; the sidebar only ever reads the last MaxSidebarPrompts.
const (
	MaxRecentResponses = 5
	MaxSidebarPrompts  = 20
	SidebarPromptChars = 100
)

// History holds one session's submitted prompts and generated responses.
// It is owned exclusively by its session and is never shared between
// sessions; the session manager serializes access to it.
type History struct {
	prompts   []string
	responses []string
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// RecordTurn appends one completed turn. The response list drops its oldest
// entry when it grows past MaxRecentResponses.
func (h *History) RecordTurn(prompt, response string) {
	h.prompts = append(h.prompts, prompt)
	h.responses = append(h.responses, response)
	if len(h.responses) > MaxRecentResponses {
		h.responses = h.responses[len(h.responses)-MaxRecentResponses:]
	}
}

// RecentResponses returns the last n (at most MaxRecentResponses) generated
// responses in chronological order, for the next prompt's context block.
func (h *History) RecentResponses(n int) []string {
	if n <= 0 || n > MaxRecentResponses {
		n = MaxRecentResponses
	}
	if n > len(h.responses) {
		n = len(h.responses)
	}
	out := make([]string, n)
	copy(out, h.responses[len(h.responses)-n:])
	return out
}

// SidebarPrompts returns up to MaxSidebarPrompts submitted prompts in
// reverse chronological order, each truncated to SidebarPromptChars runes.
func (h *History) SidebarPrompts() []string {
	n := len(h.prompts)
	if n > MaxSidebarPrompts {
		n = MaxSidebarPrompts
	}
	out := make([]string, 0, n)
	for i := len(h.prompts) - 1; i >= len(h.prompts)-n; i-- {
		out = append(out, truncateRunes(h.prompts[i], SidebarPromptChars))
	}
	return out
}

// Turns reports how many prompts were ever submitted in this session.
func (h *History) Turns() int {
	return len(h.prompts)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
