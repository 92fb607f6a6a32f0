package analysis

import "errors"

// Sentinel errors for one analysis turn. The HTTP layer maps these with
// errors.Is; nothing downstream inspects error strings.

// ErrEmptyPrompt indicates the trimmed user request was empty. No fetch, no
// inference and no log write happen for such a turn.
var ErrEmptyPrompt = errors.New("analysis prompt is empty")

// ErrNoSalesData indicates the sales query succeeded but returned zero rows.
var ErrNoSalesData = errors.New("no sales data available")

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrAuthFailed indicates the AI provider rejected the API key.
var ErrAuthFailed = errors.New("ai authentication failed")

// ErrContextTooLarge indicates the built prompt exceeded the model's context window.
var ErrContextTooLarge = errors.New("prompt exceeds model context window")

// ErrInference covers any other completion failure (transport, server side).
var ErrInference = errors.New("ai inference failed")
