package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemirel/sales-analyst/internal/domain/analysis"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Model:   "test/model",
		Referer: "https://sales-analytics.com",
		Title:   "Sales Analiz Botu",
	})
}

func completionBody(content string) []byte {
	body, _ := json.Marshal(map[string]any{
		"id":     "cmpl-1",
		"object": "chat.completion",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return body
}

func errorBody(message, code string) []byte {
	body, _ := json.Marshal(map[string]any{
		"error": map[string]any{"message": message, "type": "invalid_request_error", "code": code},
	})
	return body
}

func TestAnalyzeSuccessAndIdentityHeaders(t *testing.T) {
	var gotReferer, gotTitle string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionBody("**Analiz Başlığı**: Toplam satış"))
	})

	got, err := c.Analyze(context.Background(), "toplam satışı hesapla")
	require.NoError(t, err)
	assert.Equal(t, "**Analiz Başlığı**: Toplam satış", got)
	assert.Equal(t, "https://sales-analytics.com", gotReferer)
	assert.Equal(t, "Sales Analiz Botu", gotTitle)
}

func TestAnalyzeQuotaExceeded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write(errorBody("rate limit exceeded", ""))
	})

	_, err := c.Analyze(context.Background(), "analiz et")
	assert.ErrorIs(t, err, analysis.ErrQuotaExceeded)
}

func TestAnalyzeAuthFailed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(errorBody("invalid api key", ""))
	})

	_, err := c.Analyze(context.Background(), "analiz et")
	assert.ErrorIs(t, err, analysis.ErrAuthFailed)
}

func TestAnalyzeContextTooLarge(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write(errorBody("this model's maximum context length is 65536 tokens", "context_length_exceeded"))
	})

	_, err := c.Analyze(context.Background(), "analiz et")
	assert.ErrorIs(t, err, analysis.ErrContextTooLarge)
}

func TestAnalyzeServerErrorIsInference(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(errorBody("upstream unavailable", ""))
	})

	_, err := c.Analyze(context.Background(), "analiz et")
	assert.ErrorIs(t, err, analysis.ErrInference)
	assert.NotErrorIs(t, err, analysis.ErrQuotaExceeded)
}
