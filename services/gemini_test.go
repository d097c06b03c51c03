package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiTestServer(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewGeminiClient("test-key", "gemini-2.0-flash", 5*time.Second)
	client.baseURL = srv.URL
	return client, srv
}

func TestGeminiComplete(t *testing.T) {
	var captured geminiRequest
	client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": `{"ok": true}`}}}},
			},
		})
	})

	out, err := client.Complete(context.Background(), "extract this resume", CompletionOptions{
		Temperature:     0.3,
		MaxOutputTokens: 3000,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "user", captured.Contents[0].Role)
	require.Len(t, captured.Contents[0].Parts, 1)
	assert.Equal(t, "extract this resume", captured.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.3, captured.GenerationConfig.Temperature)
	assert.Equal(t, 3000, captured.GenerationConfig.MaxOutputTokens)
}

func TestGeminiComplete_UpstreamError(t *testing.T) {
	client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exhausted"}`, http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), "prompt", CompletionOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	// The key travels in the query string and must never surface in errors.
	assert.NotContains(t, err.Error(), "test-key")
}

func TestGeminiComplete_NoCandidates(t *testing.T) {
	client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := client.Complete(context.Background(), "prompt", CompletionOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGeminiComplete_MissingKey(t *testing.T) {
	client := NewGeminiClient("", "gemini-2.0-flash", time.Second)

	_, err := client.Complete(context.Background(), "prompt", CompletionOptions{})

	require.Error(t, err)
}

func TestGeminiComplete_ContextCancelled(t *testing.T) {
	client, _ := geminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, "prompt", CompletionOptions{})
	require.Error(t, err)
}
