package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperr "github.com/voyagehq/sofdesk/internal/pkg/errors"
)

func newTestProvider(t *testing.T, name string, baseURL string) Provider {
	t.Helper()
	provider, err := NewProvider(name, map[string]interface{}{
		"api_key":  "test-key",
		"base_url": baseURL,
	})
	require.NoError(t, err)
	return provider
}

func TestGroqProvider_Success(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  structured text  "}}]}`))
	}))
	defer srv.Close()

	provider := newTestProvider(t, "groq", srv.URL)
	temp := float32(0.2)
	text, err := provider.Complete(context.Background(), Request{
		Model:          "test-model",
		Messages:       []Message{TextMessage("user", "hello")},
		Temperature:    &temp,
		ResponseFormat: "json_object",
	})
	require.NoError(t, err)
	require.Equal(t, "structured text", text)

	require.Equal(t, "test-model", gotBody["model"])
	messages := gotBody["messages"].([]interface{})
	first := messages[0].(map[string]interface{})
	require.Equal(t, "user", first["role"])
	require.Equal(t, "hello", first["content"])
	format := gotBody["response_format"].(map[string]interface{})
	require.Equal(t, "json_object", format["type"])
}

func TestGroqProvider_MultimodalContentIsPartArray(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	provider := newTestProvider(t, "groq", srv.URL)
	_, err := provider.Complete(context.Background(), Request{
		Model: "vision",
		Messages: []Message{{
			Role: "user",
			Parts: []Part{
				{Text: "read this"},
				{ImageURL: "data:image/png;base64,AAAA"},
			},
		}},
	})
	require.NoError(t, err)

	messages := gotBody["messages"].([]interface{})
	content := messages[0].(map[string]interface{})["content"].([]interface{})
	require.Len(t, content, 2)
	textPart := content[0].(map[string]interface{})
	require.Equal(t, "text", textPart["type"])
	imagePart := content[1].(map[string]interface{})
	require.Equal(t, "image_url", imagePart["type"])
	require.Equal(t, "data:image/png;base64,AAAA", imagePart["image_url"].(map[string]interface{})["url"])
}

func TestOpenAIProvider_NonSuccessIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer srv.Close()

	provider := newTestProvider(t, "openai", srv.URL)
	_, err := provider.Complete(context.Background(), Request{
		Messages: []Message{TextMessage("user", "hi")},
	})
	require.Error(t, err)
	require.True(t, apperr.IsProviderError(err))
	require.Contains(t, err.Error(), "429")
	require.Contains(t, err.Error(), "rate limit exceeded")
}

func TestOpenAIProvider_MissingChoicesIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	provider := newTestProvider(t, "openai", srv.URL)
	_, err := provider.Complete(context.Background(), Request{
		Messages: []Message{TextMessage("user", "hi")},
	})
	require.True(t, apperr.IsProviderError(err))
	require.Contains(t, err.Error(), "no choices")
}

func TestProvider_NoCredential(t *testing.T) {
	provider, err := NewProvider("groq", map[string]interface{}{})
	require.NoError(t, err)
	_, err = provider.Complete(context.Background(), Request{
		Messages: []Message{TextMessage("user", "hi")},
	})
	require.ErrorIs(t, err, apperr.ErrNoCredential)
}

func TestNewProvider_UnknownName(t *testing.T) {
	_, err := NewProvider("mystery", map[string]interface{}{})
	require.Error(t, err)
}

func TestExtractErrorBody_FallsBackToRaw(t *testing.T) {
	if got := extractErrorBody([]byte("plain failure text")); got != "plain failure text" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := extractErrorBody([]byte(`{"error":{"message":"broken"}}`)); got != "broken" {
		t.Fatalf("unexpected: %q", got)
	}
}
