package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	apperr "github.com/voyagehq/sofdesk/internal/pkg/errors"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

type groqConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

// groqProvider is the low-latency backend; it speaks the OpenAI-compatible
// chat completions wire shape.
type groqProvider struct {
	apiKey  string
	baseURL string
}

func (p *groqProvider) Name() string {
	return "groq"
}

func (p *groqProvider) Complete(ctx context.Context, req Request) (string, error) {
	if p.apiKey == "" {
		return "", apperr.ErrNoCredential
	}
	endpoint := strings.TrimRight(p.baseURL, "/") + "/chat/completions"
	data, err := json.Marshal(encodeChatRequest(req))
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", &apperr.ProviderError{
			Backend: p.Name(),
			Status:  resp.Status,
			Body:    extractErrorBody(body),
		}
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", &apperr.ProviderError{Backend: p.Name(), Reason: "response has no choices"}
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// extractErrorBody pulls the error message out of an OpenAI-style error
// payload, falling back to the raw body.
func extractErrorBody(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func createGroqFactory(args interface{}) (Provider, error) {
	cfg := &groqConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	provider := &groqProvider{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
	}
	return provider, nil
}

func init() {
	Register("groq", createGroqFactory)
}
