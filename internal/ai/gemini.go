package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"

	apperr "github.com/voyagehq/sofdesk/internal/pkg/errors"
)

type geminiConfig struct {
	APIKey string `json:"api_key"`
}

// geminiProvider is only selected through an explicit provider override.
type geminiProvider struct {
	apiKey string
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

func (p *geminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	if p.apiKey == "" {
		return "", apperr.ErrNoCredential
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", err
	}
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		parts := make([]*genai.Part, 0, len(m.Parts))
		for _, part := range m.Parts {
			if part.ImageURL != "" {
				blob, err := decodeDataURI(part.ImageURL)
				if err != nil {
					return "", err
				}
				parts = append(parts, &genai.Part{InlineData: blob})
				continue
			}
			parts = append(parts, &genai.Part{Text: part.Text})
		}
		contents = append(contents, &genai.Content{Parts: parts})
	}
	var cfg *genai.GenerateContentConfig
	if req.Temperature != nil || req.MaxTokens > 0 || req.ResponseFormat == responseFormatJSON {
		cfg = &genai.GenerateContentConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: int32(req.MaxTokens),
		}
		if req.ResponseFormat == responseFormatJSON {
			cfg.ResponseMIMEType = "application/json"
		}
	}
	resp, err := client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &apperr.ProviderError{Backend: p.Name(), Reason: "response has no text"}
	}
	return text, nil
}

// decodeDataURI turns a data:<mime>;base64,<payload> URI back into a blob.
func decodeDataURI(uri string) (*genai.Blob, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("image part is not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri")
	}
	mimeType := strings.TrimSuffix(meta, ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data uri: %w", err)
	}
	return &genai.Blob{MIMEType: mimeType, Data: data}, nil
}

func createGeminiFactory(args interface{}) (Provider, error) {
	cfg := &geminiConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	provider := &geminiProvider{
		apiKey: strings.TrimSpace(cfg.APIKey),
	}
	return provider, nil
}

func init() {
	Register("gemini", createGeminiFactory)
}
