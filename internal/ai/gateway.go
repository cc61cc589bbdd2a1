package ai

import (
	"context"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type BackendSettings struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

type Settings struct {
	// ProviderOverride forces a registered backend regardless of precedence.
	ProviderOverride string          `json:"provider_override"`
	Groq             BackendSettings `json:"groq"`
	OpenAI           BackendSettings `json:"openai"`
	Gemini           BackendSettings `json:"gemini"`
	VisionModel      string          `json:"vision_model"`
	TimeoutSeconds   int             `json:"timeout_seconds"`
}

// Gateway is the single completion entry point for the pipeline. The backend
// is chosen once at construction and never switched mid-request.
type Gateway struct {
	provider    Provider
	model       string
	visionModel string
	timeout     time.Duration
}

// NewGateway selects a backend by static precedence: groq when its credential
// is present, otherwise openai. An explicit override wins over precedence.
func NewGateway(s Settings) (*Gateway, error) {
	name, backend := selectBackend(s)
	provider, err := NewProvider(name, backend)
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(s.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	visionModel := strings.TrimSpace(s.VisionModel)
	if visionModel == "" {
		visionModel = backend.Model
	}
	return &Gateway{
		provider:    provider,
		model:       backend.Model,
		visionModel: visionModel,
		timeout:     timeout,
	}, nil
}

func selectBackend(s Settings) (string, BackendSettings) {
	switch strings.ToLower(strings.TrimSpace(s.ProviderOverride)) {
	case "groq":
		return "groq", s.Groq
	case "openai":
		return "openai", s.OpenAI
	case "gemini":
		return "gemini", s.Gemini
	}
	if strings.TrimSpace(s.Groq.APIKey) != "" {
		return "groq", s.Groq
	}
	return "openai", s.OpenAI
}

func (g *Gateway) Backend() string {
	return g.provider.Name()
}

// Model is the default completion model of the selected backend.
func (g *Gateway) Model() string {
	return g.model
}

// VisionModel is the model used for image-to-text requests.
func (g *Gateway) VisionModel() string {
	return g.visionModel
}

// Complete sends one completion request under a bounded timeout. An empty
// request model falls back to the backend default.
func (g *Gateway) Complete(ctx context.Context, req Request) (string, error) {
	if req.Model == "" {
		req.Model = g.model
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	text, err := g.provider.Complete(ctx, req)
	if err != nil {
		logutil.GetLogger(ctx).Error("completion failed",
			zap.String("backend", g.provider.Name()),
			zap.String("model", req.Model),
			zap.Error(err),
		)
		return "", err
	}
	return text, nil
}
