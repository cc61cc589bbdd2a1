package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperr "github.com/voyagehq/sofdesk/internal/pkg/errors"
)

func TestSelectBackend_PrefersGroqWhenCredentialPresent(t *testing.T) {
	name, backend := selectBackend(Settings{
		Groq:   BackendSettings{APIKey: "gk", Model: "groq-model"},
		OpenAI: BackendSettings{APIKey: "ok", Model: "openai-model"},
	})
	require.Equal(t, "groq", name)
	require.Equal(t, "groq-model", backend.Model)
}

func TestSelectBackend_FallsBackToOpenAI(t *testing.T) {
	name, backend := selectBackend(Settings{
		OpenAI: BackendSettings{APIKey: "ok", Model: "openai-model"},
	})
	require.Equal(t, "openai", name)
	require.Equal(t, "openai-model", backend.Model)
}

func TestSelectBackend_OverrideWins(t *testing.T) {
	name, _ := selectBackend(Settings{
		ProviderOverride: "gemini",
		Groq:             BackendSettings{APIKey: "gk"},
	})
	require.Equal(t, "gemini", name)
}

func TestNewGateway_VisionModelFallsBackToDefault(t *testing.T) {
	gw, err := NewGateway(Settings{
		Groq: BackendSettings{APIKey: "gk", Model: "m1"},
	})
	require.NoError(t, err)
	require.Equal(t, "m1", gw.VisionModel())
	require.Equal(t, "groq", gw.Backend())
}

func TestGateway_CompleteWithoutCredentialIsConfigError(t *testing.T) {
	// No keys at all: openai is selected and must refuse with ErrNoCredential.
	gw, err := NewGateway(Settings{})
	require.NoError(t, err)
	_, err = gw.Complete(context.Background(), Request{Messages: []Message{TextMessage("user", "hi")}})
	require.True(t, errors.Is(err, apperr.ErrNoCredential))
}
