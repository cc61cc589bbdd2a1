package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/voyagehq/sofdesk/internal/ai"
)

// FallbackSummary is substituted by the pipeline whenever summary generation
// fails; a missing summary never aborts a request.
const FallbackSummary = "Summary unavailable — the document sections below were processed normally."

// maxInputChars bounds the text embedded in the summary prompt.
const maxInputChars = 8000

const summaryTemperature = float32(0.2)

const promptTemplate = `You are a maritime operations assistant.
Summarize the following document in a short narrative paragraph (3-5 sentences).
- Name the vessel, port, and cargo when present.
- Mention key events and their order, but do not list every timestamp.
- Output ONLY the summary text.

DOCUMENT TEXT:
%s`

type Completer interface {
	Complete(ctx context.Context, req ai.Request) (string, error)
}

type Service struct {
	gateway Completer
}

func NewService(gateway Completer) *Service {
	return &Service{gateway: gateway}
}

// Summarize produces a free-text narrative of the extracted text. The caller
// decides what a failure means; this service just reports it.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	input := text
	if len(input) > maxInputChars {
		input = input[:maxInputChars]
	}
	temp := summaryTemperature
	req := ai.Request{
		Messages:    []ai.Message{ai.TextMessage("user", fmt.Sprintf(promptTemplate, input))},
		Temperature: &temp,
	}
	result, err := s.gateway.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	result = strings.TrimSpace(result)
	if result == "" {
		return "", fmt.Errorf("empty summary response")
	}
	return result, nil
}
