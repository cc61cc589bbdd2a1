package structure

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/voyagehq/sofdesk/internal/ai"
	"github.com/voyagehq/sofdesk/internal/model"
)

// maxInputChars bounds the text embedded in the structuring prompt.
const maxInputChars = 12000

// structureTemperature keeps the structuring output near-deterministic.
const structureTemperature = float32(0.2)

const promptTemplate = `You are analyzing a maritime operational document (such as a Statement of Facts, notice of readiness, or port log).
Organize the document text below into a JSON object with this exact shape:
{
  "sections": [
    {
      "id": "optional string",
      "title": "short section title",
      "content": "the section text, required and non-empty",
      "importance": "high | medium | low",
      "keywords": ["up to 10 short keywords"]
    }
  ],
  "tables": [
    {
      "id": "optional string",
      "title": "table title",
      "headers": ["column names"],
      "rows": [{"cells": ["one cell per column"]}],
      "description": "optional"
    }
  ]
}
Rules:
- Every distinct topic (vessel particulars, cargo operations, delays, weather, remarks) becomes one section.
- Keep event timestamps verbatim inside section content.
- Tabular data (event logs, time sheets) goes into tables, not sections.
- Respond with the JSON object only.

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

// Structure asks the model to organize the extracted text and normalizes the
// response. Sections are validated fail-fast: one bad section aborts the
// whole batch. Tables are normalized tolerantly.
func (s *Service) Structure(ctx context.Context, text string) ([]model.DocumentSection, []model.DocumentTable, error) {
	input := text
	if len(input) > maxInputChars {
		input = input[:maxInputChars]
	}
	temp := structureTemperature
	req := ai.Request{
		Messages:       []ai.Message{ai.TextMessage("user", fmt.Sprintf(promptTemplate, input))},
		Temperature:    &temp,
		ResponseFormat: "json_object",
	}
	raw, err := s.gateway.Complete(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	payload, err := ValidateResponse(raw)
	if err != nil {
		logutil.GetLogger(ctx).Error("structuring response rejected",
			zap.String("stage", "structure"),
			zap.String("response_head", truncate(raw, 200)),
			zap.Error(err),
		)
		return nil, nil, err
	}
	sections, err := normalizeSections(ctx, payload.Sections)
	if err != nil {
		return nil, nil, err
	}
	tables := normalizeTables(ctx, payload.Tables)
	return sections, tables, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
