package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/voyagehq/sofdesk/internal/ai"
	apperr "github.com/voyagehq/sofdesk/internal/pkg/errors"
)

const visionPrompt = `Extract ALL text content from this document image.
Preserve the original structure:
- Keep headings and their hierarchy.
- Reproduce dates and times exactly as written.
- Render tables row by row, keeping column order.
- Keep company names with their original casing.
- Keep contact details (phone, email, address) in their original formatting.
Output only the extracted text, no commentary.`

// extractImageText sends one multimodal request carrying the image as a
// base64 data URI and returns whatever text the vision model reads off it.
func (s *Service) extractImageText(ctx context.Context, data []byte, contentType string) (string, error) {
	uri := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	req := ai.Request{
		Model: s.gateway.VisionModel(),
		Messages: []ai.Message{{
			Role: "user",
			Parts: []ai.Part{
				{Text: visionPrompt},
				{ImageURL: uri},
			},
		}},
	}
	text, err := s.gateway.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: vision model returned no text", apperr.ErrExtraction)
	}
	return text, nil
}
