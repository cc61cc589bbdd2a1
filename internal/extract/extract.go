package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/voyagehq/sofdesk/internal/ai"
	"github.com/voyagehq/sofdesk/internal/model"
	apperr "github.com/voyagehq/sofdesk/internal/pkg/errors"
)

// Completer is the slice of the provider gateway the image path needs.
type Completer interface {
	Complete(ctx context.Context, req ai.Request) (string, error)
	VisionModel() string
}

type Service struct {
	gateway Completer
}

func NewService(gateway Completer) *Service {
	return &Service{gateway: gateway}
}

var imageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

// Extract converts the uploaded bytes into plain text. PDFs are decoded
// locally; images go through a vision completion. Any other content type is
// rejected before extraction begins.
func (s *Service) Extract(ctx context.Context, doc model.RawDocument) (string, error) {
	contentType := normalizeContentType(doc.ContentType)
	logger := logutil.GetLogger(ctx).With(
		zap.String("stage", "extract"),
		zap.String("content_type", contentType),
		zap.String("file_name", doc.FileName),
	)
	switch {
	case contentType == "application/pdf":
		text, err := extractPDFText(doc.Bytes)
		if err != nil {
			logger.Error("pdf extraction failed", zap.Error(err))
			return "", fmt.Errorf("%w: %v", apperr.ErrExtraction, err)
		}
		if strings.TrimSpace(text) == "" {
			logger.Error("pdf contains no extractable text")
			return "", fmt.Errorf("%w: document contains no extractable text", apperr.ErrExtraction)
		}
		return text, nil
	case isImageType(contentType):
		text, err := s.extractImageText(ctx, doc.Bytes, contentType)
		if err != nil {
			logger.Error("image extraction failed", zap.Error(err))
			return "", err
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", apperr.ErrUnsupportedType, contentType)
	}
}

func isImageType(contentType string) bool {
	_, ok := imageTypes[contentType]
	return ok
}

func normalizeContentType(contentType string) string {
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
