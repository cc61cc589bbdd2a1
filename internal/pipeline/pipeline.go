package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/voyagehq/sofdesk/internal/model"
)

type Extractor interface {
	Extract(ctx context.Context, doc model.RawDocument) (string, error)
}

type Structurer interface {
	Structure(ctx context.Context, text string) ([]model.DocumentSection, []model.DocumentTable, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Service sequences extract -> (structure || summarize) -> assemble. Each
// call is one independent, stateless invocation; nothing is shared across
// requests beyond the ambient stats counters.
type Service struct {
	extractor  Extractor
	structurer Structurer
	summarizer Summarizer
	sentinel   string
	stats      statsCounters
}

func NewService(extractor Extractor, structurer Structurer, summarizer Summarizer, sentinel string) *Service {
	return &Service{
		extractor:  extractor,
		structurer: structurer,
		summarizer: summarizer,
		sentinel:   sentinel,
	}
}

type structureResult struct {
	sections []model.DocumentSection
	tables   []model.DocumentTable
	err      error
}

// Process runs one pipeline invocation. Extraction is blocking; structuring
// and summarization then run concurrently and both are awaited before any
// policy is applied. Structuring failures propagate and discard the summary;
// summarization failures collapse into the sentinel summary.
func (s *Service) Process(ctx context.Context, doc model.RawDocument, debug bool) (*model.ProcessedDocument, error) {
	logger := logutil.GetLogger(ctx).With(
		zap.String("session_id", doc.SessionID),
		zap.String("file_name", doc.FileName),
	)

	text, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		s.stats.aborted.Add(1)
		return nil, err
	}
	logger.Info("text extracted", zap.Int("chars", len(text)))

	structCh := make(chan structureResult, 1)
	summaryCh := make(chan summaryResult, 1)
	go func() {
		sections, tables, err := s.structurer.Structure(ctx, text)
		structCh <- structureResult{sections: sections, tables: tables, err: err}
	}()
	go func() {
		narrative, err := s.summarizer.Summarize(ctx, text)
		summaryCh <- summaryResult{text: narrative, err: err}
	}()

	structured := <-structCh
	summarized := <-summaryCh

	// Structuring is Propagate: its failure aborts the request even though
	// the summary may already be in hand.
	if structured.err != nil {
		s.stats.aborted.Add(1)
		return nil, structured.err
	}
	// Summarization is SentinelOnError.
	summaryText := summarized.text
	if summarized.err != nil || strings.TrimSpace(summaryText) == "" {
		logger.Warn("summary unavailable, using sentinel", zap.Error(summarized.err))
		s.stats.summaryFallbacks.Add(1)
		summaryText = s.sentinel
	}

	out := &model.ProcessedDocument{
		Title:    deriveTitle(text, doc.FileName),
		Summary:  summaryText,
		Sections: structured.sections,
		Tables:   structured.tables,
		Metadata: model.DocumentMetadata{
			UploadedAt: time.Now().UTC(),
			FileName:   doc.FileName,
			FileType:   doc.ContentType,
			WordCount:  len(strings.Fields(text)),
			SessionID:  doc.SessionID,
		},
	}
	if debug {
		out.ExtractedText = text
	}
	s.stats.processed.Add(1)
	logger.Info("document processed",
		zap.Int("sections", len(out.Sections)),
		zap.Int("tables", len(out.Tables)),
		zap.Int("word_count", out.Metadata.WordCount),
	)
	return out, nil
}

type summaryResult struct {
	text string
	err  error
}

// deriveTitle takes the first non-blank line of the extracted text, falling
// back to the upload file name.
func deriveTitle(text, fileName string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 120 {
			line = line[:120]
		}
		return line
	}
	return fileName
}
