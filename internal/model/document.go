package model

import "time"

// Importance levels a section may carry.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// RawDocument is one uploaded file bound to a single pipeline invocation.
// It is discarded after text extraction.
type RawDocument struct {
	Bytes       []byte
	ContentType string
	FileName    string
	SessionID   string
}

type DocumentSection struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Importance string   `json:"importance"`
	Keywords   []string `json:"keywords"`
}

type TableRow struct {
	Cells []string `json:"cells"`
}

type DocumentTable struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Headers     []string   `json:"headers"`
	Rows        []TableRow `json:"rows"`
	Description string     `json:"description,omitempty"`
}

type DocumentMetadata struct {
	UploadedAt time.Time `json:"uploadedAt"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	WordCount  int       `json:"wordCount"`
	SessionID  string    `json:"sessionId"`
}

// ProcessedDocument is the final artifact assembled once per request.
// It is never mutated after assembly.
type ProcessedDocument struct {
	Title    string            `json:"title"`
	Summary  string            `json:"summary"`
	Sections []DocumentSection `json:"sections"`
	Tables   []DocumentTable   `json:"tables"`
	Metadata DocumentMetadata  `json:"metadata"`

	// ExtractedText is only populated when the request carries the debug flag.
	ExtractedText string `json:"extractedText,omitempty"`
}
