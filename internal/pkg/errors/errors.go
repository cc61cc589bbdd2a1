package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredential means no API key is configured for the selected backend.
	ErrNoCredential = errors.New("no provider credential configured")
	// ErrUnsupportedType means the uploaded content type has no extraction path.
	ErrUnsupportedType = errors.New("unsupported content type")
	// ErrExtraction means the extractor produced no usable text.
	ErrExtraction = errors.New("extraction failed")
	// ErrStructureParse means the structuring response was not valid JSON.
	ErrStructureParse = errors.New("structuring response is not valid JSON")
	// ErrSchema means the structuring response violated the expected shape.
	ErrSchema = errors.New("structuring response violates schema")
	// ErrSectionInvalid means a section failed validation, aborting the batch.
	ErrSectionInvalid = errors.New("section validation failed")
	// ErrInvalid is a generic bad-request error.
	ErrInvalid = errors.New("invalid request")
	// ErrTooMany signals a throttled upload.
	ErrTooMany = errors.New("too many requests")
)

// ProviderError reports a failed call to a completion backend: a non-success
// HTTP response or a success response missing the completion text.
type ProviderError struct {
	Backend string
	Status  string
	Body    string
	Reason  string
}

func (e *ProviderError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("provider %s request failed: %s: %s", e.Backend, e.Status, e.Body)
	}
	return fmt.Sprintf("provider %s: %s", e.Backend, e.Reason)
}

func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
