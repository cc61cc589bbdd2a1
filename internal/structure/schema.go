package structure

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	apperr "github.com/voyagehq/sofdesk/internal/pkg/errors"
)

// responseSchema is the strict outer contract for the structuring response.
// Per-field cleanup (defaults, clamping, coercion) happens after validation;
// the schema only decides whether the batch is processable at all.
const responseSchema = `{
  "type": "object",
  "required": ["sections"],
  "properties": {
    "sections": {
      "type": "array",
      "items": {"type": "object"}
    },
    "tables": {
      "type": "array",
      "items": {"type": "object"}
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("structuring.json", responseSchema)

// Payload is the validated top level of a structuring response.
type Payload struct {
	Sections []interface{}
	Tables   []interface{}
}

// ValidateResponse parses and validates the raw model output. It returns
// either a payload safe to normalize or one of the batch-aborting errors:
// ErrStructureParse when the text is not JSON, ErrSchema when the JSON does
// not match the expected shape.
func ValidateResponse(raw string) (*Payload, error) {
	clean := stripCodeFences(raw)
	var doc interface{}
	if err := json.Unmarshal([]byte(clean), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStructureParse, err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrSchema, err)
	}
	root := doc.(map[string]interface{})
	payload := &Payload{}
	payload.Sections, _ = root["sections"].([]interface{})
	payload.Tables, _ = root["tables"].([]interface{})
	return payload, nil
}

// stripCodeFences removes a surrounding markdown fence some models wrap
// around JSON output despite the enforced response format.
func stripCodeFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
