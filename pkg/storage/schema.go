package storage

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// projectSchemaJSON is a structural check on the stored project document.
// It is deliberately loose about field values; the analytics layer tolerates
// bad data, but a document that is not even shaped like a project should be
// rejected before it reaches the domain.
const projectSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "name"],
  "properties": {
    "id": { "type": "string", "minLength": 1 },
    "name": { "type": "string" },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "duration": { "type": "number" },
          "percent_complete": { "type": "number" }
        }
      }
    },
    "resources": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "cost_rate": { "type": "number" }
        }
      }
    }
  }
}`

var projectSchemaLoader = gojsonschema.NewStringLoader(projectSchemaJSON)

// ValidateProjectJSON checks that raw bytes are shaped like a project document.
func ValidateProjectJSON(data []byte) error {
	result, err := gojsonschema.Validate(projectSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("%s", strings.Join(issues, "; "))
}
