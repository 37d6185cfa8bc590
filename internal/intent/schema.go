package intent

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const recordsSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Extracted intents",
  "type": "array",
  "items": {
    "type": ["object", "null"],
    "additionalProperties": false,
    "properties": {
      "intent":    {"type": ["string", "null"]},
      "place":     {"type": ["string", "null"]},
      "fromPlace": {"type": ["string", "null"]},
      "toPlace":   {"type": ["string", "null"]},
      "poiType":   {"type": ["string", "null"]},
      "response":  {"type": ["string", "null"]}
    }
  }
}`

var recordsSchema = mustCompile(recordsSchemaJSON)

func mustCompile(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("intent: compile schema: %v", err))
	}
	return s
}

// validateShape checks data against the record array schema.
func validateShape(data []byte) error {
	result, err := recordsSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
}
