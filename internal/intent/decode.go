package intent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrDecode covers every reason the extractor output cannot be turned into records.
	ErrDecode = errors.New("intent: decode extractor output")
	// ErrSchema is a shape violation: not an array, unknown field, or non-string value.
	ErrSchema = fmt.Errorf("%w: schema violation", ErrDecode)
)

// Decode parses sanitized extractor output into records. It is all or
// nothing: any syntax error, non-array document, unknown field or type
// mismatch fails the whole array.
func Decode(text string) ([]Record, error) {
	data := []byte(text)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}
	if err := validateShape(data); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after array", ErrDecode)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
