package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// SchemaField is the key used for errors that are not tied to one field.
const SchemaField = "_schema"

// Decode reads exactly one JSON object from body. Numbers are kept as
// json.Number so integer fields can be told apart from fractional ones.
func Decode(body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Errors{SchemaField: {"Invalid JSON body."}}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, Errors{SchemaField: {"Body must have only a single JSON value."}}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, Errors{SchemaField: {"Invalid input type."}}
	}
	return obj, nil
}
