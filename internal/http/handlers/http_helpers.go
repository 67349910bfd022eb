package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/record-services/internal/schema"
)

const maxBodyBytes = 1048576 // one megabyte

// ErrorResponse is the envelope of every failure body. Error holds either a
// fixed message or a field to messages map.
type ErrorResponse struct {
	Error any `json:"error"`
}

// readObject reads the body of a request as a single JSON object.
func readObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return schema.Decode(r.Body)
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}
