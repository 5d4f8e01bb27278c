package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const maxResponseBytes = 1 << 20 // one megabyte

// readJSON decodes exactly one JSON value from r into data.
func readJSON(r io.Reader, data any) error {
	dec := json.NewDecoder(io.LimitReader(r, maxResponseBytes))
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must have only a single json value")
	}
	return nil
}

// writeJSON encodes data as a request body.
func writeJSON(data any) (io.Reader, error) {
	out, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to write JSON: %w", err)
	}
	return bytes.NewReader(out), nil
}
