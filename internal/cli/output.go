package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output is the JSON envelope every command prints with --json
type Output struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON encodes v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}

// outputSuccess prints a success envelope
func outputSuccess(w io.Writer, data any, message string) error {
	return writeJSON(w, Output{
		Status:  "success",
		Data:    data,
		Message: message,
	})
}

// outputError prints an error envelope in JSON mode and returns err
func outputError(w io.Writer, jsonOutput bool, err error) error {
	if jsonOutput {
		_ = writeJSON(w, Output{
			Status: "error",
			Error:  err.Error(),
		})
	}
	return err
}
